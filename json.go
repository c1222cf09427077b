package gocas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ============================================================
// JSON Serialization
// ============================================================
//
// Every node is an object tagged by "type":
//
//	{"type":"num","value":"1/2"}
//	{"type":"sym","name":"x"}
//	{"type":"add","terms":[...]}
//	{"type":"mul","factors":[...]}
//	{"type":"pow","base":{...},"exp":{...}}
//	{"type":"func","name":"sin","arg":{...}}

func toJSONValue(x Expr) map[string]interface{} {
	switch t := x.(type) {
	case *Num:
		return map[string]interface{}{"type": "num", "value": t.val.RatString()}
	case *Sym:
		return map[string]interface{}{"type": "sym", "name": t.name}
	case *Add:
		return map[string]interface{}{"type": "add", "terms": toJSONList(t.terms)}
	case *Mul:
		return map[string]interface{}{"type": "mul", "factors": toJSONList(t.factors)}
	case *Pow:
		return map[string]interface{}{"type": "pow", "base": toJSONValue(t.base), "exp": toJSONValue(t.exp)}
	case *Func:
		return map[string]interface{}{"type": "func", "name": t.name, "arg": toJSONValue(t.arg)}
	}
	return nil
}

func toJSONList(xs []Expr) []interface{} {
	out := make([]interface{}, len(xs))
	for i, x := range xs {
		out[i] = toJSONValue(x)
	}
	return out
}

// ToJSON encodes x in the tagged-object format.
func ToJSON(x Expr) (string, error) {
	b, err := json.Marshal(toJSONValue(x))
	return string(b), err
}

// ParseJSON decodes a tagged-object document.
func ParseJSON(s string) (Expr, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var data map[string]interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, &Error{Kind: KindParseError, Op: "json", Err: err}
	}
	return FromJSON(data)
}

// FromJSON decodes an already unmarshalled tagged object. The tree is built
// exactly as described; it is not simplified.
func FromJSON(data map[string]interface{}) (Expr, error) {
	x, err := fromJSON(data)
	if err != nil {
		return nil, &Error{Kind: KindParseError, Op: "json", Err: err}
	}
	return x, nil
}

func fromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (Expr, error) {
		m, ok := data[field].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		x, err := fromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return x, nil
	}
	subList := func(field string) ([]Expr, error) {
		raw, ok := data[field].([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			x, err := fromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = x
		}
		return out, nil
	}
	subString := func(field string) (string, error) {
		s, ok := data[field].(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		var val string
		switch v := data["value"].(type) {
		case string:
			val = v
		case json.Number:
			val = v.String()
		case float64:
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("num: value %v is not an integer", v)
			}
			val = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("num: 'value' must be a string or number")
		}
		r, err := parseRatValue(val)
		if err != nil {
			return nil, fmt.Errorf("num: %w", err)
		}
		return newNum(r), nil
	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return S(name), nil
	case "add":
		terms, err := subList("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil
	case "mul":
		factors, err := subList("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil
	case "pow":
		base, err := subObj("base")
		if err != nil {
			return nil, err
		}
		exp, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		arg, err := subObj("arg")
		if err != nil {
			return nil, err
		}
		return FuncOf(name, arg), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

// parseRatValue accepts an integer or n/d with integer parts. Decimal and
// exponent forms such as "1e99999999" are rejected.
func parseRatValue(s string) (*big.Rat, error) {
	numStr, denStr, isFrac := strings.Cut(s, "/")
	n, ok := parseIntValue(numStr, true)
	if !ok {
		return nil, fmt.Errorf("invalid value %q: want an integer or n/d", s)
	}
	if !isFrac {
		return new(big.Rat).SetInt(n), nil
	}
	d, ok := parseIntValue(denStr, false)
	if !ok {
		return nil, fmt.Errorf("invalid value %q: want an integer or n/d", s)
	}
	if d.Sign() == 0 {
		return nil, fmt.Errorf("invalid value %q: zero denominator", s)
	}
	return new(big.Rat).SetFrac(n, d), nil
}

func parseIntValue(s string, signed bool) (*big.Int, bool) {
	digits := s
	if signed {
		digits = strings.TrimPrefix(s, "-")
	}
	if digits == "" {
		return nil, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, false
		}
	}
	return new(big.Int).SetString(s, 10)
}
