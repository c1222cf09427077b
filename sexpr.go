package gocas

import (
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// S-expressions
// ============================================================
//
//	(Int k)  (Rat n d)  (Sym name)
//	(+ e...) (* e...)   (^ base exp)  (Fn name arg)
//
// Names made only of letters, digits, '_' and '-' are written bare;
// anything else is double-quoted with '"' and '\' escaped.

// ToSExpr encodes x as an S-expression.
func ToSExpr(x Expr) string {
	var sb strings.Builder
	writeSExpr(&sb, x)
	return sb.String()
}

func writeSExpr(sb *strings.Builder, x Expr) {
	switch t := x.(type) {
	case *Num:
		if t.IsInteger() {
			fmt.Fprintf(sb, "(Int %s)", t.val.Num())
			return
		}
		fmt.Fprintf(sb, "(Rat %s %s)", t.val.Num(), t.val.Denom())
	case *Sym:
		sb.WriteString("(Sym ")
		sb.WriteString(sexprName(t.name))
		sb.WriteString(")")
	case *Add:
		writeSExprList(sb, "+", t.terms)
	case *Mul:
		writeSExprList(sb, "*", t.factors)
	case *Pow:
		writeSExprList(sb, "^", []Expr{t.base, t.exp})
	case *Func:
		sb.WriteString("(Fn ")
		sb.WriteString(sexprName(t.name))
		sb.WriteString(" ")
		writeSExpr(sb, t.arg)
		sb.WriteString(")")
	}
}

func writeSExprList(sb *strings.Builder, head string, xs []Expr) {
	sb.WriteString("(")
	sb.WriteString(head)
	for _, x := range xs {
		sb.WriteString(" ")
		writeSExpr(sb, x)
	}
	sb.WriteString(")")
}

func sexprName(s string) string {
	bare := s != ""
	for _, c := range s {
		if !(c == '_' || c == '-' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			bare = false
			break
		}
	}
	if bare && !(s[0] == '-' || s[0] >= '0' && s[0] <= '9') {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// ParseSExpr decodes an S-expression. The tree is not simplified.
func ParseSExpr(s string) (Expr, error) {
	toks, err := lexSExpr(s)
	if err != nil {
		return nil, &Error{Kind: KindParseError, Op: "sexpr", Err: err}
	}
	p := &sexprParser{toks: toks}
	x, err := p.expr()
	if err == nil && p.pos != len(p.toks) {
		err = fmt.Errorf("trailing input at token %d", p.pos)
	}
	if err != nil {
		return nil, &Error{Kind: KindParseError, Op: "sexpr", Err: err}
	}
	return x, nil
}

type sexprTokKind int

const (
	tokLParen sexprTokKind = iota
	tokRParen
	tokAtom
	tokString
)

type sexprTok struct {
	kind sexprTokKind
	text string
}

func lexSExpr(s string) ([]sexprTok, error) {
	var toks []sexprTok
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, sexprTok{kind: tokLParen})
			i++
		case c == ')':
			toks = append(toks, sexprTok{kind: tokRParen})
			i++
		case c == '"':
			var sb strings.Builder
			i++
			closed := false
			for i < len(s) {
				ch := s[i]
				i++
				if ch == '\\' {
					if i >= len(s) {
						return nil, fmt.Errorf("unterminated escape")
					}
					sb.WriteByte(s[i])
					i++
					continue
				}
				if ch == '"' {
					closed = true
					break
				}
				sb.WriteByte(ch)
			}
			if !closed {
				return nil, fmt.Errorf("unterminated string")
			}
			toks = append(toks, sexprTok{kind: tokString, text: sb.String()})
		default:
			start := i
			for i < len(s) && !strings.ContainsRune(" \t\n\r()\"", rune(s[i])) {
				i++
			}
			toks = append(toks, sexprTok{kind: tokAtom, text: s[start:i]})
		}
	}
	return toks, nil
}

type sexprParser struct {
	toks []sexprTok
	pos  int
}

func (p *sexprParser) next() (sexprTok, error) {
	if p.pos >= len(p.toks) {
		return sexprTok{}, fmt.Errorf("unexpected end of input")
	}
	t := p.toks[p.pos]
	p.pos++
	return t, nil
}

func (p *sexprParser) expect(kind sexprTokKind) (sexprTok, error) {
	t, err := p.next()
	if err != nil {
		return t, err
	}
	if t.kind != kind {
		return t, fmt.Errorf("unexpected token %q at %d", t.text, p.pos-1)
	}
	return t, nil
}

func (p *sexprParser) name() (string, error) {
	t, err := p.next()
	if err != nil {
		return "", err
	}
	if (t.kind != tokAtom && t.kind != tokString) || t.text == "" {
		return "", fmt.Errorf("expected name at %d", p.pos-1)
	}
	return t.text, nil
}

func (p *sexprParser) integer() (*big.Int, error) {
	t, err := p.expect(tokAtom)
	if err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(t.text, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", t.text)
	}
	return n, nil
}

func (p *sexprParser) expr() (Expr, error) {
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	head, err := p.expect(tokAtom)
	if err != nil {
		return nil, err
	}
	var x Expr
	switch head.text {
	case "Int":
		n, err := p.integer()
		if err != nil {
			return nil, err
		}
		x = NBig(n)
	case "Rat":
		num, err := p.integer()
		if err != nil {
			return nil, err
		}
		den, err := p.integer()
		if err != nil {
			return nil, err
		}
		if x, err = RatBig(num, den); err != nil {
			return nil, err
		}
	case "Sym":
		name, err := p.name()
		if err != nil {
			return nil, err
		}
		x = S(name)
	case "Fn":
		name, err := p.name()
		if err != nil {
			return nil, err
		}
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		x = FuncOf(name, arg)
	case "+", "*", "^":
		var items []Expr
		for p.pos < len(p.toks) && p.toks[p.pos].kind == tokLParen {
			item, err := p.expr()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		switch head.text {
		case "+":
			x = AddOf(items...)
		case "*":
			x = MulOf(items...)
		default:
			if len(items) != 2 {
				return nil, fmt.Errorf("^ takes 2 operands, got %d", len(items))
			}
			x = PowOf(items[0], items[1])
		}
	default:
		return nil, fmt.Errorf("unknown head %q", head.text)
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return x, nil
}
