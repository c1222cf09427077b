package gocas

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================
// Tool Interface
// ============================================================

// ToolRequest is one call from an agent framework. Expression parameters
// are tagged JSON objects or S-expression strings.
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// ToolResponse carries either a result or an error. Code is the ErrorKind
// of a failed engine operation.
type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
	Code   ErrorKind   `json:"code,omitempty"`
}

// HandleToolCall dispatches req on the default engine.
func HandleToolCall(req ToolRequest) ToolResponse {
	return Default().HandleToolCall(context.Background(), req)
}

func failure(err error) ToolResponse {
	code := KindOf(err)
	if code == "" {
		code = KindInvalidArgument
	}
	return ToolResponse{Error: err.Error(), Code: code}
}

type toolParams map[string]interface{}

func (p toolParams) expr(key string) (Expr, error) {
	v, ok := p[key]
	if !ok {
		return nil, newError(KindInvalidArgument, "tool", "missing param: %s", key)
	}
	return paramExpr(key, v)
}

func paramExpr(key string, v interface{}) (Expr, error) {
	switch t := v.(type) {
	case map[string]interface{}:
		return FromJSON(t)
	case string:
		return ParseSExpr(t)
	}
	return nil, newError(KindInvalidArgument, "tool", "param %s must be an expression object or S-expression", key)
}

func (p toolParams) exprList(key string) ([]Expr, error) {
	raw, ok := p[key].([]interface{})
	if !ok {
		return nil, newError(KindInvalidArgument, "tool", "param %s must be an array", key)
	}
	out := make([]Expr, len(raw))
	for i, r := range raw {
		x, err := paramExpr(fmt.Sprintf("%s[%d]", key, i), r)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

func (p toolParams) str(key string) (string, error) {
	s, ok := p[key].(string)
	if !ok || s == "" {
		return "", newError(KindInvalidArgument, "tool", "param %s must be a non-empty string", key)
	}
	return s, nil
}

func (p toolParams) stringList(key string) ([]string, error) {
	raw, ok := p[key].([]interface{})
	if !ok {
		return nil, newError(KindInvalidArgument, "tool", "param %s must be an array", key)
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		s, ok := r.(string)
		if !ok {
			return nil, newError(KindInvalidArgument, "tool", "param %s[%d] must be a string", key, i)
		}
		out[i] = s
	}
	return out, nil
}

func (p toolParams) integer(key string) (int, error) {
	switch v := p[key].(type) {
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), nil
		}
	}
	return 0, newError(KindInvalidArgument, "tool", "param %s must be an integer", key)
}

func (p toolParams) numbers(key string) (map[string]float64, error) {
	v, ok := p[key]
	if !ok {
		return nil, nil
	}
	raw, ok := v.(map[string]interface{})
	if !ok {
		return nil, newError(KindInvalidArgument, "tool", "param %s must be an object", key)
	}
	out := make(map[string]float64, len(raw))
	for name, r := range raw {
		switch n := r.(type) {
		case float64:
			out[name] = n
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return nil, newError(KindInvalidArgument, "tool", "param %s.%s must be a number", key, name)
			}
			out[name] = f
		default:
			return nil, newError(KindInvalidArgument, "tool", "param %s.%s must be a number", key, name)
		}
	}
	return out, nil
}

func respond(x Expr) ToolResponse {
	return ToolResponse{Result: toJSONValue(x), LaTeX: LaTeX(x), String: String(x)}
}

func respondList(xs []Expr) ToolResponse {
	objs := make([]interface{}, len(xs))
	strs := make([]string, len(xs))
	tex := make([]string, len(xs))
	for i, x := range xs {
		objs[i] = toJSONValue(x)
		strs[i] = String(x)
		tex[i] = LaTeX(x)
	}
	return ToolResponse{Result: objs, LaTeX: strings.Join(tex, ", "), String: strings.Join(strs, ", ")}
}

func respondMatrix(rows [][]Expr) ToolResponse {
	objs := make([]interface{}, len(rows))
	strs := make([]string, len(rows))
	tex := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, x := range row {
			cells[j] = LaTeX(x)
		}
		r := respondList(row)
		objs[i] = r.Result
		strs[i] = "[" + r.String + "]"
		tex[i] = strings.Join(cells, " & ")
	}
	return ToolResponse{
		Result: objs,
		LaTeX:  `\begin{pmatrix}` + strings.Join(tex, ` \\ `) + `\end{pmatrix}`,
		String: "[" + strings.Join(strs, ", ") + "]",
	}
}

// HandleToolCall runs one tool against e. Engine failures are reported in
// the response, never returned as Go errors.
func (e *Engine) HandleToolCall(ctx context.Context, req ToolRequest) ToolResponse {
	resp, err := e.dispatch(ctx, req)
	if err != nil {
		return failure(err)
	}
	return resp
}

func (e *Engine) dispatch(ctx context.Context, req ToolRequest) (ToolResponse, error) {
	p := toolParams(req.Params)
	exprVar := func() (Expr, string, error) {
		x, err := p.expr("expr")
		if err != nil {
			return nil, "", err
		}
		v, err := p.str("var")
		return x, v, err
	}

	switch req.Tool {
	case "simplify", "expand", "to_latex", "to_sexpr", "free_symbols":
		x, err := p.expr("expr")
		if err != nil {
			return ToolResponse{}, err
		}
		switch req.Tool {
		case "simplify":
			out, err := e.Simplify(x)
			if err != nil {
				return ToolResponse{}, err
			}
			return respond(out), nil
		case "expand":
			out, err := e.Expand(x)
			if err != nil {
				return ToolResponse{}, err
			}
			return respond(out), nil
		case "to_latex":
			return ToolResponse{Result: LaTeX(x), LaTeX: LaTeX(x), String: String(x)}, nil
		case "to_sexpr":
			s := ToSExpr(x)
			return ToolResponse{Result: s, String: s}, nil
		default:
			syms := FreeSymbols(x)
			return ToolResponse{Result: syms, String: strings.Join(syms, ", ")}, nil
		}

	case "diff", "integrate":
		x, v, err := exprVar()
		if err != nil {
			return ToolResponse{}, err
		}
		var out Expr
		if req.Tool == "diff" {
			out, err = e.Diff(x, v)
		} else {
			out, err = e.Integrate(x, v)
		}
		if err != nil {
			return ToolResponse{}, err
		}
		return respond(out), nil

	case "diffn":
		x, v, err := exprVar()
		if err != nil {
			return ToolResponse{}, err
		}
		n, err := p.integer("n")
		if err != nil {
			return ToolResponse{}, err
		}
		out, err := e.DiffN(x, v, n)
		if err != nil {
			return ToolResponse{}, err
		}
		return respond(out), nil

	case "gradient":
		x, err := p.expr("expr")
		if err != nil {
			return ToolResponse{}, err
		}
		vars, err := p.stringList("vars")
		if err != nil {
			return ToolResponse{}, err
		}
		out, err := e.Gradient(x, vars)
		if err != nil {
			return ToolResponse{}, err
		}
		return respondList(out), nil

	case "jacobian":
		xs, err := p.exprList("exprs")
		if err != nil {
			return ToolResponse{}, err
		}
		vars, err := p.stringList("vars")
		if err != nil {
			return ToolResponse{}, err
		}
		out, err := e.Jacobian(xs, vars)
		if err != nil {
			return ToolResponse{}, err
		}
		return respondMatrix(out), nil

	case "hessian", "laplacian":
		x, err := p.expr("expr")
		if err != nil {
			return ToolResponse{}, err
		}
		vars, err := p.stringList("vars")
		if err != nil {
			return ToolResponse{}, err
		}
		if req.Tool == "laplacian" {
			out, err := e.Laplacian(x, vars)
			if err != nil {
				return ToolResponse{}, err
			}
			return respond(out), nil
		}
		out, err := e.Hessian(x, vars)
		if err != nil {
			return ToolResponse{}, err
		}
		return respondMatrix(out), nil

	case "definite_integrate":
		x, v, err := exprVar()
		if err != nil {
			return ToolResponse{}, err
		}
		lower, err := p.expr("lower")
		if err != nil {
			return ToolResponse{}, err
		}
		upper, err := p.expr("upper")
		if err != nil {
			return ToolResponse{}, err
		}
		out, err := e.DefiniteIntegrate(x, v, lower, upper)
		if err != nil {
			return ToolResponse{}, err
		}
		return respond(out), nil

	case "taylor":
		x, v, err := exprVar()
		if err != nil {
			return ToolResponse{}, err
		}
		order, err := p.integer("order")
		if err != nil {
			return ToolResponse{}, err
		}
		at := Expr(N(0))
		if _, ok := p["at"]; ok {
			if at, err = p.expr("at"); err != nil {
				return ToolResponse{}, err
			}
		}
		out, err := e.Taylor(x, v, at, order)
		if err != nil {
			return ToolResponse{}, err
		}
		return respond(out), nil

	case "solve":
		x, v, err := exprVar()
		if err != nil {
			return ToolResponse{}, err
		}
		roots, err := e.Solve(x, v)
		if err != nil {
			return ToolResponse{}, err
		}
		return respondList(roots), nil

	case "roots":
		x, v, err := exprVar()
		if err != nil {
			return ToolResponse{}, err
		}
		roots, err := e.SolveRoots(x, v)
		if err != nil {
			return ToolResponse{}, err
		}
		objs := make([]interface{}, len(roots))
		strs := make([]string, len(roots))
		for i, r := range roots {
			objs[i] = map[string]interface{}{"re": toJSONValue(r.Re), "im": toJSONValue(r.Im)}
			strs[i] = String(r.Re) + " + (" + String(r.Im) + ")*i"
			if r.IsReal() {
				strs[i] = String(r.Re)
			}
		}
		return ToolResponse{Result: objs, String: strings.Join(strs, ", ")}, nil

	case "substitute":
		x, v, err := exprVar()
		if err != nil {
			return ToolResponse{}, err
		}
		val, err := p.expr("value")
		if err != nil {
			return ToolResponse{}, err
		}
		out, err := e.Simplify(Subs(x, v, val))
		if err != nil {
			return ToolResponse{}, err
		}
		return respond(out), nil

	case "evalf":
		x, err := p.expr("expr")
		if err != nil {
			return ToolResponse{}, err
		}
		bindings, err := p.numbers("bindings")
		if err != nil {
			return ToolResponse{}, err
		}
		f, err := EvalfWith(x, bindings)
		if err != nil {
			return ToolResponse{}, err
		}
		return ToolResponse{Result: f, String: fmt.Sprint(f)}, nil

	case "degree":
		x, v, err := exprVar()
		if err != nil {
			return ToolResponse{}, err
		}
		d, err := e.Degree(x, v)
		if err != nil {
			return ToolResponse{}, err
		}
		return ToolResponse{Result: d, String: fmt.Sprint(d)}, nil

	case "poly_coeffs":
		x, v, err := exprVar()
		if err != nil {
			return ToolResponse{}, err
		}
		cs, err := e.PolyCoeffs(x, v)
		if err != nil {
			return ToolResponse{}, err
		}
		return respondList(cs), nil

	case "simplify_batch":
		xs, err := p.exprList("exprs")
		if err != nil {
			return ToolResponse{}, err
		}
		out, err := e.SimplifyAll(ctx, xs)
		if err != nil {
			return ToolResponse{}, err
		}
		return respondList(out), nil

	case "tool_spec":
		return ToolResponse{Result: ToolSpec(), String: "tool specification"}, nil
	}
	return ToolResponse{}, newError(KindInvalidArgument, "tool", "unknown tool: %s", req.Tool)
}

// ToolSpec returns the JSON schema of every tool.
func ToolSpec() string {
	expr := map[string]string{"expr": "object"}
	exprVar := map[string]string{"expr": "object", "var": "string"}
	tools := []map[string]interface{}{
		ts("simplify", "Canonicalize an expression", []string{"expr"}, expr),
		ts("expand", "Distribute products and integer powers of sums", []string{"expr"}, expr),
		ts("diff", "First derivative d/dvar", []string{"expr", "var"}, exprVar),
		ts("diffn", "n-th derivative. Requires n (int)", []string{"expr", "var", "n"},
			map[string]string{"expr": "object", "var": "string", "n": "integer"}),
		ts("gradient", "Partial derivatives. Requires vars (string[])", []string{"expr", "vars"},
			map[string]string{"expr": "object", "vars": "array"}),
		ts("jacobian", "Matrix of partial derivatives of exprs (object[]) by vars (string[])", []string{"exprs", "vars"},
			map[string]string{"exprs": "array", "vars": "array"}),
		ts("hessian", "Matrix of second partial derivatives", []string{"expr", "vars"},
			map[string]string{"expr": "object", "vars": "array"}),
		ts("laplacian", "Sum of unmixed second partial derivatives", []string{"expr", "vars"},
			map[string]string{"expr": "object", "vars": "array"}),
		ts("integrate", "Elementary antiderivative (rule-based, fails when no rule applies)", []string{"expr", "var"}, exprVar),
		ts("definite_integrate", "Exact F(upper) - F(lower)", []string{"expr", "var", "lower", "upper"},
			map[string]string{"expr": "object", "var": "string", "lower": "object", "upper": "object"}),
		ts("taylor", "Taylor polynomial about at (default 0) up to order", []string{"expr", "var", "order"},
			map[string]string{"expr": "object", "var": "string", "at": "object", "order": "integer"}),
		ts("solve", "Roots of a polynomial equation expr = 0", []string{"expr", "var"}, exprVar),
		ts("roots", "Roots as {re, im} pairs, including complex ones", []string{"expr", "var"}, exprVar),
		ts("substitute", "Replace var with value and simplify", []string{"expr", "var", "value"},
			map[string]string{"expr": "object", "var": "string", "value": "object"}),
		ts("evalf", "Evaluate to a float. Optional bindings {name: number}", []string{"expr"},
			map[string]string{"expr": "object", "bindings": "object"}),
		ts("to_latex", "Render as LaTeX", []string{"expr"}, expr),
		ts("to_sexpr", "Render as an S-expression", []string{"expr"}, expr),
		ts("free_symbols", "Sorted symbol names", []string{"expr"}, expr),
		ts("degree", "Polynomial degree in var", []string{"expr", "var"}, exprVar),
		ts("poly_coeffs", "Polynomial coefficients, lowest degree first", []string{"expr", "var"}, exprVar),
		ts("simplify_batch", "Simplify many expressions concurrently", []string{"exprs"},
			map[string]string{"exprs": "array"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	b, _ := json.MarshalIndent(map[string]interface{}{"tools": tools}, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
