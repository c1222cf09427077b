package gocas_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/njchilds90/gocas"
)

func call(tool string, params map[string]interface{}) gocas.ToolResponse {
	return gocas.HandleToolCall(gocas.ToolRequest{Tool: tool, Params: params})
}

// ============================================================
// Tool dispatcher tests
// ============================================================

func TestTool_Simplify(t *testing.T) {
	resp := call("simplify", map[string]interface{}{"expr": "(+ (Sym x) (Sym x) (Int 1))"})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "2*x + 1" {
		t.Errorf("want 2*x + 1, got %s", resp.String)
	}
	if resp.LaTeX != "2 x + 1" {
		t.Errorf("want 2 x + 1, got %s", resp.LaTeX)
	}
	obj, ok := resp.Result.(map[string]interface{})
	if !ok || obj["type"] != "add" {
		t.Errorf("want tagged add object, got %v", resp.Result)
	}
}

func TestTool_JSONParams(t *testing.T) {
	var params map[string]interface{}
	body := `{"expr":{"type":"pow","base":{"type":"sym","name":"x"},"exp":{"type":"num","value":"3"}},"var":"x"}`
	if err := json.Unmarshal([]byte(body), &params); err != nil {
		t.Fatal(err)
	}
	resp := call("diff", params)
	if resp.String != "3*x^2" {
		t.Errorf("want 3*x^2, got %s (%s)", resp.String, resp.Error)
	}
}

func TestTool_Calculus(t *testing.T) {
	cases := []struct {
		tool   string
		params map[string]interface{}
		want   string
	}{
		{"integrate", map[string]interface{}{"expr": "(Fn cos (Sym x))", "var": "x"}, "sin(x)"},
		{"diffn", map[string]interface{}{"expr": "(^ (Sym x) (Int 3))", "var": "x", "n": float64(3)}, "6"},
		{"gradient", map[string]interface{}{"expr": "(* (Sym x) (Sym y))", "vars": []interface{}{"x", "y"}}, "y, x"},
		{"solve", map[string]interface{}{"expr": "(+ (^ (Sym x) (Int 2)) (Int -4))", "var": "x"}, "-2, 2"},
		{"roots", map[string]interface{}{"expr": "(+ (^ (Sym x) (Int 2)) (Int 1))", "var": "x"}, "0 + (-1)*i, 0 + (1)*i"},
		{"substitute", map[string]interface{}{"expr": "(+ (Sym x) (Int 1))", "var": "x", "value": "(Rat 1 2)"}, "3/2"},
		{"evalf", map[string]interface{}{"expr": "(^ (Sym x) (Int 2))", "bindings": map[string]interface{}{"x": float64(3)}}, "9"},
		{"degree", map[string]interface{}{"expr": "(^ (Sym x) (Int 5))", "var": "x"}, "5"},
		{"poly_coeffs", map[string]interface{}{"expr": "(+ (Sym x) (Int 2))", "var": "x"}, "2, 1"},
		{"expand", map[string]interface{}{"expr": "(^ (+ (Sym x) (Int 1)) (Int 2))"}, "x^2 + 2*x + 1"},
		{"to_sexpr", map[string]interface{}{"expr": map[string]interface{}{"type": "sym", "name": "x"}}, "(Sym x)"},
		{"free_symbols", map[string]interface{}{"expr": "(+ (Sym y) (Sym x))"}, "x, y"},
		{"simplify_batch", map[string]interface{}{"exprs": []interface{}{"(+ (Sym x) (Sym x))", "(* (Sym y) (Sym y))"}}, "2*x, y^2"},
		{"jacobian", map[string]interface{}{
			"exprs": []interface{}{"(* (Sym x) (Sym y))", "(+ (Sym x) (Sym y))"},
			"vars":  []interface{}{"x", "y"},
		}, "[[y, x], [1, 1]]"},
		{"hessian", map[string]interface{}{"expr": "(* (^ (Sym x) (Int 2)) (Sym y))", "vars": []interface{}{"x", "y"}}, "[[2*y, 2*x], [2*x, 0]]"},
		{"laplacian", map[string]interface{}{"expr": "(+ (^ (Sym x) (Int 2)) (^ (Sym y) (Int 2)))", "vars": []interface{}{"x", "y"}}, "4"},
		{"definite_integrate", map[string]interface{}{"expr": "(^ (Sym x) (Int 2))", "var": "x", "lower": "(Int 0)", "upper": "(Int 3)"}, "9"},
		{"taylor", map[string]interface{}{"expr": "(Fn sin (Sym x))", "var": "x", "order": float64(4)}, "x - x^3/6"},
		{"taylor", map[string]interface{}{"expr": "(Fn ln (Sym x))", "var": "x", "at": "(Int 1)", "order": float64(1)}, "x - 1"},
	}
	for _, c := range cases {
		t.Run(c.tool, func(t *testing.T) {
			resp := call(c.tool, c.params)
			if resp.Error != "" {
				t.Fatalf("unexpected error: %s", resp.Error)
			}
			if resp.String != c.want {
				t.Errorf("want %s, got %s", c.want, resp.String)
			}
		})
	}
}

func TestTool_Errors(t *testing.T) {
	cases := []struct {
		tool   string
		params map[string]interface{}
		code   gocas.ErrorKind
	}{
		{"nope", nil, gocas.KindInvalidArgument},
		{"simplify", map[string]interface{}{}, gocas.KindInvalidArgument},
		{"simplify", map[string]interface{}{"expr": 42.0}, gocas.KindInvalidArgument},
		{"simplify", map[string]interface{}{"expr": "(Int"}, gocas.KindParseError},
		{"diff", map[string]interface{}{"expr": "(Sym x)"}, gocas.KindInvalidArgument},
		{"diffn", map[string]interface{}{"expr": "(Sym x)", "var": "x", "n": 1.5}, gocas.KindInvalidArgument},
		{"integrate", map[string]interface{}{"expr": "(Fn ln (Fn ln (Sym x)))", "var": "x"}, gocas.KindNonElementaryIntegral},
		{"solve", map[string]interface{}{"expr": "(+ (^ (Sym x) (Int 3)) (Int -2))", "var": "x"}, gocas.KindUnsolvedPolynomial},
		{"evalf", map[string]interface{}{"expr": "(Sym x)"}, gocas.KindUnboundSymbol},
		{"evalf", map[string]interface{}{"expr": "(Sym x)", "bindings": map[string]interface{}{"x": "two"}}, gocas.KindInvalidArgument},
		{"definite_integrate", map[string]interface{}{"expr": "(Sym x)", "var": "x", "lower": "(Int 0)", "upper": "(Sym x)"}, gocas.KindInvalidArgument},
		{"taylor", map[string]interface{}{"expr": "(Sym x)", "var": "x", "order": float64(-1)}, gocas.KindInvalidArgument},
		{"jacobian", map[string]interface{}{"exprs": "(Sym x)", "vars": []interface{}{"x"}}, gocas.KindInvalidArgument},
	}
	for _, c := range cases {
		resp := call(c.tool, c.params)
		if resp.Code != c.code {
			t.Errorf("%s: want code %s, got %q (%s)", c.tool, c.code, resp.Code, resp.Error)
		}
		if resp.Error == "" {
			t.Errorf("%s: want an error message", c.tool)
		}
	}
}

func TestTool_ResponseMarshals(t *testing.T) {
	eng, err := gocas.New(gocas.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	resp := eng.HandleToolCall(context.Background(), gocas.ToolRequest{
		Tool:   "to_latex",
		Params: map[string]interface{}{"expr": "(^ (Sym x) (Rat 1 2))"},
	})
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `\\sqrt{x}`) {
		t.Errorf("want escaped \\sqrt{x} in %s", b)
	}
}

func TestToolSpec(t *testing.T) {
	var schema struct {
		Tools []struct {
			Name        string                 `json:"name"`
			InputSchema map[string]interface{} `json:"inputSchema"`
		} `json:"tools"`
	}
	if err := json.Unmarshal([]byte(gocas.ToolSpec()), &schema); err != nil {
		t.Fatalf("ToolSpec is not JSON: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range schema.Tools {
		names[tool.Name] = true
		if tool.InputSchema["type"] != "object" {
			t.Errorf("%s: want object schema", tool.Name)
		}
	}
	for _, want := range []string{"simplify", "diff", "integrate", "definite_integrate", "taylor", "jacobian", "hessian", "solve", "substitute", "evalf", "to_latex"} {
		if !names[want] {
			t.Errorf("tool %s missing from schema", want)
		}
	}
	resp := call("tool_spec", nil)
	if resp.Error != "" || resp.Result == nil {
		t.Errorf("tool_spec: want the schema, got %+v", resp)
	}
}
