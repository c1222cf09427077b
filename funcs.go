package gocas

import (
	"math"
)

// ============================================================
// Function table
// ============================================================

// funcRule describes one elementary function. Every component that needs
// per-function knowledge (derivative, integral, evaluation, rendering,
// simplification) reads it from here, so adding a function only touches
// this table.
type funcRule struct {
	latex string
	// deriv returns f'(u).
	deriv func(u Expr) Expr
	// antideriv returns a primitive F(u) with F' = f, or nil.
	antideriv func(u Expr) Expr
	eval      func(x float64) (float64, error)
	// exact applies value identities to an already simplified argument.
	exact func(arg Expr) (Expr, bool)
}

// funcAliases maps accepted spellings onto their table entry.
var funcAliases = map[string]string{
	"log": "ln",
}

var funcTable map[string]*funcRule

func init() {
	half := F(1, 2)
	funcTable = map[string]*funcRule{
		"sin": {
			latex:     `\sin`,
			deriv:     func(u Expr) Expr { return CosOf(u) },
			antideriv: func(u Expr) Expr { return NegOf(CosOf(u)) },
			eval:      plain(math.Sin),
			exact:     atZero(0),
		},
		"cos": {
			latex:     `\cos`,
			deriv:     func(u Expr) Expr { return NegOf(SinOf(u)) },
			antideriv: func(u Expr) Expr { return SinOf(u) },
			eval:      plain(math.Cos),
			exact:     atZero(1),
		},
		"tan": {
			latex:     `\tan`,
			deriv:     func(u Expr) Expr { return PowOf(CosOf(u), N(-2)) },
			antideriv: func(u Expr) Expr { return NegOf(LnOf(CosOf(u))) },
			eval:      plain(math.Tan),
			exact:     atZero(0),
		},
		"exp": {
			latex:     `\exp`,
			deriv:     func(u Expr) Expr { return ExpOf(u) },
			antideriv: func(u Expr) Expr { return ExpOf(u) },
			eval:      plain(math.Exp),
			exact: func(arg Expr) (Expr, bool) {
				if isNum(arg, 0) {
					return N(1), true
				}
				if f, ok := arg.(*Func); ok && f.name == "ln" {
					return f.arg, true
				}
				return nil, false
			},
		},
		"ln": {
			latex:     `\ln`,
			deriv:     func(u Expr) Expr { return PowOf(u, N(-1)) },
			antideriv: func(u Expr) Expr { return SubOf(MulOf(u, LnOf(u)), u) },
			eval: func(x float64) (float64, error) {
				if x <= 0 {
					return 0, newError(KindDomainError, "", "ln(%g)", x)
				}
				return math.Log(x), nil
			},
			exact: func(arg Expr) (Expr, bool) {
				if isNum(arg, 1) {
					return N(0), true
				}
				if f, ok := arg.(*Func); ok && f.name == "exp" {
					return f.arg, true
				}
				return nil, false
			},
		},
		"sqrt": {
			latex: `\sqrt`,
			deriv: func(u Expr) Expr { return MulOf(half, PowOf(u, F(-1, 2))) },
			eval: func(x float64) (float64, error) {
				if x < 0 {
					return 0, newError(KindDomainError, "", "sqrt(%g)", x)
				}
				return math.Sqrt(x), nil
			},
			exact: func(arg Expr) (Expr, bool) { return PowOf(arg, half), true },
		},
		"asin": {
			latex: `\arcsin`,
			deriv: func(u Expr) Expr {
				return PowOf(SubOf(N(1), PowOf(u, N(2))), F(-1, 2))
			},
			eval:  unitInterval("asin", math.Asin),
			exact: atZero(0),
		},
		"acos": {
			latex: `\arccos`,
			deriv: func(u Expr) Expr {
				return NegOf(PowOf(SubOf(N(1), PowOf(u, N(2))), F(-1, 2)))
			},
			eval: unitInterval("acos", math.Acos),
			exact: func(arg Expr) (Expr, bool) {
				if isNum(arg, 1) {
					return N(0), true
				}
				return nil, false
			},
		},
		"atan": {
			latex: `\arctan`,
			deriv: func(u Expr) Expr { return PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1)) },
			eval:  plain(math.Atan),
			exact: atZero(0),
		},
		"sinh": {
			latex:     `\sinh`,
			deriv:     func(u Expr) Expr { return CoshOf(u) },
			antideriv: func(u Expr) Expr { return CoshOf(u) },
			eval:      plain(math.Sinh),
			exact:     atZero(0),
		},
		"cosh": {
			latex:     `\cosh`,
			deriv:     func(u Expr) Expr { return SinhOf(u) },
			antideriv: func(u Expr) Expr { return SinhOf(u) },
			eval:      plain(math.Cosh),
			exact:     atZero(1),
		},
		"tanh": {
			latex: `\tanh`,
			deriv: func(u Expr) Expr { return PowOf(CoshOf(u), N(-2)) },
			eval:  plain(math.Tanh),
			exact: atZero(0),
		},
		"abs": {
			deriv: func(u Expr) Expr { return MulOf(u, PowOf(AbsOf(u), N(-1))) },
			eval:  plain(math.Abs),
			exact: func(arg Expr) (Expr, bool) {
				if n, ok := arg.(*Num); ok {
					return n.Abs(), true
				}
				if f, ok := arg.(*Func); ok && f.name == "abs" {
					return f, true
				}
				return nil, false
			},
		},
	}
}

// lookupFunc resolves aliases and returns the canonical name and its rule.
func lookupFunc(name string) (string, *funcRule, bool) {
	if canon, ok := funcAliases[name]; ok {
		name = canon
	}
	r, ok := funcTable[name]
	return name, r, ok
}

func plain(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) { return f(x), nil }
}

func unitInterval(name string, f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		if x < -1 || x > 1 {
			return 0, newError(KindDomainError, "", "%s(%g)", name, x)
		}
		return f(x), nil
	}
}

// atZero maps f(0) to the integer v.
func atZero(v int64) func(Expr) (Expr, bool) {
	return func(arg Expr) (Expr, bool) {
		if isNum(arg, 0) {
			return N(v), true
		}
		return nil, false
	}
}
