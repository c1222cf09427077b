package gocas

import (
	"math"
)

// Evalf collapses x to a float64. Any free symbol fails with UnboundSymbol.
func Evalf(x Expr) (float64, error) { return EvalfWith(x, nil) }

// EvalfWith is Evalf with numeric values for some symbols.
func EvalfWith(x Expr, bindings map[string]float64) (float64, error) {
	v, err := evalf(x, bindings)
	if err != nil {
		return 0, withOp(err, "evalf")
	}
	return v, nil
}

func (e *Engine) Evalf(x Expr) (float64, error) { return Evalf(x) }

func (e *Engine) EvalfWith(x Expr, bindings map[string]float64) (float64, error) {
	return EvalfWith(x, bindings)
}

func evalf(x Expr, bindings map[string]float64) (float64, error) {
	var v float64
	switch t := x.(type) {
	case *Num:
		v = t.Float64()
	case *Sym:
		b, ok := bindings[t.name]
		if !ok {
			return 0, newError(KindUnboundSymbol, "", "%s", t.name)
		}
		v = b
	case *Add:
		for _, term := range t.terms {
			f, err := evalf(term, bindings)
			if err != nil {
				return 0, err
			}
			v += f
		}
	case *Mul:
		v = 1
		for _, factor := range t.factors {
			f, err := evalf(factor, bindings)
			if err != nil {
				return 0, err
			}
			v *= f
		}
	case *Pow:
		b, err := evalf(t.base, bindings)
		if err != nil {
			return 0, err
		}
		ex, err := evalf(t.exp, bindings)
		if err != nil {
			return 0, err
		}
		if v, err = evalPow(b, ex, t); err != nil {
			return 0, err
		}
	case *Func:
		_, rule, ok := lookupFunc(t.name)
		if !ok {
			return 0, newError(KindUnknownFunction, "", "%s", t.name)
		}
		arg, err := evalf(t.arg, bindings)
		if err != nil {
			return 0, err
		}
		if v, err = rule.eval(arg); err != nil {
			return 0, err
		}
	default:
		return 0, newError(KindInvalidArgument, "", "unknown node %T", x)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, newError(KindNonFinite, "", "%s evaluates to %g", x, v)
	}
	return v, nil
}

func evalPow(b, ex float64, p *Pow) (float64, error) {
	if b == 0 && ex <= 0 {
		return 0, newError(KindUndefinedPower, "", "0^%g", ex)
	}
	if b < 0 && ex != math.Trunc(ex) {
		// Odd roots of negative numbers are real.
		if k, ok := p.exp.(*Num); ok && k.Denominator().Bit(0) == 1 {
			r := math.Pow(-b, ex)
			if k.Numerator().Bit(0) == 1 {
				r = -r
			}
			return r, nil
		}
		return 0, newError(KindDomainError, "", "%g^%g", b, ex)
	}
	return math.Pow(b, ex), nil
}
