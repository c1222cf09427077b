package gocas

// ============================================================
// Taylor / Maclaurin series
// ============================================================

// Taylor returns the Taylor polynomial of x about varName = at, up to and
// including the (x-at)^order term:
//
//	sum_{k=0}^{order} f^(k)(at)/k! * (varName - at)^k
//
// Coefficients are exact, obtained by substituting at into each derivative.
// A derivative with a pole at the point, such as 1/x at 0, fails with
// UndefinedPower.
func (e *Engine) Taylor(x Expr, varName string, at Expr, order int) (Expr, error) {
	if order < 0 || order > e.cfg.MaxDegree {
		return nil, newError(KindInvalidArgument, "taylor", "order must be in [0, %d], got %d", e.cfg.MaxDegree, order)
	}
	if Depends(at, varName) {
		return nil, newError(KindInvalidArgument, "taylor", "expansion point %s depends on %s", at, varName)
	}
	cur, err := e.simplify(x)
	if err != nil {
		return nil, withOp(err, "taylor")
	}
	shift := SubOf(S(varName), at)
	scale := N(1)
	var terms []Expr
	for k := 0; k <= order; k++ {
		if k > 0 {
			if cur, err = e.Diff(cur, varName); err != nil {
				return nil, withOp(err, "taylor")
			}
			scale = scale.Mul(F(1, int64(k)))
		}
		c, err := e.simplify(Subs(cur, varName, at))
		if err != nil {
			return nil, withOp(err, "taylor")
		}
		if isNum(c, 0) {
			continue
		}
		terms = append(terms, MulOf(c, scale, PowOf(shift, N(int64(k)))))
	}
	out, err := e.simplify(AddOf(terms...))
	if err != nil {
		return nil, withOp(err, "taylor")
	}
	return out, nil
}

// Maclaurin is Taylor about 0.
func (e *Engine) Maclaurin(x Expr, varName string, order int) (Expr, error) {
	return e.Taylor(x, varName, N(0), order)
}
