package gocas

// ============================================================
// Differentiation
// ============================================================

// Diff returns the simplified derivative of x with respect to varName.
func (e *Engine) Diff(x Expr, varName string) (Expr, error) {
	s, err := e.simplify(x)
	if err != nil {
		return nil, withOp(err, "diff")
	}
	d, err := e.diff(s, varName)
	if err != nil {
		return nil, withOp(err, "diff")
	}
	out, err := e.simplify(d)
	if err != nil {
		return nil, withOp(err, "diff")
	}
	return out, nil
}

// DiffN returns the n-th derivative. n = 0 returns the simplified input.
func (e *Engine) DiffN(x Expr, varName string, n int) (Expr, error) {
	if n < 0 {
		return nil, newError(KindInvalidArgument, "diffn", "negative order %d", n)
	}
	cur, err := e.simplify(x)
	if err != nil {
		return nil, withOp(err, "diffn")
	}
	for i := 0; i < n; i++ {
		if cur, err = e.Diff(cur, varName); err != nil {
			return nil, withOp(err, "diffn")
		}
		if isNum(cur, 0) {
			break
		}
	}
	return cur, nil
}

// Gradient returns the partial derivatives of x, one per name in varNames.
func (e *Engine) Gradient(x Expr, varNames []string) ([]Expr, error) {
	out := make([]Expr, len(varNames))
	for i, v := range varNames {
		d, err := e.Diff(x, v)
		if err != nil {
			return nil, withOp(err, "gradient")
		}
		out[i] = d
	}
	return out, nil
}

// diff builds the raw derivative of a canonical tree.
func (e *Engine) diff(x Expr, v string) (Expr, error) {
	if !Depends(x, v) {
		return N(0), nil
	}
	switch t := x.(type) {
	case *Sym:
		return N(1), nil
	case *Add:
		terms := make([]Expr, len(t.terms))
		for i, term := range t.terms {
			d, err := e.diff(term, v)
			if err != nil {
				return nil, err
			}
			terms[i] = d
		}
		return AddOf(terms...), nil
	case *Mul:
		// Sum over "differentiate one factor, keep the rest".
		var terms []Expr
		for i, f := range t.factors {
			if !Depends(f, v) {
				continue
			}
			d, err := e.diff(f, v)
			if err != nil {
				return nil, err
			}
			prod := make([]Expr, 0, len(t.factors))
			prod = append(prod, t.factors[:i]...)
			prod = append(prod, d)
			prod = append(prod, t.factors[i+1:]...)
			terms = append(terms, MulOf(prod...))
		}
		return AddOf(terms...), nil
	case *Pow:
		return e.diffPow(t, v)
	case *Func:
		_, rule, ok := lookupFunc(t.name)
		if !ok || rule.deriv == nil {
			return nil, newError(KindUnknownDerivative, "", "%s(%s)", t.name, t.arg)
		}
		du, err := e.diff(t.arg, v)
		if err != nil {
			return nil, err
		}
		return MulOf(rule.deriv(t.arg), du), nil
	}
	return nil, newError(KindInvalidArgument, "", "unknown node %T", x)
}

func (e *Engine) diffPow(p *Pow, v string) (Expr, error) {
	b, ex := p.base, p.exp
	baseDep, expDep := Depends(b, v), Depends(ex, v)
	switch {
	case !expDep:
		// e * b^(e-1) * b'
		db, err := e.diff(b, v)
		if err != nil {
			return nil, err
		}
		return MulOf(ex, PowOf(b, AddOf(ex, N(-1))), db), nil
	case !baseDep:
		// b^e * ln(b) * e'
		de, err := e.diff(ex, v)
		if err != nil {
			return nil, err
		}
		return MulOf(p, LnOf(b), de), nil
	}
	db, err := e.diff(b, v)
	if err != nil {
		return nil, err
	}
	de, err := e.diff(ex, v)
	if err != nil {
		return nil, err
	}
	inner := AddOf(MulOf(de, LnOf(b)), MulOf(ex, db, PowOf(b, N(-1))))
	return MulOf(p, inner), nil
}

// ============================================================
// Partial derivatives: Jacobian, Hessian, Laplacian
// ============================================================

// Jacobian returns the len(xs)×len(varNames) matrix of partial derivatives,
// row i being the gradient of xs[i].
func (e *Engine) Jacobian(xs []Expr, varNames []string) ([][]Expr, error) {
	out := make([][]Expr, len(xs))
	for i, x := range xs {
		row, err := e.Gradient(x, varNames)
		if err != nil {
			return nil, withOp(err, "jacobian")
		}
		out[i] = row
	}
	return out, nil
}

// Hessian returns the matrix of second partial derivatives of x.
func (e *Engine) Hessian(x Expr, varNames []string) ([][]Expr, error) {
	grad, err := e.Gradient(x, varNames)
	if err != nil {
		return nil, withOp(err, "hessian")
	}
	out, err := e.Jacobian(grad, varNames)
	if err != nil {
		return nil, withOp(err, "hessian")
	}
	return out, nil
}

// Laplacian returns the sum of the unmixed second partial derivatives.
func (e *Engine) Laplacian(x Expr, varNames []string) (Expr, error) {
	terms := make([]Expr, len(varNames))
	for i, v := range varNames {
		d, err := e.DiffN(x, v, 2)
		if err != nil {
			return nil, withOp(err, "laplacian")
		}
		terms[i] = d
	}
	out, err := e.simplify(AddOf(terms...))
	if err != nil {
		return nil, withOp(err, "laplacian")
	}
	return out, nil
}
