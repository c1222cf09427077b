package gocas

// ============================================================
// Integration (rule-based)
// ============================================================

// Integrate returns an antiderivative of x with respect to varName, without
// the constant of integration. Only closed forms from a fixed rule set are
// produced; anything else fails with NonElementaryIntegral.
//
// Rules, first match wins:
//   - terms free of varName: c → c*x
//   - powers of a linear argument: (a*x+b)^n, including n = -1 → ln
//   - constant bases: c^(a*x+b) → c^(a*x+b)/(a*ln(c))
//   - linearity over sums and constant factors of products
//   - sin, cos, tan, exp, ln, sinh, cosh of a linear argument
//   - any other polynomial in varName, term by term after multiplying out
func (e *Engine) Integrate(x Expr, varName string) (Expr, error) {
	s, err := e.simplify(x)
	if err != nil {
		return nil, withOp(err, "integrate")
	}
	if out, ok := e.memo.get("integrate", varName, s); ok {
		return out, nil
	}
	r, err := e.integrate(s, varName)
	if err != nil {
		return nil, withOp(err, "integrate")
	}
	out, err := e.simplify(r)
	if err != nil {
		return nil, withOp(err, "integrate")
	}
	e.memo.put("integrate", varName, s, out)
	return out, nil
}

func (e *Engine) integrate(x Expr, v string) (Expr, error) {
	if !Depends(x, v) {
		return MulOf(x, S(v)), nil
	}
	if out, ok := e.integratePow(x, v); ok {
		return out, nil
	}
	switch t := x.(type) {
	case *Add:
		terms := make([]Expr, len(t.terms))
		for i, term := range t.terms {
			r, err := e.integrate(term, v)
			if err != nil {
				return nil, err
			}
			terms[i] = r
		}
		return AddOf(terms...), nil
	case *Mul:
		var consts, dep []Expr
		for _, f := range t.factors {
			if Depends(f, v) {
				dep = append(dep, f)
			} else {
				consts = append(consts, f)
			}
		}
		if len(dep) == 1 && len(consts) > 0 {
			r, err := e.integrate(dep[0], v)
			if err != nil {
				return nil, err
			}
			return MulOf(append(consts, r)...), nil
		}
	case *Func:
		_, rule, ok := lookupFunc(t.name)
		if ok && rule.antideriv != nil {
			if a, _, linear := e.linearCoeffs(t.arg, v); linear {
				return DivOf(rule.antideriv(t.arg), a), nil
			}
		}
	}
	return e.integratePoly(x, v)
}

// integratePoly integrates a polynomial kept in factored form, such as
// x*(x+1) or (x^2+1)^2, as sum c_i*v^(i+1)/(i+1).
func (e *Engine) integratePoly(x Expr, v string) (Expr, error) {
	raw, err := e.polyOf(x, v)
	if KindOf(err) == KindNotPolynomial {
		return nil, newError(KindNonElementaryIntegral, "", "%s d%s", x, v)
	}
	if err != nil {
		return nil, err
	}
	terms := make([]Expr, len(raw))
	for i, c := range raw {
		k := int64(i + 1)
		terms[i] = MulOf(c, PowOf(S(v), N(k)), F(1, k))
	}
	return AddOf(terms...), nil
}

// integratePow handles var, (a*var+b)^n and c^(a*var+b).
func (e *Engine) integratePow(x Expr, v string) (Expr, bool) {
	base, ex := splitPow(x)
	if _, ok := x.(*Pow); !ok {
		if _, isSym := x.(*Sym); !isSym {
			return nil, false
		}
	}
	if n, ok := ex.(*Num); ok {
		a, _, linear := e.linearCoeffs(base, v)
		if !linear {
			return nil, false
		}
		if n.IsNegOne() {
			return DivOf(LnOf(base), a), true
		}
		n1 := n.Add(numOne)
		return DivOf(PowOf(base, n1), MulOf(a, n1)), true
	}
	if Depends(base, v) {
		return nil, false
	}
	if c, ok := base.(*Num); ok && !c.IsPositive() {
		return nil, false
	}
	a, _, linear := e.linearCoeffs(ex, v)
	if !linear {
		return nil, false
	}
	return DivOf(x, MulOf(a, LnOf(base))), true
}

// linearCoeffs reports u = a*var + b with a, b free of var and a nonzero.
func (e *Engine) linearCoeffs(u Expr, v string) (a, b Expr, ok bool) {
	d, err := e.diff(u, v)
	if err != nil {
		return nil, nil, false
	}
	if a, err = e.simplify(d); err != nil || Depends(a, v) || isNum(a, 0) {
		return nil, nil, false
	}
	if b, err = e.simplify(SubOf(u, MulOf(a, S(v)))); err != nil {
		return nil, nil, false
	}
	// 2*(x+1) - 2*x only cancels once distributed.
	if b, err = e.expandNode(b); err != nil || Depends(b, v) {
		return nil, nil, false
	}
	return a, b, true
}

// DefiniteIntegrate returns F(upper) - F(lower) for the antiderivative F of
// x. The bounds must be free of varName. The result is exact; the caller is
// responsible for x being continuous between the bounds.
func (e *Engine) DefiniteIntegrate(x Expr, varName string, lower, upper Expr) (Expr, error) {
	if Depends(lower, varName) || Depends(upper, varName) {
		return nil, newError(KindInvalidArgument, "definite_integrate", "bounds must not depend on %s", varName)
	}
	f, err := e.Integrate(x, varName)
	if err != nil {
		return nil, withOp(err, "definite_integrate")
	}
	hi, err := e.simplify(Subs(f, varName, upper))
	if err != nil {
		return nil, withOp(err, "definite_integrate")
	}
	lo, err := e.simplify(Subs(f, varName, lower))
	if err != nil {
		return nil, withOp(err, "definite_integrate")
	}
	out, err := e.simplify(SubOf(hi, lo))
	if err != nil {
		return nil, withOp(err, "definite_integrate")
	}
	return out, nil
}
