package gocas

// Expand distributes products over sums and multiplies out non-negative
// integer powers of sums, then simplifies.
func (e *Engine) Expand(x Expr) (Expr, error) {
	s, err := e.simplify(x)
	if err != nil {
		return nil, withOp(err, "expand")
	}
	out, err := e.expandNode(s)
	if err != nil {
		return nil, withOp(err, "expand")
	}
	out, err = e.simplify(out)
	if err != nil {
		return nil, withOp(err, "expand")
	}
	return out, nil
}

// expandNode works on canonical input and returns canonical output.
func (e *Engine) expandNode(x Expr) (Expr, error) {
	switch v := x.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			et, err := e.expandNode(t)
			if err != nil {
				return nil, err
			}
			terms[i] = et
		}
		return e.combineAdd(terms)
	case *Mul:
		acc := []Expr{N(1)}
		for _, f := range v.factors {
			ef, err := e.expandNode(f)
			if err != nil {
				return nil, err
			}
			if acc, err = e.mulTerms(acc, addends(ef)); err != nil {
				return nil, err
			}
		}
		return e.combineAdd(acc)
	case *Pow:
		base, err := e.expandNode(v.base)
		if err != nil {
			return nil, err
		}
		k, ok := v.exp.(*Num)
		n, small := int64(0), false
		if ok {
			n, small = k.Int64()
		}
		if _, isSum := base.(*Add); !isSum || !small || n == 0 || abs64(n) > int64(e.cfg.MaxDegree) {
			return e.simplifyPow(base, v.exp)
		}
		acc := []Expr{N(1)}
		for i := int64(0); i < abs64(n); i++ {
			if acc, err = e.mulTerms(acc, addends(base)); err != nil {
				return nil, err
			}
		}
		sum, err := e.combineAdd(acc)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return e.simplifyPow(sum, N(-1))
		}
		return sum, nil
	case *Func:
		arg, err := e.expandNode(v.arg)
		if err != nil {
			return nil, err
		}
		return e.simplifyFunc(v.name, arg)
	}
	return x, nil
}

func addends(x Expr) []Expr {
	if a, ok := x.(*Add); ok {
		return a.terms
	}
	return []Expr{x}
}

// mulTerms returns every pairwise canonical product of a and b.
func (e *Engine) mulTerms(a, b []Expr) ([]Expr, error) {
	out := make([]Expr, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			p, err := e.combineMul([]Expr{x, y})
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}
	return out, nil
}
