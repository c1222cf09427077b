package gocas

import (
	"math/big"
)

// ============================================================
// Polynomial utilities
// ============================================================

// Poly is a univariate polynomial whose coefficients are canonical
// expressions free of Var. Coeffs[i] multiplies Var^i; the leading
// coefficient is nonzero except for the zero polynomial, which is [0].
type Poly struct {
	Var    string
	Coeffs []Expr
}

// Degree is the highest power of Var with a nonzero coefficient.
func (p *Poly) Degree() int { return len(p.Coeffs) - 1 }

// IsZero reports whether every coefficient is zero.
func (p *Poly) IsZero() bool { return len(p.Coeffs) == 1 && isNum(p.Coeffs[0], 0) }

// Expr rebuilds the polynomial as a raw sum.
func (p *Poly) Expr() Expr {
	x := S(p.Var)
	terms := make([]Expr, 0, len(p.Coeffs))
	for i, c := range p.Coeffs {
		switch i {
		case 0:
			terms = append(terms, c)
		case 1:
			terms = append(terms, MulOf(c, x))
		default:
			terms = append(terms, MulOf(c, PowOf(x, N(int64(i)))))
		}
	}
	return AddOf(terms...)
}

// rational returns the coefficients as exact rationals when they all are.
func (p *Poly) rational() ([]*big.Rat, bool) {
	out := make([]*big.Rat, len(p.Coeffs))
	for i, c := range p.Coeffs {
		n, ok := c.(*Num)
		if !ok {
			return nil, false
		}
		out[i] = n.Rat()
	}
	return out, true
}

// ToPoly converts x to a polynomial in varName. Products and non-negative
// integer powers are multiplied out, so factored input is accepted.
func (e *Engine) ToPoly(x Expr, varName string) (*Poly, error) {
	s, err := e.simplify(x)
	if err != nil {
		return nil, withOp(err, "poly")
	}
	raw, err := e.polyOf(s, varName)
	if err != nil {
		return nil, withOp(err, "poly")
	}
	coeffs := make([]Expr, len(raw))
	for i, c := range raw {
		ex, err := e.expandNode(c)
		if err != nil {
			return nil, withOp(err, "poly")
		}
		if coeffs[i], err = e.simplify(ex); err != nil {
			return nil, withOp(err, "poly")
		}
	}
	for len(coeffs) > 1 && isNum(coeffs[len(coeffs)-1], 0) {
		coeffs = coeffs[:len(coeffs)-1]
	}
	return &Poly{Var: varName, Coeffs: coeffs}, nil
}

// Degree returns the degree of x in varName.
func (e *Engine) Degree(x Expr, varName string) (int, error) {
	p, err := e.ToPoly(x, varName)
	if err != nil {
		return 0, withOp(err, "degree")
	}
	return p.Degree(), nil
}

// PolyCoeffs returns the coefficients of x in varName, lowest degree first.
func (e *Engine) PolyCoeffs(x Expr, varName string) ([]Expr, error) {
	p, err := e.ToPoly(x, varName)
	if err != nil {
		return nil, withOp(err, "poly_coeffs")
	}
	return p.Coeffs, nil
}

// polyOf returns canonical but unreduced coefficients of a canonical tree.
func (e *Engine) polyOf(x Expr, v string) ([]Expr, error) {
	if !Depends(x, v) {
		return []Expr{x}, nil
	}
	switch t := x.(type) {
	case *Sym:
		return []Expr{N(0), N(1)}, nil
	case *Add:
		var acc []Expr
		for _, term := range t.terms {
			p, err := e.polyOf(term, v)
			if err != nil {
				return nil, err
			}
			if acc, err = e.polyAdd(acc, p); err != nil {
				return nil, err
			}
		}
		return acc, nil
	case *Mul:
		acc := []Expr{N(1)}
		for _, f := range t.factors {
			p, err := e.polyOf(f, v)
			if err != nil {
				return nil, err
			}
			if acc, err = e.polyMul(acc, p); err != nil {
				return nil, err
			}
		}
		return acc, nil
	case *Pow:
		k, ok := t.exp.(*Num)
		if !ok || !k.IsInteger() || k.IsNegative() {
			return nil, newError(KindNotPolynomial, "", "%s", x)
		}
		n, ok := k.Int64()
		if !ok || n > int64(e.cfg.MaxDegree) {
			return nil, newError(KindInvalidArgument, "", "degree of %s exceeds %d", x, e.cfg.MaxDegree)
		}
		base, err := e.polyOf(t.base, v)
		if err != nil {
			return nil, err
		}
		acc := []Expr{N(1)}
		for i := int64(0); i < n; i++ {
			if acc, err = e.polyMul(acc, base); err != nil {
				return nil, err
			}
		}
		return acc, nil
	}
	return nil, newError(KindNotPolynomial, "", "%s", x)
}

func (e *Engine) polyAdd(a, b []Expr) ([]Expr, error) {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := append([]Expr(nil), a...)
	for i, c := range b {
		s, err := e.combineAdd([]Expr{out[i], c})
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (e *Engine) polyMul(a, b []Expr) ([]Expr, error) {
	deg := len(a) + len(b) - 2
	if deg > e.cfg.MaxDegree {
		return nil, newError(KindInvalidArgument, "", "degree %d exceeds %d", deg, e.cfg.MaxDegree)
	}
	sums := make([][]Expr, deg+1)
	for i, x := range a {
		for j, y := range b {
			p, err := e.combineMul([]Expr{x, y})
			if err != nil {
				return nil, err
			}
			sums[i+j] = append(sums[i+j], p)
		}
	}
	out := make([]Expr, deg+1)
	for i, terms := range sums {
		s, err := e.combineAdd(terms)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// ============================================================
// Exact rational polynomial arithmetic
// ============================================================

// hornerRat evaluates coeffs (lowest degree first) at r.
func hornerRat(coeffs []*big.Rat, r *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, r)
		acc.Add(acc, coeffs[i])
	}
	return acc
}

// syntheticDiv divides coeffs by (x - r), assuming r is a root.
func syntheticDiv(coeffs []*big.Rat, r *big.Rat) []*big.Rat {
	n := len(coeffs) - 1
	out := make([]*big.Rat, n)
	carry := new(big.Rat)
	for i := n; i >= 1; i-- {
		carry = new(big.Rat).Add(coeffs[i], new(big.Rat).Mul(carry, r))
		out[i-1] = carry
	}
	return out
}

// integerCoeffs scales rational coefficients by the lcm of their
// denominators.
func integerCoeffs(coeffs []*big.Rat) []*big.Int {
	l := big.NewInt(1)
	for _, c := range coeffs {
		l = lcmInt(l, c.Denom())
	}
	out := make([]*big.Int, len(coeffs))
	for i, c := range coeffs {
		v := new(big.Int).Mul(c.Num(), l)
		out[i] = v.Quo(v, c.Denom())
	}
	return out
}
