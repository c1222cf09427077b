package gocas

import (
	"math/big"
	"sort"
)

// ============================================================
// Solvers
// ============================================================

// Root is one solution re + im*i. Im is 0 for real roots.
type Root struct {
	Re, Im Expr
}

// IsReal reports whether the imaginary part is zero.
func (r Root) IsReal() bool { return isNum(r.Im, 0) }

// Solve returns the distinct roots of x = 0 in varName, sorted by the
// canonical order. Complex roots follow Config.ComplexRoots: under
// ComplexReject they are dropped, and an equation with no real root fails
// with NoRealRoot; under ComplexStrict any complex root fails with
// NoRealRoot; under ComplexPairs they are returned as re ± im*I.
func (e *Engine) Solve(x Expr, varName string) ([]Expr, error) {
	roots, err := e.solveRoots(x, varName)
	if err != nil {
		return nil, withOp(err, "solve")
	}
	out := make([]Expr, 0, len(roots))
	complexCount := 0
	for _, r := range roots {
		if r.IsReal() {
			out = append(out, r.Re)
			continue
		}
		complexCount++
		switch e.cfg.ComplexRoots {
		case ComplexStrict:
			return nil, newError(KindNoRealRoot, "solve", "%s = 0 has complex root %s + (%s)*%s",
				x, r.Re, r.Im, ImaginaryUnit)
		case ComplexReject:
			continue
		}
		z, err := e.simplify(AddOf(r.Re, MulOf(r.Im, S(ImaginaryUnit))))
		if err != nil {
			return nil, withOp(err, "solve")
		}
		out = append(out, z)
	}
	if len(out) == 0 && complexCount > 0 {
		return nil, newError(KindNoRealRoot, "solve", "%s = 0 has %d complex roots", x, complexCount)
	}
	if complexCount > 0 && e.cfg.ComplexRoots == ComplexReject {
		e.log.Debug("complex roots dropped", "expr", String(x), "count", complexCount)
	}
	return dedupSorted(out), nil
}

// SolveRoots is Solve with every root, real or complex, reported as a pair.
func (e *Engine) SolveRoots(x Expr, varName string) ([]Root, error) {
	roots, err := e.solveRoots(x, varName)
	if err != nil {
		return nil, withOp(err, "roots")
	}
	return roots, nil
}

func (e *Engine) solveRoots(x Expr, v string) ([]Root, error) {
	p, err := e.ToPoly(x, v)
	if err != nil {
		return nil, err
	}
	if p.Degree() > e.cfg.MaxDegree {
		return nil, newError(KindUnsolvedPolynomial, "", "degree %d exceeds %d", p.Degree(), e.cfg.MaxDegree)
	}
	var roots []Root
	switch p.Degree() {
	case 0:
		if p.IsZero() {
			return nil, newError(KindInfiniteSolutions, "", "%s = 0 holds for every %s", x, v)
		}
		return nil, nil
	case 1:
		roots, err = e.solveLinear(p.Coeffs)
	case 2:
		roots, err = e.solveQuadratic(p.Coeffs)
	default:
		roots, err = e.solveRational(p)
	}
	if err != nil {
		return nil, err
	}
	return sortRoots(roots), nil
}

func (e *Engine) solveLinear(c []Expr) ([]Root, error) {
	r, err := e.simplify(NegOf(DivOf(c[0], c[1])))
	if err != nil {
		return nil, err
	}
	return []Root{{Re: r, Im: N(0)}}, nil
}

// solveQuadratic applies the quadratic formula to c0 + c1 x + c2 x^2.
func (e *Engine) solveQuadratic(c []Expr) ([]Root, error) {
	a, b, cc := c[2], c[1], c[0]
	disc, err := e.simplify(AddOf(PowOf(b, N(2)), MulOf(N(-4), a, cc)))
	if err != nil {
		return nil, err
	}
	if ex, err := e.expandNode(disc); err == nil {
		if disc, err = e.simplify(ex); err != nil {
			return nil, err
		}
	}
	twoA := MulOf(N(2), a)
	re, err := e.simplify(DivOf(NegOf(b), twoA))
	if err != nil {
		return nil, err
	}
	if d, ok := disc.(*Num); ok {
		switch d.Sign() {
		case 0:
			return []Root{{Re: re, Im: N(0)}}, nil
		case -1:
			im, err := e.simplify(DivOf(SqrtOf(d.Neg()), twoA))
			if err != nil {
				return nil, err
			}
			negIm, err := e.simplify(NegOf(im))
			if err != nil {
				return nil, err
			}
			return []Root{{Re: re, Im: im}, {Re: re, Im: negIm}}, nil
		}
	}
	roots := make([]Root, 0, 2)
	for _, sign := range []int64{1, -1} {
		r, err := e.simplify(DivOf(AddOf(NegOf(b), MulOf(N(sign), SqrtOf(disc))), twoA))
		if err != nil {
			return nil, err
		}
		roots = append(roots, Root{Re: r, Im: N(0)})
	}
	return roots, nil
}

// solveRational finds the rational roots of a polynomial with rational
// coefficients, deflating by each one, and solves a residual of degree <= 2
// in closed form.
func (e *Engine) solveRational(p *Poly) ([]Root, error) {
	coeffs, ok := p.rational()
	if !ok {
		return nil, newError(KindUnsolvedPolynomial, "", "degree %d with symbolic coefficients", p.Degree())
	}
	var roots []Root
	for len(coeffs) > 3 {
		if coeffs[0].Sign() == 0 {
			roots = append(roots, Root{Re: N(0), Im: N(0)})
			coeffs = coeffs[1:]
			continue
		}
		r, found, err := e.findRationalRoot(coeffs)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, newError(KindUnsolvedPolynomial, "", "no rational root of degree %d factor %s",
				len(coeffs)-1, ratPoly(coeffs, p.Var))
		}
		roots = append(roots, Root{Re: NRat(r), Im: N(0)})
		coeffs = syntheticDiv(coeffs, r)
	}
	rest := make([]Expr, len(coeffs))
	for i, c := range coeffs {
		rest[i] = NRat(c)
	}
	var tail []Root
	var err error
	switch len(rest) {
	case 3:
		tail, err = e.solveQuadratic(rest)
	case 2:
		tail, err = e.solveLinear(rest)
	}
	if err != nil {
		return nil, err
	}
	return append(roots, tail...), nil
}

// findRationalRoot tries every ±p/q with p dividing the constant term and q
// dividing the leading coefficient.
func (e *Engine) findRationalRoot(coeffs []*big.Rat) (*big.Rat, bool, error) {
	ints := integerCoeffs(coeffs)
	ps, ok := divisors(ints[0], e.cfg.MaxDivisorSearch)
	if !ok {
		return nil, false, newError(KindUnsolvedPolynomial, "", "constant term %s exceeds divisor search bound", ints[0])
	}
	qs, ok := divisors(ints[len(ints)-1], e.cfg.MaxDivisorSearch)
	if !ok {
		return nil, false, newError(KindUnsolvedPolynomial, "", "leading coefficient %s exceeds divisor search bound", ints[len(ints)-1])
	}
	tried := 0
	for _, q := range qs {
		for _, pp := range ps {
			for _, sign := range []int64{1, -1} {
				cand := new(big.Rat).SetFrac(new(big.Int).Mul(pp, big.NewInt(sign)), q)
				tried++
				if hornerRat(coeffs, cand).Sign() == 0 {
					e.log.Debug("rational root found", "root", cand.RatString(), "candidates", tried)
					return cand, true, nil
				}
			}
		}
	}
	e.log.Debug("rational root search exhausted", "candidates", tried)
	return nil, false, nil
}

func ratPoly(coeffs []*big.Rat, v string) Expr {
	c := make([]Expr, len(coeffs))
	for i, r := range coeffs {
		c[i] = NRat(r)
	}
	return (&Poly{Var: v, Coeffs: c}).Expr()
}

func sortRoots(roots []Root) []Root {
	sort.SliceStable(roots, func(i, j int) bool {
		if c := Compare(roots[i].Re, roots[j].Re); c != 0 {
			return c < 0
		}
		return Compare(roots[i].Im, roots[j].Im) < 0
	})
	out := roots[:0]
	for _, r := range roots {
		if n := len(out); n > 0 && out[n-1].Re.Equal(r.Re) && out[n-1].Im.Equal(r.Im) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func dedupSorted(xs []Expr) []Expr {
	sortExprs(xs)
	out := xs[:0]
	for _, x := range xs {
		if n := len(out); n > 0 && out[n-1].Equal(x) {
			continue
		}
		out = append(out, x)
	}
	return out
}
