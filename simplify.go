package gocas

import (
	"math/big"
	"sort"
)

// ============================================================
// Simplify: canonical form
// ============================================================

// Simplify returns the canonical form of x. The result is mathematically
// equal to x wherever x is defined, and Simplify of a canonical tree returns
// an equal tree.
func (e *Engine) Simplify(x Expr) (Expr, error) {
	out, err := e.simplify(x)
	if err != nil {
		return nil, withOp(err, "simplify")
	}
	return out, nil
}

func (e *Engine) simplify(x Expr) (Expr, error) {
	if out, ok := e.memo.get("simplify", "", x); ok {
		return out, nil
	}
	cur := x
	for pass := 0; pass < e.cfg.MaxPasses; pass++ {
		next, err := e.simplifyNode(cur)
		if err != nil {
			return nil, err
		}
		if next.Equal(cur) {
			e.memo.put("simplify", "", x, next)
			return next, nil
		}
		cur = next
	}
	return nil, newError(KindInvalidArgument, "", "no fixed point after %d passes: %s", e.cfg.MaxPasses, cur)
}

// simplifyNode is one bottom-up pass.
func (e *Engine) simplifyNode(x Expr) (Expr, error) {
	switch v := x.(type) {
	case *Num, *Sym:
		return x, nil
	case *Add:
		terms, err := e.simplifyList(v.terms)
		if err != nil {
			return nil, err
		}
		return e.combineAdd(terms)
	case *Mul:
		factors, err := e.simplifyList(v.factors)
		if err != nil {
			return nil, err
		}
		return e.combineMul(factors)
	case *Pow:
		b, err := e.simplifyNode(v.base)
		if err != nil {
			return nil, err
		}
		ex, err := e.simplifyNode(v.exp)
		if err != nil {
			return nil, err
		}
		return e.simplifyPow(b, ex)
	case *Func:
		arg, err := e.simplifyNode(v.arg)
		if err != nil {
			return nil, err
		}
		return e.simplifyFunc(v.name, arg)
	}
	return nil, newError(KindInvalidArgument, "", "unknown node %T", x)
}

func (e *Engine) simplifyList(in []Expr) ([]Expr, error) {
	out := make([]Expr, len(in))
	for i, c := range in {
		s, err := e.simplifyNode(c)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// flattenInto appends xs to dst, splicing in the operands of nested nodes of
// the given kind.
func flattenInto(dst, xs []Expr, kind Kind) []Expr {
	for _, x := range xs {
		if x.Kind() == kind {
			dst = flattenInto(dst, children(x), kind)
			continue
		}
		dst = append(dst, x)
	}
	return dst
}

func sortExprs(xs []Expr) {
	sort.SliceStable(xs, func(i, j int) bool { return Compare(xs[i], xs[j]) < 0 })
}

// ============================================================
// Sums
// ============================================================

// splitCoeff separates the numeric coefficient of a canonical term.
func splitCoeff(t Expr) (*Num, Expr) {
	switch v := t.(type) {
	case *Num:
		return v, N(1)
	case *Mul:
		if c, ok := v.factors[0].(*Num); ok {
			rest := v.factors[1:]
			if len(rest) == 1 {
				return c, rest[0]
			}
			return c, newMul(rest)
		}
	}
	return numOne, t
}

// scale builds the canonical product c*rest for a coefficient-free rest.
func scale(c *Num, rest Expr) Expr {
	switch {
	case c.IsZero():
		return N(0)
	case c.IsOne():
		return rest
	}
	if n, ok := rest.(*Num); ok {
		return c.Mul(n)
	}
	if m, ok := rest.(*Mul); ok {
		return newMul(append([]Expr{c}, m.factors...))
	}
	return newMul([]Expr{c, rest})
}

type termGroup struct {
	rest  Expr
	coeff *Num
}

// combineAdd merges canonical operands into a canonical sum.
func (e *Engine) combineAdd(terms []Expr) (Expr, error) {
	flat := flattenInto(make([]Expr, 0, len(terms)), terms, KindAdd)

	constant := numZero
	var groups []*termGroup
	index := map[uint64][]*termGroup{}
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			constant = constant.Add(n)
			continue
		}
		c, rest := splitCoeff(t)
		var g *termGroup
		for _, cand := range index[rest.Hash()] {
			if cand.rest.Equal(rest) {
				g = cand
				break
			}
		}
		if g == nil {
			g = &termGroup{rest: rest, coeff: numZero}
			index[rest.Hash()] = append(index[rest.Hash()], g)
			groups = append(groups, g)
		}
		g.coeff = g.coeff.Add(c)
	}

	out := make([]Expr, 0, len(groups)+1)
	if !constant.IsZero() {
		out = append(out, constant)
	}
	for _, g := range groups {
		if g.coeff.IsZero() {
			continue
		}
		out = append(out, scale(g.coeff, g.rest))
	}
	sortExprs(out)
	switch len(out) {
	case 0:
		return N(0), nil
	case 1:
		return out[0], nil
	}
	return newAdd(out), nil
}

// ============================================================
// Products
// ============================================================

// splitPow separates base and exponent; non-powers have exponent 1.
func splitPow(f Expr) (Expr, Expr) {
	if p, ok := f.(*Pow); ok {
		return p.base, p.exp
	}
	return f, numOne
}

type factorGroup struct {
	base Expr
	exps []Expr
}

// combineMul merges canonical operands into a canonical product.
func (e *Engine) combineMul(factors []Expr) (Expr, error) {
	for depth := 0; ; depth++ {
		out, again, err := e.combineMulOnce(factors)
		if err != nil || !again || depth >= e.cfg.MaxPasses {
			return out, err
		}
		factors = []Expr{out}
	}
}

// combineMulOnce reports again when a merged power produced a product or a
// number that must be merged once more.
func (e *Engine) combineMulOnce(factors []Expr) (Expr, bool, error) {
	flat := flattenInto(make([]Expr, 0, len(factors)), factors, KindMul)

	coeff := numOne
	var groups []*factorGroup
	index := map[uint64][]*factorGroup{}
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = coeff.Mul(n)
			continue
		}
		b, ex := splitPow(f)
		var g *factorGroup
		for _, cand := range index[b.Hash()] {
			if cand.base.Equal(b) {
				g = cand
				break
			}
		}
		if g == nil {
			g = &factorGroup{base: b}
			index[b.Hash()] = append(index[b.Hash()], g)
			groups = append(groups, g)
		}
		g.exps = append(g.exps, ex)
	}
	if coeff.IsZero() {
		return N(0), false, nil
	}

	powered := make([]Expr, 0, len(groups))
	for _, g := range groups {
		ex := g.exps[0]
		if len(g.exps) > 1 {
			var err error
			if ex, err = e.combineAdd(g.exps); err != nil {
				return nil, false, err
			}
		}
		var p Expr
		if len(g.exps) == 1 {
			p = powFromParts(g.base, ex)
		} else {
			var err error
			if p, err = e.simplifyPow(g.base, ex); err != nil {
				return nil, false, err
			}
		}
		powered = append(powered, p)
	}
	powered, err := e.mergeRadicals(powered)
	if err != nil {
		return nil, false, err
	}

	again := false
	rest := make([]Expr, 0, len(powered))
	for _, p := range powered {
		switch v := p.(type) {
		case *Num:
			coeff = coeff.Mul(v)
		case *Mul:
			again = true
			rest = append(rest, v)
		default:
			rest = append(rest, p)
		}
	}
	if coeff.IsZero() {
		return N(0), false, nil
	}
	if again {
		return newMul(append([]Expr{coeff}, rest...)), true, nil
	}

	sortExprs(rest)
	switch {
	case len(rest) == 0:
		return coeff, false, nil
	case len(rest) == 1 && coeff.IsOne():
		return rest[0], false, nil
	case coeff.IsOne():
		return newMul(rest), false, nil
	}
	return newMul(append([]Expr{coeff}, rest...)), false, nil
}

// mergeRadicals folds numeric powers that share a fractional exponent,
// a^k*b^k = (a*b)^k, so 2^(1/2)*3^(1/2) and 6^(1/2) meet.
func (e *Engine) mergeRadicals(fs []Expr) ([]Expr, error) {
	type radical struct {
		first Expr
		base  *Num
		exp   *Num
		n     int
	}
	var order []*radical
	byExp := map[string]*radical{}
	out := make([]Expr, 0, len(fs))
	for _, f := range fs {
		b, k, ok := numericRadical(f)
		if !ok {
			out = append(out, f)
			continue
		}
		key := k.val.RatString()
		r := byExp[key]
		if r == nil {
			r = &radical{first: f, base: numOne, exp: k}
			byExp[key] = r
			order = append(order, r)
		}
		r.base = r.base.Mul(b)
		r.n++
	}
	for _, r := range order {
		if r.n == 1 {
			out = append(out, r.first)
			continue
		}
		p, err := e.powNum(r.base, r.exp)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// numericRadical matches b^k with b a positive number and k a non-integer.
// Negative bases stay apart: sqrt(-1)*sqrt(-1) is not sqrt(1).
func numericRadical(f Expr) (*Num, *Num, bool) {
	p, ok := f.(*Pow)
	if !ok {
		return nil, nil, false
	}
	b, ok := p.base.(*Num)
	if !ok || !b.IsPositive() {
		return nil, nil, false
	}
	k, ok := p.exp.(*Num)
	if !ok || k.IsInteger() {
		return nil, nil, false
	}
	return b, k, true
}

// powFromParts rebuilds an unmerged factor without re-simplifying it.
func powFromParts(b, ex Expr) Expr {
	if n, ok := ex.(*Num); ok && n.IsOne() {
		return b
	}
	return newPow(b, ex)
}

// ============================================================
// Powers
// ============================================================

func (e *Engine) simplifyPow(b, ex Expr) (Expr, error) {
	if k, ok := ex.(*Num); ok {
		return e.powNumExp(b, k)
	}
	if n, ok := b.(*Num); ok && n.IsOne() {
		return N(1), nil
	}
	return newPow(b, ex), nil
}

func (e *Engine) powNumExp(b Expr, k *Num) (Expr, error) {
	if k.IsZero() {
		if n, ok := b.(*Num); ok && n.IsZero() {
			return nil, newError(KindUndefinedPower, "", "0^0")
		}
		return N(1), nil
	}
	if k.IsOne() {
		return b, nil
	}
	switch v := b.(type) {
	case *Num:
		return e.powNum(v, k)
	case *Pow:
		if k.IsInteger() {
			inner, err := e.combineMul([]Expr{v.exp, k})
			if err != nil {
				return nil, err
			}
			return e.simplifyPow(v.base, inner)
		}
	case *Mul:
		if k.IsInteger() {
			parts := make([]Expr, len(v.factors))
			for i, f := range v.factors {
				p, err := e.simplifyPow(f, k)
				if err != nil {
					return nil, err
				}
				parts[i] = p
			}
			return e.combineMul(parts)
		}
	}
	return newPow(b, k), nil
}

// powNum folds n^k for numeric n and k, extracting exact rational roots.
func (e *Engine) powNum(n, k *Num) (Expr, error) {
	if n.IsZero() {
		if k.IsNegative() {
			return nil, newError(KindUndefinedPower, "", "0^%s", k)
		}
		return N(0), nil
	}
	if n.IsOne() {
		return N(1), nil
	}
	if k.IsInteger() {
		i, ok := k.Int64()
		if !ok || abs64(i) > e.cfg.MaxExponent {
			return nil, e.exponentTooLarge(n, k)
		}
		return n.PowInt(i)
	}

	// k = p/q with q > 1: n^k = n^s * n^(r/q), 0 < r < q.
	q := k.Denominator()
	s, r := new(big.Int).DivMod(k.Numerator(), q, new(big.Int))
	if !q.IsInt64() || q.Int64() > e.cfg.MaxExponent || !s.IsInt64() || abs64(s.Int64()) > e.cfg.MaxExponent {
		return nil, e.exponentTooLarge(n, k)
	}
	qi := int(q.Int64())
	neg := n.IsNegative()
	if neg && qi%2 == 0 {
		return newPow(n, k), nil
	}
	mag := n.Abs()

	// |n| = a/b; rewrite (a/b)^(1/q) as (a*b^(q-1))^(1/q) / b and pull out
	// every perfect q-th power.
	a, bDen := mag.Numerator(), mag.Denominator()
	outA, inA := extractPower(a, qi)
	outB, inB := extractPower(bDen, qi)
	m := new(big.Int).Mul(inA, new(big.Int).Exp(inB, big.NewInt(int64(qi-1)), nil))
	outM, inM := extractPower(m, qi)
	rootNum := new(big.Int).Mul(outA, outM)
	rootDen := new(big.Int).Mul(outB, inB)
	root := newNum(new(big.Rat).SetFrac(rootNum, rootDen))

	whole, err := mag.PowInt(s.Int64())
	if err != nil {
		return nil, err
	}
	coeff, err := root.PowInt(r.Int64())
	if err != nil {
		return nil, err
	}
	coeff = coeff.Mul(whole)
	if neg && new(big.Int).Abs(k.Numerator()).Bit(0) == 1 {
		coeff = coeff.Neg()
	}
	if inM.Cmp(bigOne) == 0 {
		return coeff, nil
	}
	residual := newPow(NBig(inM), newNum(new(big.Rat).SetFrac(r, q)))
	if coeff.IsOne() {
		return residual, nil
	}
	return newMul([]Expr{coeff, residual}), nil
}

// exponentTooLarge reports a numeric power that cannot be folded within
// MaxExponent.
func (e *Engine) exponentTooLarge(n, k *Num) error {
	return newError(KindInvalidArgument, "", "%s^%s exceeds max_exponent %d", n, k, e.cfg.MaxExponent)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// ============================================================
// Functions
// ============================================================

func (e *Engine) simplifyFunc(name string, arg Expr) (Expr, error) {
	canon, rule, ok := lookupFunc(name)
	if !ok {
		return newFunc(name, arg), nil
	}
	if rule.exact != nil {
		if out, ok := rule.exact(arg); ok {
			return e.simplifyNode(out)
		}
	}
	return newFunc(canon, arg), nil
}
