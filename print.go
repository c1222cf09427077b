package gocas

import (
	"math/big"
	"strings"
)

// ============================================================
// Rendering (shared by String and LaTeX)
// ============================================================

const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

// printer renders an expression either as plain text or as LaTeX. Both
// forms share one layout: numeric term of a sum last, subtraction for
// negative terms, and fractions for negative powers.
type printer struct {
	latex bool
}

func printPlain(x Expr) string { return printer{}.render(x) }

// String renders x as plain text.
func String(x Expr) string { return printPlain(x) }

func (e *Engine) String(x Expr) string { return printPlain(x) }

func (p printer) render(x Expr) string {
	switch t := x.(type) {
	case *Num:
		return p.num(t)
	case *Sym:
		if p.latex {
			return latexSymbol(t.name)
		}
		return t.name
	case *Add:
		return p.add(t)
	case *Mul:
		return p.mul(t.factors)
	case *Pow:
		return p.pow(t)
	case *Func:
		return p.fn(t)
	}
	return "?"
}

// prec is the binding strength of x as rendered.
func (p printer) prec(x Expr) int {
	switch t := x.(type) {
	case *Num:
		if t.IsNegative() {
			return precAdd
		}
		if !t.IsInteger() && !p.latex {
			return precMul
		}
		return precAtom
	case *Add:
		return precAdd
	case *Mul:
		if c, ok := t.factors[0].(*Num); ok && c.IsNegative() {
			return precAdd
		}
		return precMul
	case *Pow:
		if k, ok := t.exp.(*Num); ok && k.IsNegative() {
			return precMul
		}
		if p.latex && isUnitFraction(t.exp) {
			return precAtom
		}
		return precPow
	}
	return precAtom
}

func (p printer) wrap(s string) string {
	if p.latex {
		return `\left(` + s + `\right)`
	}
	return "(" + s + ")"
}

// child renders x, parenthesized when it binds looser than min.
func (p printer) child(x Expr, min int) string {
	s := p.render(x)
	if p.prec(x) < min {
		return p.wrap(s)
	}
	return s
}

func (p printer) num(n *Num) string {
	if n.IsInteger() || !p.latex {
		return n.val.RatString()
	}
	sign := ""
	if n.IsNegative() {
		sign = "-"
	}
	a := n.Abs()
	return sign + `\frac{` + a.val.Num().String() + "}{" + a.val.Denom().String() + "}"
}

// negTerm reports whether t renders with a leading minus and returns its
// negation.
func negTerm(t Expr) (Expr, bool) {
	switch v := t.(type) {
	case *Num:
		if v.IsNegative() {
			return v.Neg(), true
		}
	case *Mul:
		if c, ok := v.factors[0].(*Num); ok && c.IsNegative() {
			rest := append([]Expr{c.Neg()}, v.factors[1:]...)
			if c.IsNegOne() {
				rest = rest[1:]
			}
			if len(rest) == 1 {
				return rest[0], true
			}
			return newMul(rest), true
		}
	}
	return nil, false
}

func (p printer) add(a *Add) string {
	terms := make([]Expr, 0, len(a.terms))
	var consts []Expr
	for _, t := range a.terms {
		if _, ok := t.(*Num); ok {
			consts = append(consts, t)
			continue
		}
		terms = append(terms, t)
	}
	terms = append(terms, consts...)

	var sb strings.Builder
	for i, t := range terms {
		neg, isNeg := negTerm(t)
		switch {
		case i == 0:
			sb.WriteString(p.child(t, precAdd))
			continue
		case isNeg:
			sb.WriteString(" - ")
			sb.WriteString(p.child(neg, precMul))
		default:
			sb.WriteString(" + ")
			sb.WriteString(p.child(t, precAdd+1))
		}
	}
	return sb.String()
}

// mul splits factors into numerator and denominator and renders a product
// or a fraction.
func (p printer) mul(factors []Expr) string {
	sign := ""
	var numer, denom []Expr
	for i, f := range factors {
		if c, ok := f.(*Num); ok && i == 0 {
			if c.IsNegative() {
				sign = "-"
				c = c.Abs()
			}
			if n := c.val.Num(); n.Cmp(bigOne) != 0 || len(factors) == 1 {
				numer = append(numer, NBig(n))
			}
			if d := c.val.Denom(); d.Cmp(bigOne) != 0 {
				denom = append(denom, NBig(d))
			}
			continue
		}
		if pw, ok := f.(*Pow); ok {
			if k, ok := pw.exp.(*Num); ok && k.IsNegative() {
				denom = append(denom, powFromParts(pw.base, k.Neg()))
				continue
			}
		}
		numer = append(numer, f)
	}

	if len(denom) == 0 {
		return sign + p.product(numer, precMul)
	}
	if p.latex {
		return sign + `\frac{` + p.product(numer, fracMin(numer)) + "}{" + p.product(denom, fracMin(denom)) + "}"
	}
	top := p.product(numer, precMul)
	if len(denom) > 1 {
		return sign + top + "/(" + p.product(denom, precMul) + ")"
	}
	return sign + top + "/" + p.child(denom[0], precPow)
}

// fracMin is the binding a \frac argument needs: none for a lone factor.
func fracMin(factors []Expr) int {
	if len(factors) == 1 {
		return precAdd
	}
	return precMul
}

// product joins factors; LaTeX uses juxtaposition except between numerals.
func (p printer) product(factors []Expr, min int) string {
	if len(factors) == 0 {
		return "1"
	}
	var sb strings.Builder
	prev := ""
	for i, f := range factors {
		s := p.child(f, min)
		if i > 0 {
			switch {
			case !p.latex:
				sb.WriteString("*")
			case endsWithDigit(prev) && startsWithDigit(s):
				sb.WriteString(` \cdot `)
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString(s)
		prev = s
	}
	return sb.String()
}

func endsWithDigit(s string) bool {
	return s != "" && s[len(s)-1] >= '0' && s[len(s)-1] <= '9'
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func (p printer) pow(pw *Pow) string {
	if k, ok := pw.exp.(*Num); ok && k.IsNegative() {
		return p.mul([]Expr{pw})
	}
	if p.latex {
		if k, ok := pw.exp.(*Num); ok && isUnitFraction(k) {
			body := p.render(pw.base)
			if d := k.val.Denom(); d.Cmp(bigTwo) != 0 {
				return `\sqrt[` + d.String() + "]{" + body + "}"
			}
			return `\sqrt{` + body + "}"
		}
	}
	base := p.render(pw.base)
	if powBaseNeedsParens(pw.base) {
		base = p.wrap(base)
	}
	if p.latex {
		return base + "^{" + p.render(pw.exp) + "}"
	}
	return base + "^" + p.child(pw.exp, precAtom)
}

var bigTwo = big.NewInt(2)

// powBaseNeedsParens covers sums, products, powers, negative numbers and
// rationals.
func powBaseNeedsParens(b Expr) bool {
	switch t := b.(type) {
	case *Add, *Mul, *Pow:
		return true
	case *Num:
		return t.IsNegative() || !t.IsInteger()
	}
	return false
}

func isUnitFraction(x Expr) bool {
	k, ok := x.(*Num)
	return ok && k.IsPositive() && !k.IsInteger() && k.val.Num().Cmp(bigOne) == 0
}

func (p printer) fn(f *Func) string {
	if !p.latex {
		return f.name + "(" + p.render(f.arg) + ")"
	}
	return latexFunc(f.name, p.render(f.arg))
}
