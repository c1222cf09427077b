package gocas

import "strings"

// rank orders node variants: numbers, symbols, then Pow < Mul < Add < Func.
func rank(e Expr) int {
	switch e.(type) {
	case *Num:
		return 0
	case *Sym:
		return 1
	case *Pow:
		return 2
	case *Mul:
		return 3
	case *Add:
		return 4
	case *Func:
		return 5
	}
	return 6
}

// Compare is the canonical total order used to sort the operands of sums and
// products. It returns -1, 0 or +1; 0 exactly when a and b are structurally
// equal.
func Compare(a, b Expr) int {
	if a == b {
		return 0
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch x := a.(type) {
	case *Num:
		return x.Cmp(b.(*Num))
	case *Sym:
		return strings.Compare(x.name, b.(*Sym).name)
	case *Pow:
		y := b.(*Pow)
		if c := Compare(x.base, y.base); c != 0 {
			return c
		}
		return Compare(x.exp, y.exp)
	case *Mul:
		return compareList(x.factors, b.(*Mul).factors)
	case *Add:
		return compareList(x.terms, b.(*Add).terms)
	case *Func:
		y := b.(*Func)
		if c := strings.Compare(x.name, y.name); c != 0 {
			return c
		}
		return Compare(x.arg, y.arg)
	}
	return 0
}

func compareList(a, b []Expr) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
