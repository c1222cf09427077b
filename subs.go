package gocas

// Subs replaces every occurrence of the symbol varName in x with
// replacement. The result is not simplified. Subtrees that do not contain
// varName are shared with x, and x itself is returned when nothing matched.
func Subs(x Expr, varName string, replacement Expr) Expr {
	switch t := x.(type) {
	case *Sym:
		if t.name == varName {
			return replacement
		}
		return x
	case *Add:
		if terms, changed := subsList(t.terms, varName, replacement); changed {
			return newAdd(terms)
		}
	case *Mul:
		if factors, changed := subsList(t.factors, varName, replacement); changed {
			return newMul(factors)
		}
	case *Pow:
		b := Subs(t.base, varName, replacement)
		ex := Subs(t.exp, varName, replacement)
		if b != t.base || ex != t.exp {
			return newPow(b, ex)
		}
	case *Func:
		if arg := Subs(t.arg, varName, replacement); arg != t.arg {
			return newFunc(t.name, arg)
		}
	}
	return x
}

func subsList(in []Expr, varName string, replacement Expr) ([]Expr, bool) {
	var out []Expr
	for i, c := range in {
		r := Subs(c, varName, replacement)
		if r != c && out == nil {
			out = make([]Expr, len(in))
			copy(out, in[:i])
		}
		if out != nil {
			out[i] = r
		}
	}
	return out, out != nil
}

// SubsAll applies several substitutions at once; replacements are not
// themselves rewritten.
func SubsAll(x Expr, bindings map[string]Expr) Expr {
	switch t := x.(type) {
	case *Sym:
		if r, ok := bindings[t.name]; ok {
			return r
		}
		return x
	case *Add, *Mul, *Pow, *Func:
		kids := children(x)
		var out []Expr
		for i, c := range kids {
			r := SubsAll(c, bindings)
			if r != c && out == nil {
				out = make([]Expr, len(kids))
				copy(out, kids[:i])
			}
			if out != nil {
				out[i] = r
			}
		}
		if out == nil {
			return x
		}
		return rebuild(x, out)
	}
	return x
}

// rebuild returns a node of the same shape as x over new children.
func rebuild(x Expr, kids []Expr) Expr {
	switch t := x.(type) {
	case *Add:
		return newAdd(kids)
	case *Mul:
		return newMul(kids)
	case *Pow:
		return newPow(kids[0], kids[1])
	case *Func:
		return newFunc(t.name, kids[0])
	}
	return x
}

// Subs is the Engine form of the package-level Subs.
func (e *Engine) Subs(x Expr, varName string, replacement Expr) Expr {
	return Subs(x, varName, replacement)
}
