// Package gocas is an exact symbolic algebra kernel.
//
// Expressions are immutable trees over arbitrary-precision rationals and
// named symbols. Constructors build raw trees; Simplify is the one operation
// that produces the canonical form every other operation relies on.
//
// Every failure is reported as an *Error carrying an ErrorKind; nothing is
// approximated or returned half-simplified.
package gocas

import (
	"sort"
)

// ============================================================
// Core Interface
// ============================================================

// Kind identifies the node variant of an expression.
type Kind int

const (
	KindInteger Kind = iota + 1
	KindRational
	KindSymbol
	KindAdd
	KindMul
	KindPow
	KindFunction
)

var kindNames = [...]string{
	KindInteger:  "integer",
	KindRational: "rational",
	KindSymbol:   "symbol",
	KindAdd:      "add",
	KindMul:      "mul",
	KindPow:      "pow",
	KindFunction: "function",
}

func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Expr is a node of an expression tree. The set of implementations is closed:
// *Num, *Sym, *Add, *Mul, *Pow and *Func.
type Expr interface {
	Kind() Kind
	// Hash is the structural hash, computed once at construction.
	Hash() uint64
	// Equal reports structural equality.
	Equal(other Expr) bool
	String() string
	isExpr()
}

// ============================================================
// Sym: symbolic variable
// ============================================================

type Sym struct {
	name string
	hash uint64
}

// S returns the symbol called name.
func S(name string) *Sym { return &Sym{name: name, hash: hashName(tagSym, name)} }

func (s *Sym) Kind() Kind { return KindSymbol }
func (s *Sym) Hash() uint64 { return s.hash }
func (s *Sym) Name() string { return s.name }
func (s *Sym) String() string { return printPlain(s) }
func (s *Sym) isExpr() {}
func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct {
	terms []Expr
	hash  uint64
}

func newAdd(terms []Expr) *Add { return &Add{terms: terms, hash: hashChildren(tagAdd, terms)} }

// AddOf builds a raw sum. No operands give 0 and a single operand is returned
// unchanged.
func AddOf(terms ...Expr) Expr {
	switch len(terms) {
	case 0:
		return N(0)
	case 1:
		return terms[0]
	}
	return newAdd(append([]Expr(nil), terms...))
}

// SubOf builds a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, NegOf(b)) }

func (a *Add) Kind() Kind { return KindAdd }
func (a *Add) Hash() uint64 { return a.hash }
func (a *Add) String() string { return printPlain(a) }
func (a *Add) isExpr() {}

// Terms returns a copy of the operand list.
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	return ok && a.hash == o.hash && equalList(a.terms, o.terms)
}

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct {
	factors []Expr
	hash    uint64
}

func newMul(factors []Expr) *Mul {
	return &Mul{factors: factors, hash: hashChildren(tagMul, factors)}
}

// MulOf builds a raw product. No operands give 1 and a single operand is
// returned unchanged.
func MulOf(factors ...Expr) Expr {
	switch len(factors) {
	case 0:
		return N(1)
	case 1:
		return factors[0]
	}
	return newMul(append([]Expr(nil), factors...))
}

// DivOf builds a / b as a * b^-1.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

// NegOf builds -e as -1 * e.
func NegOf(e Expr) Expr {
	if n, ok := e.(*Num); ok {
		return n.Neg()
	}
	return MulOf(N(-1), e)
}

func (m *Mul) Kind() Kind { return KindMul }
func (m *Mul) Hash() uint64 { return m.hash }
func (m *Mul) String() string { return printPlain(m) }
func (m *Mul) isExpr() {}

// Factors returns a copy of the operand list.
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	return ok && m.hash == o.hash && equalList(m.factors, o.factors)
}

// ============================================================
// Pow: base^exponent
// ============================================================

type Pow struct {
	base, exp Expr
	hash      uint64
}

func newPow(base, exp Expr) *Pow {
	return &Pow{base: base, exp: exp, hash: hashName(tagPow, "", base, exp)}
}

// PowOf builds a raw base^exp.
func PowOf(base, exp Expr) Expr { return newPow(base, exp) }

// SqrtOf builds arg^(1/2).
func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }

func (p *Pow) Kind() Kind { return KindPow }
func (p *Pow) Hash() uint64 { return p.hash }
func (p *Pow) Base() Expr { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }
func (p *Pow) String() string { return printPlain(p) }
func (p *Pow) isExpr() {}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.hash == o.hash && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

// ============================================================
// Func: named function application
// ============================================================

type Func struct {
	name string
	arg  Expr
	hash uint64
}

// FuncOf applies the function called name to arg. Names outside the built-in
// table are allowed; they only lack derivative and integral rules.
func FuncOf(name string, arg Expr) Expr { return newFunc(name, arg) }

func newFunc(name string, arg Expr) *Func {
	return &Func{name: name, arg: arg, hash: hashName(tagFunc, name, arg)}
}

func SinOf(arg Expr) Expr { return FuncOf("sin", arg) }
func CosOf(arg Expr) Expr { return FuncOf("cos", arg) }
func TanOf(arg Expr) Expr { return FuncOf("tan", arg) }
func ExpOf(arg Expr) Expr { return FuncOf("exp", arg) }
func LnOf(arg Expr) Expr { return FuncOf("ln", arg) }
func AsinOf(arg Expr) Expr { return FuncOf("asin", arg) }
func AcosOf(arg Expr) Expr { return FuncOf("acos", arg) }
func AtanOf(arg Expr) Expr { return FuncOf("atan", arg) }
func SinhOf(arg Expr) Expr { return FuncOf("sinh", arg) }
func CoshOf(arg Expr) Expr { return FuncOf("cosh", arg) }
func TanhOf(arg Expr) Expr { return FuncOf("tanh", arg) }
func AbsOf(arg Expr) Expr { return FuncOf("abs", arg) }

func (f *Func) Kind() Kind { return KindFunction }
func (f *Func) Hash() uint64 { return f.hash }
func (f *Func) Name() string { return f.name }
func (f *Func) Arg() Expr { return f.arg }
func (f *Func) String() string { return printPlain(f) }
func (f *Func) isExpr() {}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.hash == o.hash && f.name == o.name && f.arg.Equal(o.arg)
}

// ============================================================
// Structural helpers
// ============================================================

func equalList(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// children returns the direct operands of e.
func children(e Expr) []Expr {
	switch v := e.(type) {
	case *Add:
		return v.terms
	case *Mul:
		return v.factors
	case *Pow:
		return []Expr{v.base, v.exp}
	case *Func:
		return []Expr{v.arg}
	}
	return nil
}

// FreeSymbols returns the sorted names of all symbols occurring in e.
func FreeSymbols(e Expr) []string {
	seen := map[string]struct{}{}
	collectSymbols(e, seen)
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	if s, ok := e.(*Sym); ok {
		out[s.name] = struct{}{}
		return
	}
	for _, c := range children(e) {
		collectSymbols(c, out)
	}
}

// Depends reports whether the symbol varName occurs in e.
func Depends(e Expr, varName string) bool {
	if s, ok := e.(*Sym); ok {
		return s.name == varName
	}
	for _, c := range children(e) {
		if Depends(c, varName) {
			return true
		}
	}
	return false
}

func isNum(e Expr, v int64) bool {
	n, ok := e.(*Num)
	if !ok {
		return false
	}
	i, ok := n.Int64()
	return ok && i == v
}
