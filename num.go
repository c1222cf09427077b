package gocas

import (
	"math/big"
)

// ============================================================
// Num: exact integer or reduced rational
// ============================================================

// Num is an exact number. It is an Integer when its denominator is 1 and a
// Rational otherwise; big.Rat keeps it reduced with a positive denominator.
type Num struct {
	val  *big.Rat
	hash uint64
}

func newNum(r *big.Rat) *Num { return &Num{val: r, hash: hashNum(r)} }

// N returns the integer n.
func N(n int64) *Num { return newNum(new(big.Rat).SetInt64(n)) }

// NBig returns the integer n. The argument is copied.
func NBig(n *big.Int) *Num { return newNum(new(big.Rat).SetInt(n)) }

// NRat returns the rational r. The argument is copied.
func NRat(r *big.Rat) *Num { return newNum(new(big.Rat).Set(r)) }

// Rat returns p/q reduced to lowest terms.
func Rat(p, q int64) (*Num, error) {
	if q == 0 {
		return nil, newError(KindDivisionByZero, "rational", "%d/0", p)
	}
	return newNum(new(big.Rat).SetFrac64(p, q)), nil
}

// RatBig is Rat for arbitrary-precision operands.
func RatBig(p, q *big.Int) (*Num, error) {
	if q.Sign() == 0 {
		return nil, newError(KindDivisionByZero, "rational", "%s/0", p)
	}
	return newNum(new(big.Rat).SetFrac(p, q)), nil
}

// F is Rat for literal constants; it panics when q is zero.
func F(p, q int64) *Num {
	n, err := Rat(p, q)
	if err != nil {
		panic(err)
	}
	return n
}

func (n *Num) Kind() Kind {
	if n.val.IsInt() {
		return KindInteger
	}
	return KindRational
}
func (n *Num) Hash() uint64 { return n.hash }
func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.hash == o.hash && n.val.Cmp(o.val) == 0
}
func (n *Num) String() string { return printPlain(n) }
func (n *Num) isExpr() {}

func (n *Num) IsZero() bool { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool { return n.val.IsInt() && n.val.Num().IsInt64() && n.val.Num().Int64() == 1 }
func (n *Num) IsNegOne() bool { return n.val.IsInt() && n.val.Num().IsInt64() && n.val.Num().Int64() == -1 }
func (n *Num) IsInteger() bool { return n.val.IsInt() }
func (n *Num) IsPositive() bool { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool { return n.val.Sign() < 0 }
func (n *Num) Sign() int { return n.val.Sign() }
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }
func (n *Num) Numerator() *big.Int { return new(big.Int).Set(n.val.Num()) }
func (n *Num) Denominator() *big.Int { return new(big.Int).Set(n.val.Denom()) }

// Float64 returns the nearest float64 value.
func (n *Num) Float64() float64 {
	f, _ := n.val.Float64()
	return f
}

// Int64 reports the value as an int64 when it is an integer that fits.
func (n *Num) Int64() (int64, bool) {
	if !n.val.IsInt() || !n.val.Num().IsInt64() {
		return 0, false
	}
	return n.val.Num().Int64(), true
}

func (n *Num) Add(o *Num) *Num { return newNum(new(big.Rat).Add(n.val, o.val)) }
func (n *Num) Sub(o *Num) *Num { return newNum(new(big.Rat).Sub(n.val, o.val)) }
func (n *Num) Mul(o *Num) *Num { return newNum(new(big.Rat).Mul(n.val, o.val)) }
func (n *Num) Neg() *Num { return newNum(new(big.Rat).Neg(n.val)) }
func (n *Num) Abs() *Num { return newNum(new(big.Rat).Abs(n.val)) }
func (n *Num) Cmp(o *Num) int { return n.val.Cmp(o.val) }

// Quo returns n/o exactly.
func (n *Num) Quo(o *Num) (*Num, error) {
	if o.IsZero() {
		return nil, newError(KindDivisionByZero, "", "%s/0", n)
	}
	return newNum(new(big.Rat).Quo(n.val, o.val)), nil
}

// Inv returns 1/n.
func (n *Num) Inv() (*Num, error) {
	if n.IsZero() {
		return nil, newError(KindDivisionByZero, "", "1/0")
	}
	return newNum(new(big.Rat).Inv(n.val)), nil
}

// PowInt raises n to an integer power. 0^0 and 0^k for k < 0 are undefined.
func (n *Num) PowInt(k int64) (*Num, error) {
	if n.IsZero() && k <= 0 {
		return nil, newError(KindUndefinedPower, "", "0^%d", k)
	}
	neg := k < 0
	if neg {
		k = -k
	}
	e := big.NewInt(k)
	num := new(big.Int).Exp(n.val.Num(), e, nil)
	den := new(big.Int).Exp(n.val.Denom(), e, nil)
	if neg {
		num, den = den, num
	}
	return newNum(new(big.Rat).SetFrac(num, den)), nil
}

// GCD returns the non-negative greatest common divisor of two integers.
func GCD(a, b *Num) (*Num, error) {
	if !a.IsInteger() || !b.IsInteger() {
		return nil, newError(KindInvalidArgument, "gcd", "gcd(%s, %s) needs integers", a, b)
	}
	x := new(big.Int).Abs(a.val.Num())
	y := new(big.Int).Abs(b.val.Num())
	return NBig(new(big.Int).GCD(nil, nil, x, y)), nil
}

var (
	numZero   = N(0)
	numOne    = N(1)
	numNegOne = N(-1)
)
