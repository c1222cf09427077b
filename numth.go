package gocas

import (
	"math/big"
	"sort"
)

var bigOne = big.NewInt(1)

// iroot returns floor(x^(1/k)) for x >= 0, k >= 1.
func iroot(x *big.Int, k int) *big.Int {
	if x.Sign() == 0 {
		return new(big.Int)
	}
	switch k {
	case 1:
		return new(big.Int).Set(x)
	case 2:
		return new(big.Int).Sqrt(x)
	}
	kk := big.NewInt(int64(k))
	lo := new(big.Int)
	hi := new(big.Int).Lsh(bigOne, uint(x.BitLen()/k+1))
	for lo.Cmp(hi) < 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Add(mid, bigOne)
		mid.Rsh(mid, 1)
		if new(big.Int).Exp(mid, kk, nil).Cmp(x) <= 0 {
			lo = mid
		} else {
			hi = mid.Sub(mid, bigOne)
		}
	}
	return lo
}

// exactRoot reports whether x >= 0 is a perfect k-th power, and its root.
func exactRoot(x *big.Int, k int) (*big.Int, bool) {
	r := iroot(x, k)
	return r, new(big.Int).Exp(r, big.NewInt(int64(k)), nil).Cmp(x) == 0
}

const rootFactorLimit = 1000

// extractPower splits x > 0 into outside^k * inside, pulling out every k-th
// power of a prime below rootFactorLimit, and the cofactor when it is itself
// a perfect power.
func extractPower(x *big.Int, k int) (outside, inside *big.Int) {
	outside = big.NewInt(1)
	inside = big.NewInt(1)
	rest := new(big.Int).Set(x)
	p := new(big.Int)
	q, m := new(big.Int), new(big.Int)
	for i := int64(2); i < rootFactorLimit; i++ {
		p.SetInt64(i)
		if new(big.Int).Mul(p, p).Cmp(rest) > 0 {
			break
		}
		e := 0
		for {
			q.QuoRem(rest, p, m)
			if m.Sign() != 0 {
				break
			}
			rest.Set(q)
			e++
		}
		if e == 0 {
			continue
		}
		outside.Mul(outside, new(big.Int).Exp(p, big.NewInt(int64(e/k)), nil))
		inside.Mul(inside, new(big.Int).Exp(p, big.NewInt(int64(e%k)), nil))
	}
	if r, ok := exactRoot(rest, k); ok {
		outside.Mul(outside, r)
	} else {
		inside.Mul(inside, rest)
	}
	return outside, inside
}

// divisors lists the positive divisors of |n| in ascending order. It gives up
// (ok == false) when |n| exceeds limit^2.
func divisors(n *big.Int, limit int64) (ds []*big.Int, ok bool) {
	a := new(big.Int).Abs(n)
	if a.Sign() == 0 {
		return nil, false
	}
	bound := new(big.Int).Mul(big.NewInt(limit), big.NewInt(limit))
	if a.Cmp(bound) > 0 || !a.IsInt64() {
		return nil, false
	}
	v := a.Int64()
	var small, large []int64
	for i := int64(1); i*i <= v; i++ {
		if v%i != 0 {
			continue
		}
		small = append(small, i)
		if i != v/i {
			large = append(large, v/i)
		}
	}
	all := append(small, large...)
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	ds = make([]*big.Int, len(all))
	for i, d := range all {
		ds[i] = big.NewInt(d)
	}
	return ds, true
}

// lcmInt returns lcm(a, b) for positive a, b.
func lcmInt(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, a, b)
	out := new(big.Int).Quo(a, g)
	return out.Mul(out, b)
}
