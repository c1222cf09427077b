package gocas_test

import (
	"errors"
	"testing"

	"github.com/njchilds90/gocas"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := gocas.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
	if n.Kind() != gocas.KindInteger {
		t.Errorf("want integer kind, got %s", n.Kind())
	}
}

func TestNum_RationalIsReduced(t *testing.T) {
	cases := map[string]*gocas.Num{
		"1/3":  gocas.F(1, 3),
		"1/2":  gocas.F(2, 4),
		"-1/2": gocas.F(3, -6),
		"5":    gocas.F(10, 2),
	}
	for want, n := range cases {
		if n.String() != want {
			t.Errorf("want %s, got %s", want, n.String())
		}
	}
	if gocas.F(1, 2).Kind() != gocas.KindRational {
		t.Errorf("want rational kind, got %s", gocas.F(1, 2).Kind())
	}
}

func TestNum_DivisionByZero(t *testing.T) {
	_, err := gocas.Rat(1, 0)
	wantKind(t, err, gocas.KindDivisionByZero)
	if !errors.Is(err, gocas.ErrDivisionByZero) {
		t.Errorf("want errors.Is ErrDivisionByZero, got %v", err)
	}

	_, err = gocas.N(3).Quo(gocas.N(0))
	wantKind(t, err, gocas.KindDivisionByZero)
}

func TestNum_ExactArithmetic(t *testing.T) {
	sum := gocas.F(1, 3).Add(gocas.F(1, 6))
	if !sum.Equal(gocas.F(1, 2)) {
		t.Errorf("want 1/2, got %s", sum)
	}
	// 0.1 + 0.2 is exact here.
	tenth := gocas.F(1, 10)
	if got := tenth.Add(gocas.F(2, 10)); !got.Equal(gocas.F(3, 10)) {
		t.Errorf("want 3/10, got %s", got)
	}
	q, err := gocas.F(2, 3).Quo(gocas.F(4, 9))
	if err != nil {
		t.Fatal(err)
	}
	if !q.Equal(gocas.F(3, 2)) {
		t.Errorf("want 3/2, got %s", q)
	}
}

func TestNum_BigPowers(t *testing.T) {
	p, err := gocas.N(2).PowInt(100)
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "1267650600228229401496703205376" {
		t.Errorf("want 2^100, got %s", p)
	}
	inv, err := gocas.F(-2, 3).PowInt(-3)
	if err != nil {
		t.Fatal(err)
	}
	if !inv.Equal(gocas.F(-27, 8)) {
		t.Errorf("want -27/8, got %s", inv)
	}
	_, err = gocas.N(0).PowInt(-1)
	wantKind(t, err, gocas.KindUndefinedPower)
}

func TestNum_GCD(t *testing.T) {
	g, err := gocas.GCD(gocas.N(-12), gocas.N(18))
	if err != nil {
		t.Fatal(err)
	}
	if g.String() != "6" {
		t.Errorf("want 6, got %s", g)
	}
	_, err = gocas.GCD(gocas.F(1, 2), gocas.N(2))
	wantKind(t, err, gocas.KindInvalidArgument)
}

func TestNum_HashMatchesEquality(t *testing.T) {
	a, b := gocas.F(6, 8), gocas.F(3, 4)
	if a.Hash() != b.Hash() || !a.Equal(b) {
		t.Errorf("want 6/8 and 3/4 equal with equal hashes")
	}
	if gocas.N(1).Equal(gocas.S("1")) {
		t.Errorf("number must not equal a symbol")
	}
}
