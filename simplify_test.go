package gocas_test

import (
	"testing"

	"github.com/njchilds90/gocas"
)

// ============================================================
// Simplify tests
// ============================================================

func TestSimplify_LikeTerms(t *testing.T) {
	e := gocas.AddOf(x, x, x, gocas.N(2))
	if got := str(t, e); got != "3*x + 2" {
		t.Errorf("want 3*x + 2, got %s", got)
	}
}

func TestSimplify_Cancellation(t *testing.T) {
	if got := str(t, gocas.SubOf(x, x)); got != "0" {
		t.Errorf("want 0, got %s", got)
	}
	if got := str(t, gocas.DivOf(x, x)); got != "1" {
		t.Errorf("want 1, got %s", got)
	}
	if got := str(t, gocas.MulOf(gocas.N(0), gocas.SinOf(x))); got != "0" {
		t.Errorf("want 0, got %s", got)
	}
}

func TestSimplify_CanonicalEquality(t *testing.T) {
	pairs := [][2]gocas.Expr{
		{gocas.AddOf(x, gocas.N(1)), gocas.AddOf(gocas.N(1), x)},
		{gocas.MulOf(x, y, gocas.N(2)), gocas.MulOf(gocas.N(2), y, x)},
		{gocas.AddOf(x, gocas.AddOf(y, gocas.AddOf(x, gocas.N(1)))), gocas.AddOf(gocas.N(1), gocas.MulOf(gocas.N(2), x), y)},
		{gocas.MulOf(x, pow(x, 2)), pow(x, 3)},
		{gocas.MulOf(gocas.MulOf(x, y), gocas.MulOf(y, x)), gocas.MulOf(pow(x, 2), pow(y, 2))},
	}
	for _, p := range pairs {
		a, b := simp(t, p[0]), simp(t, p[1])
		if !a.Equal(b) {
			t.Errorf("want %s == %s", a, b)
		}
		if a.Hash() != b.Hash() {
			t.Errorf("want equal hashes for %s", a)
		}
	}
}

func TestSimplify_Idempotent(t *testing.T) {
	exprs := []gocas.Expr{
		gocas.AddOf(x, x, gocas.MulOf(gocas.N(3), y), gocas.F(1, 2)),
		gocas.MulOf(gocas.SqrtOf(gocas.N(8)), gocas.SqrtOf(gocas.N(2))),
		pow(gocas.AddOf(x, gocas.N(1)), 2),
		gocas.DivOf(gocas.SinOf(x), gocas.AddOf(x, gocas.N(1))),
		gocas.ExpOf(gocas.LnOf(gocas.AddOf(x, y))),
	}
	for _, e := range exprs {
		once := simp(t, e)
		twice := simp(t, once)
		if !once.Equal(twice) {
			t.Errorf("not idempotent: %s then %s", once, twice)
		}
	}
}

func TestSimplify_Order(t *testing.T) {
	if got := str(t, gocas.AddOf(y, x)); got != "x + y" {
		t.Errorf("want x + y, got %s", got)
	}
	if got := str(t, gocas.MulOf(y, x, gocas.N(2))); got != "2*x*y" {
		t.Errorf("want 2*x*y, got %s", got)
	}
}

func TestSimplify_NumericCoefficientDoesNotDistribute(t *testing.T) {
	if got := str(t, gocas.MulOf(gocas.N(2), gocas.AddOf(x, gocas.N(1)))); got != "2*(x + 1)" {
		t.Errorf("want 2*(x + 1), got %s", got)
	}
}

// ============================================================
// Powers
// ============================================================

func TestSimplify_NumericPowers(t *testing.T) {
	cases := []struct {
		in   gocas.Expr
		want string
	}{
		{pow(gocas.N(2), 10), "1024"},
		{pow(gocas.N(2), -1), "1/2"},
		{pow(gocas.F(2, 3), 2), "4/9"},
		{gocas.SqrtOf(gocas.N(4)), "2"},
		{gocas.SqrtOf(gocas.N(8)), "2*2^(1/2)"},
		{gocas.SqrtOf(gocas.N(12)), "2*3^(1/2)"},
		{gocas.SqrtOf(gocas.F(1, 4)), "1/2"},
		{gocas.PowOf(gocas.N(-8), gocas.F(1, 3)), "-2"},
		{gocas.PowOf(gocas.N(8), gocas.F(2, 3)), "4"},
		{gocas.SqrtOf(gocas.N(-4)), "(-4)^(1/2)"},
		{gocas.MulOf(gocas.SqrtOf(gocas.N(2)), gocas.SqrtOf(gocas.N(2))), "2"},
		{gocas.MulOf(gocas.SqrtOf(gocas.N(2)), gocas.SqrtOf(gocas.N(3))), "6^(1/2)"},
		{gocas.MulOf(gocas.SqrtOf(gocas.N(6)), gocas.SqrtOf(gocas.N(3))), "3*2^(1/2)"},
		{gocas.MulOf(gocas.PowOf(gocas.N(2), gocas.F(1, 3)), gocas.PowOf(gocas.N(4), gocas.F(1, 3))), "2"},
		{gocas.MulOf(x, gocas.SqrtOf(gocas.N(2)), gocas.SqrtOf(gocas.N(5))), "x*10^(1/2)"},
	}
	for _, c := range cases {
		if got := str(t, c.in); got != c.want {
			t.Errorf("%s: want %s, got %s", gocas.ToSExpr(c.in), c.want, got)
		}
	}
}

func TestSimplify_RadicalsShareCanonicalForm(t *testing.T) {
	a := simp(t, gocas.MulOf(gocas.SqrtOf(gocas.N(2)), gocas.SqrtOf(gocas.N(3))))
	b := simp(t, gocas.SqrtOf(gocas.N(6)))
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Errorf("want %s == %s", a, b)
	}
	if got := str(t, gocas.SubOf(a, b)); got != "0" {
		t.Errorf("want 0, got %s", got)
	}

	// (-2)^(1/2)*(-3)^(1/2) is -6^(1/2), so negative bases are not merged.
	neg := simp(t, gocas.MulOf(gocas.SqrtOf(gocas.N(-2)), gocas.SqrtOf(gocas.N(-3))))
	if neg.Equal(b) {
		t.Errorf("want negative radicands kept apart, got %s", neg)
	}
}

func TestSimplify_SymbolicPowers(t *testing.T) {
	cases := []struct {
		in   gocas.Expr
		want string
	}{
		{pow(x, 0), "1"},
		{pow(x, 1), "x"},
		{pow(pow(x, 2), 3), "x^6"},
		{pow(gocas.MulOf(gocas.N(2), x), 2), "4*x^2"},
		{gocas.MulOf(pow(x, 2), pow(x, -2)), "1"},
		{gocas.PowOf(gocas.N(1), y), "1"},
		{gocas.DivOf(gocas.N(1), gocas.AddOf(x, gocas.N(1))), "1/(x + 1)"},
	}
	for _, c := range cases {
		if got := str(t, c.in); got != c.want {
			t.Errorf("%s: want %s, got %s", gocas.ToSExpr(c.in), c.want, got)
		}
	}
}

func TestSimplify_UndefinedPower(t *testing.T) {
	_, err := gocas.Simplify(pow(gocas.N(0), 0))
	wantKind(t, err, gocas.KindUndefinedPower)

	_, err = gocas.Simplify(gocas.DivOf(x, gocas.N(0)))
	wantKind(t, err, gocas.KindUndefinedPower)
}

// ============================================================
// Functions
// ============================================================

func TestSimplify_FunctionIdentities(t *testing.T) {
	cases := []struct {
		in   gocas.Expr
		want string
	}{
		{gocas.ExpOf(gocas.LnOf(x)), "x"},
		{gocas.LnOf(gocas.ExpOf(x)), "x"},
		{gocas.LnOf(gocas.N(1)), "0"},
		{gocas.SinOf(gocas.N(0)), "0"},
		{gocas.CosOf(gocas.N(0)), "1"},
		{gocas.ExpOf(gocas.N(0)), "1"},
		{gocas.AbsOf(gocas.N(-3)), "3"},
		{gocas.FuncOf("log", x), "ln(x)"},
		{gocas.FuncOf("sqrt", x), "x^(1/2)"},
		{gocas.SinOf(gocas.N(1)), "sin(1)"},
		{gocas.FuncOf("f", gocas.AddOf(x, x)), "f(2*x)"},
	}
	for _, c := range cases {
		if got := str(t, c.in); got != c.want {
			t.Errorf("%s: want %s, got %s", gocas.ToSExpr(c.in), c.want, got)
		}
	}
}

// ============================================================
// Expand
// ============================================================

func TestExpand(t *testing.T) {
	cases := []struct {
		in   gocas.Expr
		want string
	}{
		{pow(gocas.AddOf(x, gocas.N(1)), 2), "x^2 + 2*x + 1"},
		{gocas.MulOf(gocas.AddOf(x, gocas.N(-1)), gocas.AddOf(x, gocas.N(1))), "x^2 - 1"},
		{gocas.MulOf(gocas.N(2), gocas.AddOf(x, gocas.N(1))), "2*x + 2"},
		{pow(x, 2), "x^2"},
	}
	for _, c := range cases {
		out, err := gocas.Expand(c.in)
		if err != nil {
			t.Fatalf("Expand: %v", err)
		}
		if got := gocas.String(out); got != c.want {
			t.Errorf("want %s, got %s", c.want, got)
		}
	}
}

func TestExpand_MatchesNumerically(t *testing.T) {
	e := gocas.MulOf(pow(gocas.AddOf(x, y), 3), gocas.AddOf(x, gocas.N(-2)))
	out, err := gocas.Expand(e)
	if err != nil {
		t.Fatal(err)
	}
	env := map[string]float64{"x": 1.25, "y": -0.5}
	a, err := gocas.EvalfWith(e, env)
	if err != nil {
		t.Fatal(err)
	}
	b, err := gocas.EvalfWith(out, env)
	if err != nil {
		t.Fatal(err)
	}
	if d := a - b; d > 1e-9 || d < -1e-9 {
		t.Errorf("want %g, got %g for %s", a, b, out)
	}
}

// ============================================================
// Order and structure
// ============================================================

func TestCompare(t *testing.T) {
	ordered := []gocas.Expr{gocas.N(-1), gocas.F(1, 2), x, y, pow(x, 2), gocas.MulOf(gocas.N(2), x), gocas.AddOf(x, y), gocas.SinOf(x)}
	for i := range ordered {
		for j := range ordered {
			got := gocas.Compare(ordered[i], ordered[j])
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got != want {
				t.Errorf("Compare(%s, %s): want %d, got %d", ordered[i], ordered[j], want, got)
			}
		}
	}
}

func TestFreeSymbolsAndDepends(t *testing.T) {
	e := gocas.AddOf(gocas.MulOf(y, x), gocas.SinOf(gocas.S("z")), x)
	got := gocas.FreeSymbols(e)
	want := []string{"x", "y", "z"}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("want %v, got %v", want, got)
		}
	}
	if !gocas.Depends(e, "z") || gocas.Depends(e, "w") {
		t.Errorf("Depends is wrong for %s", e)
	}
}

func TestEngine_Cache(t *testing.T) {
	eng, err := gocas.New(gocas.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Simplify(gocas.AddOf(x, x)); err != nil {
		t.Fatal(err)
	}
	if eng.CacheLen() == 0 {
		t.Errorf("want cached entries after Simplify")
	}
	eng.ClearCache()
	if eng.CacheLen() != 0 {
		t.Errorf("want empty cache, got %d", eng.CacheLen())
	}

	cfg := gocas.DefaultConfig()
	cfg.Cache = false
	uncached, err := gocas.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	a, err := uncached.Simplify(gocas.AddOf(x, x))
	if err != nil {
		t.Fatal(err)
	}
	if uncached.CacheLen() != 0 {
		t.Errorf("want no cache, got %d entries", uncached.CacheLen())
	}
	if !a.Equal(simp(t, gocas.AddOf(x, x))) {
		t.Errorf("cache must not change results")
	}
}

func TestEngine_CacheIsBounded(t *testing.T) {
	cfg := gocas.DefaultConfig()
	cfg.CacheSize = 8
	eng, err := gocas.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := int64(0); i < 100; i++ {
		if _, err := eng.Simplify(gocas.AddOf(x, gocas.N(i))); err != nil {
			t.Fatal(err)
		}
		if n := eng.CacheLen(); n > cfg.CacheSize {
			t.Fatalf("after %d inputs: want at most %d entries, got %d", i+1, cfg.CacheSize, n)
		}
	}
	if n := eng.CacheLen(); n != cfg.CacheSize {
		t.Errorf("want a full cache of %d, got %d", cfg.CacheSize, n)
	}
	// An evicted input is recomputed, not lost.
	out, err := eng.Simplify(gocas.AddOf(x, gocas.N(0)))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(x) {
		t.Errorf("want x, got %s", out)
	}
}

func TestSetDefault(t *testing.T) {
	prev := gocas.Default()
	t.Cleanup(func() { gocas.SetDefault(prev) })

	cfg := gocas.DefaultConfig()
	cfg.ComplexRoots = gocas.ComplexPairs
	eng, err := gocas.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	gocas.SetDefault(eng)
	if gocas.Default() != eng {
		t.Fatalf("SetDefault did not install the engine")
	}
	gocas.SetDefault(nil)
	if gocas.Default() != eng {
		t.Errorf("SetDefault(nil) must be ignored")
	}
}
