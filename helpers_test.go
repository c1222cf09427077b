package gocas_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/njchilds90/gocas"
)

var (
	x = gocas.S("x")
	y = gocas.S("y")
)

// exprEqual compares expressions structurally inside cmp.Diff.
var exprEqual = cmp.Comparer(func(a, b gocas.Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
})

func simp(t *testing.T, e gocas.Expr) gocas.Expr {
	t.Helper()
	out, err := gocas.Simplify(e)
	if err != nil {
		t.Fatalf("Simplify(%s): %v", e, err)
	}
	return out
}

func str(t *testing.T, e gocas.Expr) string {
	t.Helper()
	return gocas.String(simp(t, e))
}

func strs(xs []gocas.Expr) []string {
	out := make([]string, len(xs))
	for i, e := range xs {
		out[i] = gocas.String(e)
	}
	return out
}

func wantKind(t *testing.T, err error, kind gocas.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %s error, got nil", kind)
	}
	if got := gocas.KindOf(err); got != kind {
		t.Errorf("want %s, got %s (%v)", kind, got, err)
	}
	var ce *gocas.Error
	if !errors.As(err, &ce) {
		t.Errorf("want *gocas.Error, got %T", err)
	}
}

func pow(b gocas.Expr, k int64) gocas.Expr { return gocas.PowOf(b, gocas.N(k)) }
