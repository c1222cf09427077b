package gocas_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/njchilds90/gocas"
)

// ============================================================
// Error tests
// ============================================================

func TestError_Format(t *testing.T) {
	_, err := gocas.Integrate(gocas.LnOf(gocas.LnOf(x)), "x")
	if err == nil {
		t.Fatal("want error")
	}
	if !strings.HasPrefix(err.Error(), "gocas: integrate: NonElementaryIntegral") {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestError_SentinelsAndWrapping(t *testing.T) {
	_, err := gocas.Diff(gocas.FuncOf("f", x), "x")
	wrapped := fmt.Errorf("step 3: %w", err)

	if !errors.Is(wrapped, gocas.ErrUnknownDerivative) {
		t.Errorf("want errors.Is ErrUnknownDerivative through wrapping")
	}
	if errors.Is(wrapped, gocas.ErrNonElementaryIntegral) {
		t.Errorf("must not match an unrelated sentinel")
	}
	if gocas.KindOf(wrapped) != gocas.KindUnknownDerivative {
		t.Errorf("want KindUnknownDerivative, got %s", gocas.KindOf(wrapped))
	}
	var ce *gocas.Error
	if !errors.As(wrapped, &ce) || ce.Op != "diff" {
		t.Errorf("want *Error with op diff, got %+v", ce)
	}
}

func TestKindOf_Foreign(t *testing.T) {
	if k := gocas.KindOf(errors.New("boom")); k != "" {
		t.Errorf("want empty kind, got %s", k)
	}
	if k := gocas.KindOf(fmt.Errorf("x: %w", gocas.ErrNotPolynomial)); k != gocas.KindNotPolynomial {
		t.Errorf("want NotPolynomial, got %s", k)
	}
	if k := gocas.KindOf(nil); k != "" {
		t.Errorf("want empty kind for nil, got %s", k)
	}
}
