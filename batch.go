package gocas

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every expression concurrently, at most Config.Workers at
// a time (unbounded when Workers is 0). Results keep input order. The first
// error cancels the remaining work and is returned.
func (e *Engine) Map(ctx context.Context, xs []Expr, fn func(*Engine, Expr) (Expr, error)) ([]Expr, error) {
	out := make([]Expr, len(xs))
	g, ctx := errgroup.WithContext(ctx)
	if e.cfg.Workers > 0 {
		g.SetLimit(e.cfg.Workers)
	}
	for i, x := range xs {
		i, x := i, x // per-iteration copies (go < 1.22 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(e, x)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SimplifyAll simplifies every expression concurrently.
func (e *Engine) SimplifyAll(ctx context.Context, xs []Expr) ([]Expr, error) {
	return e.Map(ctx, xs, (*Engine).Simplify)
}

// SimplifyAll runs Engine.SimplifyAll on the default engine.
func SimplifyAll(ctx context.Context, xs []Expr) ([]Expr, error) {
	return Default().SimplifyAll(ctx, xs)
}
