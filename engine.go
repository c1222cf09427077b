package gocas

import (
	"log/slog"
	"sync/atomic"
)

// ============================================================
// Engine
// ============================================================

// Engine carries the limits and the memo cache shared by the symbolic
// operations. An Engine is safe for concurrent use.
type Engine struct {
	cfg  Config
	memo *memo
	log  *slog.Logger
}

// New validates cfg and returns an engine using it.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, log: cfg.logger()}
	if cfg.Cache {
		e.memo = newMemo(cfg.CacheSize)
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// ClearCache drops every memoized result.
func (e *Engine) ClearCache() {
	n := e.memo.clear()
	e.log.Debug("cache cleared", "entries", n)
}

// CacheLen reports the number of memoized results.
func (e *Engine) CacheLen() int { return e.memo.len() }

var defaultEngine atomic.Pointer[Engine]

func init() {
	e, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	defaultEngine.Store(e)
}

// Default returns the engine behind the package-level functions.
func Default() *Engine { return defaultEngine.Load() }

// SetDefault replaces the engine behind the package-level functions.
func SetDefault(e *Engine) {
	if e != nil {
		defaultEngine.Store(e)
	}
}

// ============================================================
// Package-level operations on the default engine
// ============================================================

func Simplify(x Expr) (Expr, error) { return Default().Simplify(x) }
func Expand(x Expr) (Expr, error) { return Default().Expand(x) }
func Diff(x Expr, varName string) (Expr, error) { return Default().Diff(x, varName) }
func Integrate(x Expr, varName string) (Expr, error) {
	return Default().Integrate(x, varName)
}
func DiffN(x Expr, varName string, n int) (Expr, error) { return Default().DiffN(x, varName, n) }
func Gradient(x Expr, varNames []string) ([]Expr, error) {
	return Default().Gradient(x, varNames)
}
func Jacobian(xs []Expr, varNames []string) ([][]Expr, error) {
	return Default().Jacobian(xs, varNames)
}
func Hessian(x Expr, varNames []string) ([][]Expr, error) {
	return Default().Hessian(x, varNames)
}
func Laplacian(x Expr, varNames []string) (Expr, error) {
	return Default().Laplacian(x, varNames)
}
func Taylor(x Expr, varName string, at Expr, order int) (Expr, error) {
	return Default().Taylor(x, varName, at, order)
}
func Maclaurin(x Expr, varName string, order int) (Expr, error) {
	return Default().Maclaurin(x, varName, order)
}
func DefiniteIntegrate(x Expr, varName string, lower, upper Expr) (Expr, error) {
	return Default().DefiniteIntegrate(x, varName, lower, upper)
}
func Solve(x Expr, varName string) ([]Expr, error) { return Default().Solve(x, varName) }
func SolveRoots(x Expr, varName string) ([]Root, error) { return Default().SolveRoots(x, varName) }
func ToPoly(x Expr, varName string) (*Poly, error) { return Default().ToPoly(x, varName) }
func Degree(x Expr, varName string) (int, error) { return Default().Degree(x, varName) }
func PolyCoeffs(x Expr, varName string) ([]Expr, error) {
	return Default().PolyCoeffs(x, varName)
}

// ClearCache empties the default engine's memo cache.
func ClearCache() { Default().ClearCache() }
