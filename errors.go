package gocas

import (
	"errors"
	"fmt"
)

// ============================================================
// Error kinds
// ============================================================

// ErrorKind classifies every failure the engine can report.
type ErrorKind string

const (
	KindDivisionByZero        ErrorKind = "DivisionByZero"
	KindUnknownDerivative     ErrorKind = "UnknownDerivative"
	KindNonElementaryIntegral ErrorKind = "NonElementaryIntegral"
	KindNotPolynomial         ErrorKind = "NotPolynomial"
	KindUnsolvedPolynomial    ErrorKind = "UnsolvedPolynomial"
	KindInfiniteSolutions     ErrorKind = "InfiniteSolutions"
	KindNoRealRoot            ErrorKind = "NoRealRoot"
	KindUnboundSymbol         ErrorKind = "UnboundSymbol"
	KindUndefinedPower        ErrorKind = "UndefinedPower"
	KindDomainError           ErrorKind = "DomainError"
	KindNonFinite             ErrorKind = "NonFinite"
	KindUnknownFunction       ErrorKind = "UnknownFunction"
	KindInvalidArgument       ErrorKind = "InvalidArgument"
	KindParseError            ErrorKind = "ParseError"
)

// Sentinels for errors.Is. Every *Error unwraps to the sentinel of its kind.
var (
	ErrDivisionByZero        = errors.New(string(KindDivisionByZero))
	ErrUnknownDerivative     = errors.New(string(KindUnknownDerivative))
	ErrNonElementaryIntegral = errors.New(string(KindNonElementaryIntegral))
	ErrNotPolynomial         = errors.New(string(KindNotPolynomial))
	ErrUnsolvedPolynomial    = errors.New(string(KindUnsolvedPolynomial))
	ErrInfiniteSolutions     = errors.New(string(KindInfiniteSolutions))
	ErrNoRealRoot            = errors.New(string(KindNoRealRoot))
	ErrUnboundSymbol         = errors.New(string(KindUnboundSymbol))
	ErrUndefinedPower        = errors.New(string(KindUndefinedPower))
	ErrDomainError           = errors.New(string(KindDomainError))
	ErrNonFinite             = errors.New(string(KindNonFinite))
	ErrUnknownFunction       = errors.New(string(KindUnknownFunction))
	ErrInvalidArgument       = errors.New(string(KindInvalidArgument))
	ErrParseError            = errors.New(string(KindParseError))
)

var sentinels = map[ErrorKind]error{
	KindDivisionByZero:        ErrDivisionByZero,
	KindUnknownDerivative:     ErrUnknownDerivative,
	KindNonElementaryIntegral: ErrNonElementaryIntegral,
	KindNotPolynomial:         ErrNotPolynomial,
	KindUnsolvedPolynomial:    ErrUnsolvedPolynomial,
	KindInfiniteSolutions:     ErrInfiniteSolutions,
	KindNoRealRoot:            ErrNoRealRoot,
	KindUnboundSymbol:         ErrUnboundSymbol,
	KindUndefinedPower:        ErrUndefinedPower,
	KindDomainError:           ErrDomainError,
	KindNonFinite:             ErrNonFinite,
	KindUnknownFunction:       ErrUnknownFunction,
	KindInvalidArgument:       ErrInvalidArgument,
	KindParseError:            ErrParseError,
}

// Error is the concrete error returned by engine operations.
type Error struct {
	Kind   ErrorKind
	Op     string // operation that failed, e.g. "integrate"
	Detail string
	Err    error // optional underlying cause
}

func (e *Error) Error() string {
	msg := "gocas: "
	if e.Op != "" {
		msg += e.Op + ": "
	}
	msg += string(e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if s, ok := sentinels[e.Kind]; ok {
		out = append(out, s)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func newError(kind ErrorKind, op string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// withOp fills in the operation name on errors raised by helpers that
// do not know which public operation they are serving.
func withOp(err error, op string) error {
	var e *Error
	if errors.As(err, &e) && e.Op == "" {
		cp := *e
		cp.Op = op
		return &cp
	}
	return err
}

// KindOf returns the ErrorKind carried by err, or "" if err did not come
// from this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for k, s := range sentinels {
		if errors.Is(err, s) {
			return k
		}
	}
	return ""
}
