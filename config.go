package gocas

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ============================================================
// Configuration
// ============================================================

// ComplexPolicy decides what Solve does with complex roots.
type ComplexPolicy string

const (
	// ComplexReject drops complex roots and fails with NoRealRoot when no
	// real root is left.
	ComplexReject ComplexPolicy = "reject"
	// ComplexStrict fails with NoRealRoot on any complex root.
	ComplexStrict ComplexPolicy = "strict"
	// ComplexPairs returns re ± im*I using the reserved symbol I.
	ComplexPairs ComplexPolicy = "pairs"
)

// ImaginaryUnit is the symbol the solver uses for complex roots.
const ImaginaryUnit = "I"

// Config holds engine limits and policies.
type Config struct {
	// MaxPasses bounds the simplifier's fixed-point iteration.
	MaxPasses int `toml:"max_passes" yaml:"max_passes"`
	// MaxExponent is the largest |k| for which n^k is folded to a literal.
	// Numeric powers beyond it fail with InvalidArgument.
	MaxExponent int64 `toml:"max_exponent" yaml:"max_exponent"`
	// MaxDegree is the largest polynomial degree the solver accepts.
	MaxDegree int `toml:"max_degree" yaml:"max_degree"`
	// MaxDivisorSearch bounds trial division in the rational-root search.
	MaxDivisorSearch int64         `toml:"max_divisor_search" yaml:"max_divisor_search"`
	ComplexRoots     ComplexPolicy `toml:"complex_roots" yaml:"complex_roots"`
	// Cache enables memoization of Simplify and Integrate.
	Cache bool `toml:"cache" yaml:"cache"`
	// CacheSize caps the memoized results; the oldest are evicted first.
	CacheSize int `toml:"cache_size" yaml:"cache_size"`
	// Workers bounds batch concurrency; 0 means one per expression.
	Workers int `toml:"workers" yaml:"workers"`

	Logger *slog.Logger `toml:"-" yaml:"-"`
}

// DefaultConfig returns the limits used by the package-level functions.
func DefaultConfig() Config {
	return Config{
		MaxPasses:        16,
		MaxExponent:      1024,
		MaxDegree:        64,
		MaxDivisorSearch: 1_000_000,
		ComplexRoots:     ComplexReject,
		Cache:            true,
		CacheSize:        4096,
		Workers:          0,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.MaxPasses < 1:
		return newError(KindInvalidArgument, "config", "max_passes must be >= 1, got %d", c.MaxPasses)
	case c.MaxExponent < 1:
		return newError(KindInvalidArgument, "config", "max_exponent must be >= 1, got %d", c.MaxExponent)
	case c.MaxDegree < 1:
		return newError(KindInvalidArgument, "config", "max_degree must be >= 1, got %d", c.MaxDegree)
	case c.MaxDivisorSearch < 1:
		return newError(KindInvalidArgument, "config", "max_divisor_search must be >= 1, got %d", c.MaxDivisorSearch)
	case c.Cache && c.CacheSize < 1:
		return newError(KindInvalidArgument, "config", "cache_size must be >= 1 when cache is on, got %d", c.CacheSize)
	case c.Workers < 0:
		return newError(KindInvalidArgument, "config", "workers must be >= 0, got %d", c.Workers)
	}
	switch c.ComplexRoots {
	case ComplexReject, ComplexStrict, ComplexPairs:
	default:
		return newError(KindInvalidArgument, "config", "complex_roots must be %q, %q or %q, got %q",
			ComplexReject, ComplexStrict, ComplexPairs, c.ComplexRoots)
	}
	return nil
}

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// DetectFormat picks the syntax from a file extension; anything that is not
// .yaml or .yml is read as TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// LoadConfig reads a TOML or YAML file over DefaultConfig and validates it.
// Keys absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("gocas: read config: %w", err)
	}
	return ParseConfig(data, DetectFormat(path))
}

// ParseConfig decodes data over DefaultConfig and validates it.
func ParseConfig(data []byte, format Format) (Config, error) {
	cfg := DefaultConfig()
	if err := DecodeInto(data, format, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DecodeInto decodes TOML or YAML into v. It is shared with programs that
// embed Config in a larger settings struct.
func DecodeInto(data []byte, format Format, v interface{}) error {
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), v); err != nil {
			return &Error{Kind: KindParseError, Op: "config", Detail: "toml", Err: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return &Error{Kind: KindParseError, Op: "config", Detail: "yaml", Err: err}
		}
	default:
		return newError(KindInvalidArgument, "config", "unsupported format %s", format)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
