// Package meta implements the dispatcher that turns a pattern tree into a
// compiled matcher and picks the execution strategy for every call.
//
// Compilation analyses the pattern once:
//   - Shape classification: repetition sequence, wide alternation, other
//   - Literal extraction (dominator, expansion, region) and prefilter
//   - Exact position automaton, bit-parallel engine and literal key set
//     where they apply
//
// At run time the engine declines every shortcut that does not apply and
// falls through to the next, more general one, ending at the reference
// evaluator. All shortcuts agree with it on every input.
package meta

import (
	"github.com/coregx/rematch/literal"
)

// Config controls which shortcuts the engine may use.
//
// Every shortcut can be disabled without changing results; only speed is
// affected. Fields carry yaml tags so a configuration can be loaded from a
// file.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnableBitNFA = false // alternations use the simulator
//	engine, err := meta.CompileWithConfig(`Tom|Sawyer|Huck|Finn`, config)
type Config struct {
	// EnablePrefilter enables literal scanning ahead of verification.
	// Default: true
	EnablePrefilter bool `yaml:"enable_prefilter"`

	// EnableLookback enables anchored verification around prefilter hits.
	// When false a prefilter is only used to reject inputs.
	// Default: true
	EnableLookback bool `yaml:"enable_lookback"`

	// EnableBitNFA enables the bit-parallel engine for wide alternations.
	// Default: true
	EnableBitNFA bool `yaml:"enable_bitnfa"`

	// EnableVector lets the repetition matcher use the vector kernels. When
	// false the scalar kernels run on every host.
	// Default: true
	EnableVector bool `yaml:"enable_vector"`

	// EnableLiteralSet enables the key-set lookup for anchored matches of
	// patterns that are alternations of plain strings.
	// Default: true
	EnableLiteralSet bool `yaml:"enable_literal_set"`

	// MinLiteralLen is the minimum length of a prefilter literal. Shorter
	// literals produce too many candidates.
	// Default: 1
	MinLiteralLen int `yaml:"min_literal_len"`

	// MaxUnrollPositions caps the positions of the exact automaton built by
	// unrolling counted repetitions. Larger patterns run on the evaluator.
	// Default: 4096
	MaxUnrollPositions int `yaml:"max_unroll_positions"`

	// MaxExpandedLiterals bounds the strings a small-class expansion may
	// produce. Values below 2 disable expansion.
	// Default: 64
	MaxExpandedLiterals int `yaml:"max_expanded_literals"`
}

// DefaultConfig returns a configuration with every shortcut enabled.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.MinLiteralLen = 3 // only scan for literals of 3+ bytes
func DefaultConfig() Config {
	return Config{
		EnablePrefilter:     true,
		EnableLookback:      true,
		EnableBitNFA:        true,
		EnableVector:        true,
		EnableLiteralSet:    true,
		MinLiteralLen:       1,
		MaxUnrollPositions:  4096,
		MaxExpandedLiterals: literal.DefaultMaxExpandedLiterals,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MinLiteralLen: 1 to 64
//   - MaxUnrollPositions: 1 to 1,000,000
//   - MaxExpandedLiterals: 0 to 1,024
//
// Example:
//
//	config := meta.Config{MinLiteralLen: 0} // Invalid!
//	if err := config.Validate(); err != nil {
//	    log.Fatal(err)
//	}
func (c Config) Validate() error {
	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > literal.MaxLiteralLen {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
		if c.MaxExpandedLiterals < 0 || c.MaxExpandedLiterals > 1_024 {
			return &ConfigError{
				Field:   "MaxExpandedLiterals",
				Message: "must be between 0 and 1,024",
			}
		}
	}

	if c.MaxUnrollPositions < 1 || c.MaxUnrollPositions > 1_000_000 {
		return &ConfigError{
			Field:   "MaxUnrollPositions",
			Message: "must be between 1 and 1,000,000",
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "rematch: invalid config: " + e.Field + ": " + e.Message
}
