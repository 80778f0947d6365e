package ast

import (
	"errors"
	"fmt"
	"regexp/syntax"
)

// Common AST errors
var (
	// ErrInvalidPattern indicates the textual pattern failed to parse
	ErrInvalidPattern = errors.New("invalid regex pattern")

	// ErrUnsupported indicates the pattern uses a construct the engine has no
	// node for (anchors, word boundaries)
	ErrUnsupported = errors.New("unsupported regex construct")
)

// CompileError wraps a parse or lowering failure with the pattern text.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("pattern %q: %v", e.Pattern, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// unsupportedError reports an operator FromSyntax cannot lower.
func unsupportedError(op syntax.Op) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, opName(op))
}

func opName(op syntax.Op) string {
	switch op {
	case syntax.OpBeginLine:
		return "beginning of line (^ in multi-line mode)"
	case syntax.OpEndLine:
		return "end of line ($ in multi-line mode)"
	case syntax.OpBeginText:
		return "beginning of text (^ or \\A)"
	case syntax.OpEndText:
		return "end of text ($ or \\z)"
	case syntax.OpWordBoundary:
		return "word boundary (\\b)"
	case syntax.OpNoWordBoundary:
		return "non-word boundary (\\B)"
	default:
		return fmt.Sprintf("operator %d", op)
	}
}
