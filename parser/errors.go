package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnsupportedInput is matched by every UnsupportedInputError.
var ErrUnsupportedInput = errors.New("unsupported input")

// UnsupportedInputError reports a character that the HTML or CSS tokenizer
// has no rule for. Source names the tokenizer that gave up.
type UnsupportedInputError struct {
	Source string
	Pos    int
	Char   rune
}

// NewUnsupportedInputError returns an error for char at rune offset pos.
func NewUnsupportedInputError(source string, pos int, char rune) error {
	return errors.WithStack(&UnsupportedInputError{Source: source, Pos: pos, Char: char})
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("%s: unsupported character %q at offset %d", e.Source, e.Char, e.Pos)
}

func (e *UnsupportedInputError) Is(target error) bool {
	return target == ErrUnsupportedInput
}
