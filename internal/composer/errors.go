package composer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyProgression is returned when a progression has no symbols.
	ErrEmptyProgression = errors.New("chord progression must contain at least one symbol")

	// ErrEmptyComposition is returned when every enabled track failed or none were enabled.
	ErrEmptyComposition = errors.New("composition produced no tracks")
)

// ParamError is implemented by the fatal parameter errors so callers can
// report which field was rejected.
type ParamError interface {
	error
	Field() string
	Value() string
}

// InvalidKeyError reports an unrecognized tonal center.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key %q: must be one of %s, optionally suffixed with m", e.Key, strings.Join(Keys(), ", "))
}

func (e *InvalidKeyError) Field() string { return "key" }
func (e *InvalidKeyError) Value() string { return e.Key }

// InvalidScaleError reports an unrecognized scale or mode name.
type InvalidScaleError struct {
	Scale string
}

func (e *InvalidScaleError) Error() string {
	return fmt.Sprintf("invalid scale %q: must be one of %s", e.Scale, strings.Join(Modes(), ", "))
}

func (e *InvalidScaleError) Field() string { return "scale" }
func (e *InvalidScaleError) Value() string { return e.Scale }

// InvalidChordSymbolError reports a progression entry that is not a roman numeral.
type InvalidChordSymbolError struct {
	Symbol string
	Index  int
}

func (e *InvalidChordSymbolError) Error() string {
	return fmt.Sprintf("invalid chord symbol %q at position %d: expected a roman numeral I-VII or i-vii with optional ° marker", e.Symbol, e.Index)
}

func (e *InvalidChordSymbolError) Field() string { return "chord_progression" }
func (e *InvalidChordSymbolError) Value() string { return e.Symbol }
