package recipe

import (
	"fmt"

	"github.com/matzehuels/asciiforge/pkg/errors"
)

// SymbolNotFoundError reports an operation that referenced a symbol no
// earlier operation stored.
type SymbolNotFoundError struct {
	Index  int
	Op     string
	Symbol string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("operation %d (%s): symbol %q not found", e.Index, e.Op, e.Symbol)
}

// Code implements the coded-error contract of package errors.
func (e *SymbolNotFoundError) Code() errors.Code { return errors.ErrCodeSymbolNotFound }

// OutputNotProducedError reports that every operation ran but none stored
// the declared output symbol.
type OutputNotProducedError struct {
	Output string
}

func (e *OutputNotProducedError) Error() string {
	return fmt.Sprintf("declared output %q was never produced", e.Output)
}

// Code implements the coded-error contract of package errors.
func (e *OutputNotProducedError) Code() errors.Code { return errors.ErrCodeOutputNotProduced }

// UnsupportedOperationError reports an operation kind the executor does
// not know. Validated recipes never trigger it.
type UnsupportedOperationError struct {
	Index int
	Kind  string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("operation %d: unsupported operation %q", e.Index, e.Kind)
}

// Code implements the coded-error contract of package errors.
func (e *UnsupportedOperationError) Code() errors.Code { return errors.ErrCodeUnsupportedOperation }
