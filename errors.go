package destructure

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage is the base of all errors reported for invalid inputs.
	// Every error returned by Derive wraps it, so callers can check
	// errors.Is(err, ErrUsage) regardless of the precise cause.
	ErrUsage = errors.New("destructure usage error")

	ErrNilCache       = fmt.Errorf("%w: cache is nil", ErrUsage)
	ErrNilComposite   = fmt.Errorf("%w: composite is nil", ErrUsage)
	ErrNilSetter      = fmt.Errorf("%w: setter is nil", ErrUsage)
	ErrNotComposite   = fmt.Errorf("%w: value is neither a sequence nor a record", ErrUsage)
	ErrNonStringKeys  = fmt.Errorf("%w: record keys are not strings", ErrUsage)
	ErrEmptyFieldName = fmt.Errorf("%w: record contains an empty field name", ErrUsage)
	ErrBadUpdate      = fmt.Errorf("%w: update value is not assignable to the element", ErrUsage)
	ErrBadTransform   = fmt.Errorf("%w: transform did not return an assignable value", ErrUsage)
	ErrUnreachable    = errors.New("unreachable")
)

func fmtValueNotComposite(v any) error {
	return fmt.Errorf("%w: %T", ErrNotComposite, v)
}

func fmtRecordKeysNotStrings(v any) error {
	return fmt.Errorf("%w: %T", ErrNonStringKeys, v)
}
