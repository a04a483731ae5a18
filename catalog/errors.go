package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrdinal marks a malformed dotted-integer ordinal string.
	ErrInvalidOrdinal = errors.New("catalog: invalid ordinal")
	// ErrDuplicateOrdinal marks an insert collision on the ordinal primary key.
	ErrDuplicateOrdinal = errors.New("catalog: duplicate ordinal")
	// ErrNotFound marks a missing record. Absence is not always an error:
	// a missing sibling or parent is a legitimate "no neighbour" signal.
	ErrNotFound = errors.New("catalog: record not found")
	// ErrStoreCorruption marks an unreadable or structurally broken cache.
	ErrStoreCorruption = errors.New("catalog: store corrupted")
)

// InvalidOrdinalError reports which ordinal failed to parse.
type InvalidOrdinalError struct {
	Ordinal string
}

func (e *InvalidOrdinalError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidOrdinal.Error(), e.Ordinal)
}

func (e *InvalidOrdinalError) Unwrap() error {
	return ErrInvalidOrdinal
}

// DuplicateOrdinalError reports an insert that collided with an existing record.
type DuplicateOrdinalError struct {
	Ordinal string
}

func (e *DuplicateOrdinalError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateOrdinal.Error(), e.Ordinal)
}

func (e *DuplicateOrdinalError) Unwrap() error {
	return ErrDuplicateOrdinal
}
