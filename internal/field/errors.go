package field

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded indicates more edges than the line buffers can hold.
	ErrCapacityExceeded = errors.New("field: line buffer capacity exceeded")

	// ErrInvalidOptions indicates a simulator built with unusable dimensions.
	ErrInvalidOptions = errors.New("field: invalid simulator options")

	// ErrUnknownBuilder indicates a graph builder name with no registration.
	ErrUnknownBuilder = errors.New("field: unknown graph builder")
)

// CapacityError reports a pack that had to drop trailing edges.
type CapacityError struct {
	Edges    int
	Capacity int
	Dropped  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: %d edges, room for %d, dropped %d", ErrCapacityExceeded, e.Edges, e.Capacity, e.Dropped)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
