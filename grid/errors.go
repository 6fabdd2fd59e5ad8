package grid

import "errors"

var (
	// ErrInvalidPlacement marks malformed size or position data.
	ErrInvalidPlacement = errors.New("invalid placement")
	// ErrGridCapacityExceeded is returned when caps or free space stop the
	// rebalancer before the target is reached. The accompanying result is
	// still usable.
	ErrGridCapacityExceeded = errors.New("grid capacity exceeded")
)
