package playlist

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when an index-based operation receives an index
// outside [0, len).
var ErrOutOfRange = errors.New("queue index out of range")

func outOfRange(index, length int) error {
	return fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, index, length)
}
