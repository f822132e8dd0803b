package geogen

import (
	"errors"
	"fmt"
)

// InconsistentContainers is returned when independent numeric realizations
// of one configuration disagree about a geometric fact. It is recoverable:
// the realizations are resampled and the operation is retried.
type InconsistentContainers struct {
	Reason string
}

func (e InconsistentContainers) Error() string {
	if e.Reason == "" {
		return "inconsistent containers"
	}
	return "inconsistent containers: " + e.Reason
}

// Inconsistency formats a new InconsistentContainers error.
func Inconsistency(format string, args ...interface{}) error {
	return InconsistentContainers{Reason: fmt.Sprintf(format, args...)}
}

// IsInconsistency reports whether err, or any error it wraps, is an
// InconsistentContainers error.
func IsInconsistency(err error) bool {
	var ic InconsistentContainers
	return errors.As(err, &ic)
}
