package container

import (
	"errors"
	"fmt"

	"github.com/operator-framework/geogen/pkg/geogen"
)

// ErrReconstructionExhausted is returned once all containers were
// resampled the maximal number of times and the operation still found
// them inconsistent.
var ErrReconstructionExhausted = errors.New("maximal number of container reconstructions reached")

// TypeMismatch is returned when an analytic value does not have the type
// declared by its configuration object.
type TypeMismatch struct {
	Object   *geogen.ConfigurationObject
	Expected geogen.ObjectType
	Actual   geogen.ObjectType
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("object %s is a %s, got a %s value", e.Object, e.Expected, e.Actual)
}

// ObjectNotFound is returned when a configuration object has no value in a
// container.
type ObjectNotFound geogen.ObjectID

func (e ObjectNotFound) Error() string {
	return fmt.Sprintf("object %s not found in container", geogen.ObjectID(e))
}
