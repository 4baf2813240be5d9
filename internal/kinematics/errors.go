package kinematics

import "errors"

var (
	// ErrContainerMismatch indicates a body already attached to another container.
	ErrContainerMismatch = errors.New("kinematics: body attached to a different container")

	// ErrNotAttached indicates a detach from a container the body is not attached to.
	ErrNotAttached = errors.New("kinematics: body not attached to container")

	// ErrNilContainer indicates a nil container argument.
	ErrNilContainer = errors.New("kinematics: nil container")
)
