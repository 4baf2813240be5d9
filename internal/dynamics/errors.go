package dynamics

import (
	"errors"

	"github.com/san-kum/collide/internal/kinematics"
)

var (
	ErrNilBody = errors.New("dynamics: nil body")

	// ErrAlreadyAttached indicates a body that already belongs to a container.
	ErrAlreadyAttached = errors.New("dynamics: body already in a container")

	ErrNotAttached = errors.New("dynamics: body not in this container")

	// ErrNilKind is the panic value for a component built without a kind.
	ErrNilKind = errors.New("dynamics: nil component kind")

	ErrContainerMismatch = kinematics.ErrContainerMismatch
)
