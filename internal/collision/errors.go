package collision

import (
	"errors"

	"github.com/san-kum/collide/internal/kinematics"
)

var (
	// ErrSameBody indicates a pair built from one body twice.
	ErrSameBody = errors.New("collision: pair bodies must be distinct")

	// ErrNilBody indicates a nil body argument.
	ErrNilBody = errors.New("collision: nil body")

	// ErrContainerMismatch indicates a body owned by another container.
	ErrContainerMismatch = kinematics.ErrContainerMismatch
)
