package connection

import "errors"

var (
	// ErrOutsideProvider is the panic value of [MustFromContext] when no
	// connection was attached to the context.
	ErrOutsideProvider = errors.New("connection used outside the provider tree")

	// ErrMachineClosed is returned when posting to a stopped machine.
	ErrMachineClosed = errors.New("connection machine is closed")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("connection machine already started")
)
