package relay

import "errors"

// ErrEmptyCreationCode is returned when the CPK factory reports no proxy
// creation code.
var ErrEmptyCreationCode = errors.New("empty proxy creation code")
