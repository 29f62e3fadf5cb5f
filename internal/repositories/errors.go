package repositories

import "errors"

// ErrNotFound is returned when a row does not exist or is owned by another
// user. Callers cannot tell the two cases apart.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate")
