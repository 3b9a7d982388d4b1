package repositories

import "errors"

// ErrNotFound is returned when a row does not exist or is not visible to the
// caller. Handlers map it to a 404 without distinguishing the two cases.
var ErrNotFound = errors.New("record not found")
