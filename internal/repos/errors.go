package repos

import "errors"

// ErrNotFound is the generic sentinel for a missing record, mapped to 404 at
// the HTTP boundary.
var ErrNotFound = errors.New("not found")
