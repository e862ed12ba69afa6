// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
//
// Handlers answer with it instead of leaking the underlying cause.
var ErrInternal = errors.New("internal")
