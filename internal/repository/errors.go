package repository

import "errors"

// ErrStateNotFound is returned when a catalog has no stored page state
// yet, i.e. on the very first check of that catalog.
var ErrStateNotFound = errors.New("catalog state not found")
