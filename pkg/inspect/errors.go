// pkg/inspect/errors.go
package inspect

import "errors"

var (
	// ErrInputRequired is returned when no input path is specified
	ErrInputRequired = errors.New("at least one input path is required")

	// ErrInvalidThreads is returned when the worker count is negative
	ErrInvalidThreads = errors.New("thread count must be zero (auto) or positive")

	// ErrIsDirectory is reported for directories given without Recursive
	ErrIsDirectory = errors.New("is a directory (use recursive mode)")
)
