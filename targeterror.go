package main

import "fmt"

// Wraps an error with the target directory it concerns.
type TargetError struct {
	Path string
	Err  error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("target %q: %v", e.Path, e.Err)
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

func newTargetError(path string, err error) *TargetError {
	return &TargetError{Path: path, Err: err}
}
