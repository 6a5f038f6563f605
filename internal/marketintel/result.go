package marketintel

import "errors"

// errNotRequested marks a source the caller did not select.
var errNotRequested = errors.New("source not requested")

// Result is the settled outcome of one source call.
type Result[T any] struct {
	Value T
	Err   error
}

func capture[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Err: err}
}

func skipped[T any]() Result[T] {
	return Result[T]{Err: errNotRequested}
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}
