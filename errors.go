package lazyseq

import "go.llib.dev/lazyseq/pkg/errorkit"

const (
	// ErrInvalidStep is returned when a slice is requested with a zero step.
	ErrInvalidStep errorkit.Error = "lazyseq: slice step cannot be zero"
	// ErrIndexOutOfRange is returned when a requested position does not exist in the sequence.
	ErrIndexOutOfRange errorkit.Error = "lazyseq: index out of range"
)
