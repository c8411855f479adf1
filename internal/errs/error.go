package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("authentication error")
	ErrConflict   = errors.New("integrity violation")
)

type wrapped struct {
	base error
	msg  string
}

func (w wrapped) Error() string { return w.msg }

func (w wrapped) Unwrap() error { return w.base }

// Wrapf attaches a human-readable message to one of the sentinel
// errors above. Unlike fmt.Errorf with %w the sentinel's own text
// does not leak into the message, which keeps response bodies clean.
func Wrapf(base error, format string, args ...interface{}) error {
	return wrapped{base: base, msg: fmt.Sprintf(format, args...)}
}
