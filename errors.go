package uubed

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/uubed/errs"
)

// ErrorCode maps err to its stable numeric code. A nil error maps to
// errs.CodeSuccess.
func ErrorCode(err error) errs.Code {
	return errs.CodeOf(err)
}

// ErrorMessage returns the message paired with ErrorCode for callers that
// cannot inspect Go errors. A nil error yields an empty string.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// translateError normalizes errors escaping a worker so that every failure
// carries an errs kind.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errs.Computation("batch interrupted", err)
	}

	return errs.ParallelProcessingFailed(err)
}

// panicError converts a recovered panic value into a computation error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return errs.Computation("panic during encoding", err)
	}
	return errs.Computation(fmt.Sprintf("panic during encoding: %v", r), nil)
}
