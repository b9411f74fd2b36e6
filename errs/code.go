package errs

import (
	"context"
	"errors"
)

// Code is the stable numeric form of an error, suitable for crossing
// process or language boundaries.
type Code int

const (
	CodeSuccess          Code = 0
	CodeQ64              Code = 1
	CodeSimHash          Code = 2
	CodeTopK             Code = 3
	CodeZOrder           Code = 4
	CodeValidation       Code = 5
	CodeMemory           Code = 6
	CodeComputation      Code = 7
	CodeInvalidParameter Code = 8
	CodeBufferTooSmall   Code = 9
	CodeUnknown          Code = 10
)

// String returns the symbolic name of a code.
func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeQ64:
		return "q64_error"
	case CodeSimHash:
		return "simhash_error"
	case CodeTopK:
		return "topk_error"
	case CodeZOrder:
		return "zorder_error"
	case CodeValidation:
		return "validation_error"
	case CodeMemory:
		return "memory_error"
	case CodeComputation:
		return "computation_error"
	case CodeInvalidParameter:
		return "invalid_parameter"
	case CodeBufferTooSmall:
		return "buffer_too_small"
	default:
		return "unknown_error"
	}
}

// CodeOf maps err to its numeric code. A nil error maps to CodeSuccess.
func CodeOf(err error) Code {
	if err == nil {
		return CodeSuccess
	}

	var e *Error
	if !errors.As(err, &e) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return CodeComputation
		}
		return CodeUnknown
	}

	if e.Kind == KindBufferOverflow {
		return CodeBufferTooSmall
	}

	switch e.Category() {
	case CategoryQ64:
		return CodeQ64
	case CategorySimHash:
		return CodeSimHash
	case CategoryTopK:
		return CodeTopK
	case CategoryZOrder:
		return CodeZOrder
	case CategoryValidation:
		return CodeValidation
	case CategoryMemory:
		return CodeMemory
	case CategoryComputation:
		return CodeComputation
	default:
		return CodeUnknown
	}
}
