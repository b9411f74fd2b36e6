package errs

import (
	"errors"
	"fmt"
)

// Category groups error kinds by the component that produced them.
type Category uint8

const (
	CategoryQ64 Category = iota + 1
	CategorySimHash
	CategoryTopK
	CategoryZOrder
	CategoryValidation
	CategoryMemory
	CategoryComputation
)

// String returns the display name of a category.
func (c Category) String() string {
	switch c {
	case CategoryQ64:
		return "Q64"
	case CategorySimHash:
		return "SimHash"
	case CategoryTopK:
		return "Top-k"
	case CategoryZOrder:
		return "Z-order"
	case CategoryValidation:
		return "Validation"
	case CategoryMemory:
		return "Memory"
	case CategoryComputation:
		return "Computation"
	default:
		return "Unknown"
	}
}

// Kind identifies a specific failure within a category.
type Kind uint8

const (
	KindUnknown Kind = iota

	// Q64
	KindOddLength
	KindInvalidCharacter
	KindWrongPosition
	KindBufferOverflow

	// SimHash
	KindInvalidPlanes
	KindDimensionsTooLarge
	KindMatrixGenerationFailed
	KindRNGFailure

	// Top-k
	KindInvalidK
	KindKTooLarge
	KindEmbeddingTooLarge
	KindParallelProcessingFailed

	// Z-order
	KindUnsuitableDimensions
	KindBitOverflow

	// Validation
	KindEmptyInput
	KindInputTooLarge
	KindInvalidInputValues
	KindIncompatibleParameters

	// Catch-all
	KindMemory
	KindComputation
)

var kindNames = [...]string{
	KindUnknown:                  "unknown",
	KindOddLength:                "odd length",
	KindInvalidCharacter:         "invalid character",
	KindWrongPosition:            "wrong position",
	KindBufferOverflow:           "buffer overflow",
	KindInvalidPlanes:            "invalid planes",
	KindDimensionsTooLarge:       "dimensions too large",
	KindMatrixGenerationFailed:   "matrix generation failed",
	KindRNGFailure:               "rng failure",
	KindInvalidK:                 "invalid k",
	KindKTooLarge:                "k too large",
	KindEmbeddingTooLarge:        "embedding too large",
	KindParallelProcessingFailed: "parallel processing failed",
	KindUnsuitableDimensions:     "unsuitable dimensions",
	KindBitOverflow:              "bit overflow",
	KindEmptyInput:               "empty input",
	KindInputTooLarge:            "input too large",
	KindInvalidInputValues:       "invalid input values",
	KindIncompatibleParameters:   "incompatible parameters",
	KindMemory:                   "memory",
	KindComputation:              "computation",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Category returns the category a kind belongs to.
func (k Kind) Category() Category {
	switch k {
	case KindOddLength, KindInvalidCharacter, KindWrongPosition, KindBufferOverflow:
		return CategoryQ64
	case KindInvalidPlanes, KindDimensionsTooLarge, KindMatrixGenerationFailed, KindRNGFailure:
		return CategorySimHash
	case KindInvalidK, KindKTooLarge, KindEmbeddingTooLarge, KindParallelProcessingFailed:
		return CategoryTopK
	case KindUnsuitableDimensions, KindBitOverflow:
		return CategoryZOrder
	case KindEmptyInput, KindInputTooLarge, KindInvalidInputValues, KindIncompatibleParameters:
		return CategoryValidation
	case KindMemory:
		return CategoryMemory
	case KindComputation:
		return CategoryComputation
	default:
		return 0
	}
}

// Error is the single error type produced by every codec.
//
// Only the fields relevant to Kind are populated. The original underlying
// error (if any) can be accessed via errors.Unwrap.
type Error struct {
	Kind Kind

	// Q64
	Character        rune
	Position         int
	ExpectedAlphabet int
	ActualAlphabet   int

	// Sizes and limits
	Length    int
	Required  int
	Available int
	Max       int

	// SimHash / Top-k parameters
	Planes     int
	Dimensions int
	K          int

	// Z-order
	Value   uint64
	MaxBits int

	// Free-form context
	Operation string
	Details   string

	cause error
}

// Category returns the category of the error kind.
func (e *Error) Category() Category { return e.Kind.Category() }

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s", e.Category(), e.detail())
}

func (e *Error) detail() string {
	switch e.Kind {
	case KindOddLength:
		return fmt.Sprintf("input has odd length %d, Q64 requires even length", e.Length)
	case KindInvalidCharacter:
		return fmt.Sprintf("invalid character %q at position %d", e.Character, e.Position)
	case KindWrongPosition:
		return fmt.Sprintf("character %q at position %d belongs to alphabet %d, expected alphabet %d",
			e.Character, e.Position, e.ActualAlphabet, e.ExpectedAlphabet)
	case KindBufferOverflow:
		return fmt.Sprintf("buffer overflow: need %d bytes, only %d available", e.Required, e.Available)
	case KindInvalidPlanes:
		return fmt.Sprintf("invalid number of planes: %d, must be in [1, %d]", e.Planes, e.Max)
	case KindDimensionsTooLarge:
		return fmt.Sprintf("dimensions %d exceed maximum supported %d", e.Dimensions, e.Max)
	case KindMatrixGenerationFailed:
		return fmt.Sprintf("failed to generate matrix for %d planes x %d dimensions", e.Planes, e.Dimensions)
	case KindRNGFailure:
		return fmt.Sprintf("random number generation failed: %s", e.Details)
	case KindInvalidK:
		return fmt.Sprintf("invalid k value: %d", e.K)
	case KindKTooLarge:
		return fmt.Sprintf("k value %d exceeds maximum supported %d", e.K, e.Max)
	case KindEmbeddingTooLarge:
		return fmt.Sprintf("embedding size %d exceeds maximum supported %d", e.Length, e.Max)
	case KindParallelProcessingFailed:
		return fmt.Sprintf("parallel processing failed: %s", e.Details)
	case KindUnsuitableDimensions:
		return fmt.Sprintf("unsuitable dimensions %d: %s", e.Dimensions, e.Details)
	case KindBitOverflow:
		return fmt.Sprintf("bit overflow: value %d exceeds %d bits", e.Value, e.MaxBits)
	case KindEmptyInput:
		return fmt.Sprintf("empty input not allowed for operation: %s", e.Operation)
	case KindInputTooLarge:
		return fmt.Sprintf("input size %d exceeds maximum %d for operation: %s", e.Length, e.Max, e.Operation)
	case KindInvalidInputValues:
		return fmt.Sprintf("invalid input values: %s", e.Details)
	case KindIncompatibleParameters:
		return fmt.Sprintf("incompatible parameters: %s", e.Details)
	case KindMemory, KindComputation:
		if e.cause != nil {
			return fmt.Sprintf("%s: %v", e.Details, e.cause)
		}
		return e.Details
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is the category or kind sentinel matching e.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case categorySentinel:
		return Category(t) == e.Category()
	case kindSentinel:
		return Kind(t) == e.Kind
	default:
		return false
	}
}

type categorySentinel Category

func (c categorySentinel) Error() string { return Category(c).String() + " error" }

type kindSentinel Kind

func (k kindSentinel) Error() string { return Kind(k).String() }

// Category sentinels for use with errors.Is.
var (
	ErrQ64         error = categorySentinel(CategoryQ64)
	ErrSimHash     error = categorySentinel(CategorySimHash)
	ErrTopK        error = categorySentinel(CategoryTopK)
	ErrZOrder      error = categorySentinel(CategoryZOrder)
	ErrValidation  error = categorySentinel(CategoryValidation)
	ErrMemory      error = categorySentinel(CategoryMemory)
	ErrComputation error = categorySentinel(CategoryComputation)
)

// Kind sentinels for use with errors.Is.
var (
	ErrOddLength                error = kindSentinel(KindOddLength)
	ErrInvalidCharacter         error = kindSentinel(KindInvalidCharacter)
	ErrWrongPosition            error = kindSentinel(KindWrongPosition)
	ErrBufferOverflow           error = kindSentinel(KindBufferOverflow)
	ErrInvalidPlanes            error = kindSentinel(KindInvalidPlanes)
	ErrDimensionsTooLarge       error = kindSentinel(KindDimensionsTooLarge)
	ErrMatrixGenerationFailed   error = kindSentinel(KindMatrixGenerationFailed)
	ErrRNGFailure               error = kindSentinel(KindRNGFailure)
	ErrInvalidK                 error = kindSentinel(KindInvalidK)
	ErrKTooLarge                error = kindSentinel(KindKTooLarge)
	ErrEmbeddingTooLarge        error = kindSentinel(KindEmbeddingTooLarge)
	ErrParallelProcessingFailed error = kindSentinel(KindParallelProcessingFailed)
	ErrUnsuitableDimensions     error = kindSentinel(KindUnsuitableDimensions)
	ErrBitOverflow              error = kindSentinel(KindBitOverflow)
	ErrEmptyInput               error = kindSentinel(KindEmptyInput)
	ErrInputTooLarge            error = kindSentinel(KindInputTooLarge)
	ErrInvalidInputValues       error = kindSentinel(KindInvalidInputValues)
	ErrIncompatibleParameters   error = kindSentinel(KindIncompatibleParameters)
)

// KindOf extracts the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
