package errs

// OddLength reports a Q64 string whose length is not even.
func OddLength(length int) *Error {
	return &Error{Kind: KindOddLength, Length: length}
}

// InvalidCharacter reports a byte outside the 64-symbol Q64 set.
func InvalidCharacter(ch rune, pos int) *Error {
	return &Error{Kind: KindInvalidCharacter, Character: ch, Position: pos}
}

// WrongPosition reports a valid symbol found at a position reserved for another alphabet.
func WrongPosition(ch rune, pos, actual, expected int) *Error {
	return &Error{
		Kind:             KindWrongPosition,
		Character:        ch,
		Position:         pos,
		ActualAlphabet:   actual,
		ExpectedAlphabet: expected,
	}
}

// BufferOverflow reports an output buffer that cannot hold the result.
func BufferOverflow(required, available int) *Error {
	return &Error{Kind: KindBufferOverflow, Required: required, Available: available}
}

// InvalidPlanes reports a SimHash plane count outside [1, max].
func InvalidPlanes(planes, max int) *Error {
	return &Error{Kind: KindInvalidPlanes, Planes: planes, Max: max}
}

// DimensionsTooLarge reports an embedding too wide for matrix generation.
func DimensionsTooLarge(dims, max int) *Error {
	return &Error{Kind: KindDimensionsTooLarge, Dimensions: dims, Max: max}
}

// MatrixGenerationFailed reports a projection matrix that could not be built.
func MatrixGenerationFailed(planes, dims int, cause error) *Error {
	return &Error{Kind: KindMatrixGenerationFailed, Planes: planes, Dimensions: dims, cause: cause}
}

// RNGFailure reports a random source failure.
func RNGFailure(details string) *Error {
	return &Error{Kind: KindRNGFailure, Details: details}
}

// InvalidK reports an unusable k.
func InvalidK(k int) *Error {
	return &Error{Kind: KindInvalidK, K: k}
}

// KTooLarge reports k above the supported maximum.
func KTooLarge(k, max int) *Error {
	return &Error{Kind: KindKTooLarge, K: k, Max: max}
}

// EmbeddingTooLarge reports an embedding above the top-k size limit.
func EmbeddingTooLarge(size, max int) *Error {
	return &Error{Kind: KindEmbeddingTooLarge, Length: size, Max: max}
}

// ParallelProcessingFailed wraps a failure raised by a worker.
func ParallelProcessingFailed(cause error) *Error {
	details := "worker failed"
	if cause != nil {
		details = cause.Error()
	}
	return &Error{Kind: KindParallelProcessingFailed, Details: details, cause: cause}
}

// UnsuitableDimensions reports a Z-order layout that cannot be produced.
func UnsuitableDimensions(dims int, reason string) *Error {
	return &Error{Kind: KindUnsuitableDimensions, Dimensions: dims, Details: reason}
}

// BitOverflow reports an interleaved value that does not fit in maxBits.
func BitOverflow(value uint64, maxBits int) *Error {
	return &Error{Kind: KindBitOverflow, Value: value, MaxBits: maxBits}
}

// EmptyInput reports an empty input where one is required.
func EmptyInput(op string) *Error {
	return &Error{Kind: KindEmptyInput, Operation: op}
}

// InputTooLarge reports an input above the documented maximum.
func InputTooLarge(size, max int, op string) *Error {
	return &Error{Kind: KindInputTooLarge, Length: size, Max: max, Operation: op}
}

// InvalidInputValues reports malformed input content.
func InvalidInputValues(details string) *Error {
	return &Error{Kind: KindInvalidInputValues, Details: details}
}

// IncompatibleParameters reports parameters that cannot be used together.
func IncompatibleParameters(details string) *Error {
	return &Error{Kind: KindIncompatibleParameters, Details: details}
}

// Memory reports an allocation or capacity failure.
func Memory(details string, cause error) *Error {
	return &Error{Kind: KindMemory, Details: details, cause: cause}
}

// Computation reports an internal failure.
func Computation(details string, cause error) *Error {
	return &Error{Kind: KindComputation, Details: details, cause: cause}
}
