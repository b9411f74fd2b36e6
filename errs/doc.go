// Package errs defines the error taxonomy shared by all uubed codecs.
//
// Every failure is an *Error carrying a Kind; kinds are grouped into
// categories (Q64, SimHash, Top-k, Z-order, Validation, Memory, Computation).
// Both levels can be matched with errors.Is:
//
//	errors.Is(err, errs.ErrQ64)           // any Q64 failure
//	errors.Is(err, errs.ErrWrongPosition) // a specific kind
//
// CodeOf converts an error into a stable numeric Code for callers outside Go.
package errs
