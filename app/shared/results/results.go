// Package results carries the generic operation result used by service
// methods to distinguish handled business failures from transport errors.
package results

// OperationResult holds either a success payload or a failure payload.
// A populated Failure with a nil error means the operation ran to completion
// but the domain rejected it; callers publish the failure payload instead of
// retrying.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// IsSuccess reports whether the result carries a success payload.
func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

// IsFailure reports whether the result carries a failure payload.
func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }

// Success wraps a payload in a successful result.
func Success[S any, F any](payload S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &payload}
}

// Failure wraps a payload in a failed result.
func Failure[S any, F any](payload F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &payload}
}
