// Package errors provides structured error types for the ble-host library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes context for diagnostics: the service name
// involved, concrete type names for mismatches, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindTypeMismatch).
//		Service("bluetooth").
//		HaveType("*fakeClock").
//		WantType("blehost.Manager").
//		Detail("environment returned the wrong handle type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ServiceUnavailable("bluetooth", cause)
//	err := errors.AdapterUnavailable(cause)
//
// Callers classify failures with the predicates rather than by unwrapping:
//
//	if errors.IsServiceUnavailable(err) { ... }
//	if errors.IsAdapterUnavailable(err) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
