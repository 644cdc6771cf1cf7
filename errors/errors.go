package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in handle provisioning the error occurred
type Phase string

const (
	PhaseResolve  Phase = "resolve"  // service resolution from the environment
	PhaseDerive   Phase = "derive"   // adapter derivation from the manager
	PhaseRegister Phase = "register" // service builder registration
	PhasePlatform Phase = "platform" // host radio stack operations
)

// Kind categorizes the error
type Kind string

const (
	KindServiceUnavailable Kind = "service_unavailable"
	KindAdapterUnavailable Kind = "adapter_unavailable"
	KindTypeMismatch       Kind = "type_mismatch"
	KindDuplicate          Kind = "duplicate"
	KindSealed             Kind = "sealed"
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindPlatformFailure    Kind = "platform_failure"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Service  string
	HaveType string
	WantType string
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Service != "" {
		b.WriteString(" at ")
		b.WriteString(e.Service)
	}

	if e.HaveType != "" || e.WantType != "" {
		b.WriteString(": ")
		if e.HaveType != "" && e.WantType != "" {
			b.WriteString("have ")
			b.WriteString(e.HaveType)
			b.WriteString(", want ")
			b.WriteString(e.WantType)
		} else if e.HaveType != "" {
			b.WriteString("have ")
			b.WriteString(e.HaveType)
		} else {
			b.WriteString("want ")
			b.WriteString(e.WantType)
		}
	}

	if e.Detail != "" {
		if e.HaveType != "" || e.WantType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Service sets the service name
func (b *Builder) Service(name string) *Builder {
	b.err.Service = name
	return b
}

// HaveType sets the concrete type the environment produced
func (b *Builder) HaveType(t string) *Builder {
	b.err.HaveType = t
	return b
}

// WantType sets the type the caller required
func (b *Builder) WantType(t string) *Builder {
	b.err.WantType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ServiceUnavailable creates an error for a service the host cannot provide
func ServiceUnavailable(name string, cause error) *Error {
	return &Error{
		Phase:   PhaseResolve,
		Kind:    KindServiceUnavailable,
		Service: name,
		Detail:  fmt.Sprintf("host cannot provide service %q", name),
		Cause:   cause,
	}
}

// AdapterUnavailable creates an error for a manager with no usable adapter
func AdapterUnavailable(cause error) *Error {
	return &Error{
		Phase:  PhaseDerive,
		Kind:   KindAdapterUnavailable,
		Detail: "manager has no usable adapter",
		Cause:  cause,
	}
}

// TypeMismatch creates an error for a resolved handle of the wrong type
func TypeMismatch(service, haveType, wantType string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindTypeMismatch,
		Service:  service,
		HaveType: haveType,
		WantType: wantType,
	}
}

// Duplicate creates an error for registering a name twice
func Duplicate(service string) *Error {
	return &Error{
		Phase:   PhaseRegister,
		Kind:    KindDuplicate,
		Service: service,
		Detail:  fmt.Sprintf("service %q already registered", service),
	}
}

// Sealed creates an error for registering into a sealed table
func Sealed(service string) *Error {
	return &Error{
		Phase:   PhaseRegister,
		Kind:    KindSealed,
		Service: service,
		Detail:  "registry is sealed",
	}
}

// NotFound creates an error for a name with no registered builder
func NotFound(service string) *Error {
	return &Error{
		Phase:   PhaseResolve,
		Kind:    KindNotFound,
		Service: service,
		Detail:  fmt.Sprintf("no builder registered for %q", service),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Platform creates an error for a failed host radio stack operation
func Platform(op string, cause error) *Error {
	return &Error{
		Phase:  PhasePlatform,
		Kind:   KindPlatformFailure,
		Detail: op,
		Cause:  cause,
	}
}

// IsKind reports whether any error in err's chain is an *Error with kind k
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// IsServiceUnavailable reports whether err indicates the host could not
// provide the requested service
func IsServiceUnavailable(err error) bool {
	return IsKind(err, KindServiceUnavailable)
}

// IsAdapterUnavailable reports whether err indicates the manager exists but
// exposes no usable adapter
func IsAdapterUnavailable(err error) bool {
	return IsKind(err, KindAdapterUnavailable)
}
