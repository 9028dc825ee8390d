package apperr

// TransportError wraps a failed network or backend call with the originating
// operation name. It is always logged at the call site and rethrown, never
// swallowed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func NewTransport(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// ValidationError marks caller input that cannot be processed.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}
