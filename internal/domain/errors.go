package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialMissing = errors.New("credential missing")
	ErrConfigMissing     = errors.New("configuration missing")
	ErrAuthRejected      = errors.New("authentication rejected")
	ErrAuthUnavailable   = errors.New("authentication unavailable")
	ErrTimeout           = errors.New("request timed out")
	ErrQuotaExceeded     = errors.New("usage quota exceeded, please upgrade your plan")
	ErrUnsupportedModel  = errors.New("unsupported model")
	ErrProvider          = errors.New("provider request failed")
	ErrRecordNotFound    = errors.New("usage record not found")
	ErrSecretNotFound    = errors.New("secret not found")
	ErrInterpreter       = errors.New("interpreter failed")
)

// ExecutionError is the user-visible form of any failure inside a cell.
// Value keeps the original error text.
type ExecutionError struct {
	Name  string
	Value string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Value)
}

// ClassifyError maps an error chain onto an ExecutionError.
func ClassifyError(err error) *ExecutionError {
	if err == nil {
		return nil
	}

	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr
	}

	return &ExecutionError{Name: errorName(err), Value: err.Error()}
}

func errorName(err error) string {
	switch {
	case errors.Is(err, ErrQuotaExceeded):
		return "QuotaExceeded"
	case errors.Is(err, ErrUnsupportedModel):
		return "UnsupportedModel"
	case errors.Is(err, ErrCredentialMissing), errors.Is(err, ErrConfigMissing):
		return "ConfigurationError"
	case errors.Is(err, ErrAuthRejected), errors.Is(err, ErrAuthUnavailable):
		return "AuthenticationError"
	case errors.Is(err, ErrInterpreter):
		return "InterpreterError"
	case errors.Is(err, ErrProvider), errors.Is(err, ErrTimeout):
		return "ProviderError"
	default:
		return "KernelError"
	}
}
