package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/mnemo-api/internal/store"
)

// Sentinel errors returned by the services. Callers check them with
// errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrSessionNotFound indicates the session does not exist or belongs to
	// another user. It matches store.ErrNotFound as well.
	ErrSessionNotFound = store.ErrSessionNotFound

	// ErrSessionAlreadyCompleted indicates an update was attempted on a
	// session that has already been finalized.
	ErrSessionAlreadyCompleted = errors.New("exercise session already completed")
)

// ServiceError describes a failed service operation.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("session service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
