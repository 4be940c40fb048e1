package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrPaymentAlreadyExists     = errors.New("payment already exists")
	ErrPaymentNotRecurring      = errors.New("payment is not recurring")
	ErrInvalidRecurrencePattern = errors.New("invalid recurrence pattern")
	ErrInvalidCompletionDate    = errors.New("invalid completion date")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodePaymentNotFound          = "PAYMENT_NOT_FOUND"
	ErrCodePaymentAlreadyExists     = "PAYMENT_ALREADY_EXISTS"
	ErrCodePaymentNotRecurring      = "PAYMENT_NOT_RECURRING"
	ErrCodeInvalidRecurrencePattern = "INVALID_RECURRENCE_PATTERN"
	ErrCodeInvalidCompletionDate    = "INVALID_COMPLETION_DATE"
	ErrCodeDatabaseError            = "DATABASE_ERROR"
	ErrCodeCacheError               = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapPaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %s not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapPaymentAlreadyExists(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentAlreadyExists,
		fmt.Sprintf("Payment with ID %s already exists", paymentID),
		ErrPaymentAlreadyExists,
	)
}

func WrapPaymentNotRecurring(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotRecurring,
		fmt.Sprintf("Payment with ID %s is not recurring", paymentID),
		ErrPaymentNotRecurring,
	)
}

func WrapInvalidRecurrencePattern(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRecurrencePattern,
		"Recurrence pattern is invalid for its frequency",
		err,
	)
}

func WrapInvalidCompletionDate(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCompletionDate,
		message,
		ErrInvalidCompletionDate,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
