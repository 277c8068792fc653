package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientBalance indicates that a debit exceeds the available balance of an allocation.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrDatabase indicates a storage failure. The operation was rolled back.
var ErrDatabase = errors.New("database error")

// AppError carries a status-like code and a message alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewDatabaseError wraps a storage failure.
func NewDatabaseError(message string, err error) *AppError {
	return NewAppError(500, message, err)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports 5xx application errors as ErrDatabase.
func (e *AppError) Is(target error) bool {
	return target == ErrDatabase && e.Code >= 500
}

// InsufficientBalanceError reports the requested and available amounts of a rejected debit.
type InsufficientBalanceError struct {
	AllocationID string
	Requested    decimal.Decimal
	Available    decimal.Decimal
}

// NewInsufficientBalanceError creates an InsufficientBalanceError.
func NewInsufficientBalanceError(allocationID string, requested, available decimal.Decimal) *InsufficientBalanceError {
	return &InsufficientBalanceError{AllocationID: allocationID, Requested: requested, Available: available}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on allocation %s: requested %s, available %s",
		e.AllocationID, e.Requested.StringFixed(2), e.Available.StringFixed(2))
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
