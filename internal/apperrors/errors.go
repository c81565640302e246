package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidMonth is returned when a month index falls outside 0..11.
var ErrInvalidMonth = fmt.Errorf("%w: month index must be between 0 and 11", ErrValidation)

// ErrPlayerNotFound is returned when the referenced player does not exist.
var ErrPlayerNotFound = fmt.Errorf("player %w", ErrNotFound)

// ErrLedgerSyncFailed marks a dues mutation that was committed but whose
// ledger reconciliation did not complete.
var ErrLedgerSyncFailed = errors.New("ledger synchronization failed")

// LedgerSyncError carries the context of a failed reconciliation so callers
// can retry it for the same player and month.
type LedgerSyncError struct {
	PlayerID   string
	MonthIndex int
	Operation  string
	Err        error
}

func (e *LedgerSyncError) Error() string {
	return fmt.Sprintf("ledger sync failed (player=%s month=%d op=%s): %v", e.PlayerID, e.MonthIndex, e.Operation, e.Err)
}

// Is lets errors.Is match ErrLedgerSyncFailed.
func (e *LedgerSyncError) Is(target error) bool {
	return target == ErrLedgerSyncFailed
}

func (e *LedgerSyncError) Unwrap() error {
	return e.Err
}

// AppError wraps infrastructure failures with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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
