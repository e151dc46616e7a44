package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes surfaced in the errorType field of failure responses.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountInactive    = "ACCOUNT_INACTIVE"
	CodeIPNotAssigned      = "IP_NOT_ASSIGNED"
	CodeIPRestricted       = "IP_RESTRICTED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

// NewInvalidCredentials covers both unknown-username and bad-password so
// callers cannot distinguish the two.
func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "Invalid credentials", http.StatusUnauthorized, nil)
}

func NewAccountInactive() error {
	return NewDomainError(CodeAccountInactive, "Account is not active", http.StatusForbidden, nil)
}

func NewIPNotAssigned(role string) error {
	return NewDomainError(CodeIPNotAssigned,
		fmt.Sprintf("%s accounts require an assigned IP address. Please contact your administrator.", role),
		http.StatusForbidden, nil)
}

// NewIPRestricted includes both normalized addresses so the operator can
// diagnose mismatches from the response alone.
func NewIPRestricted(clientIP, assignedIP string) error {
	return NewDomainError(CodeIPRestricted, "Access denied: IP address not authorized for this account",
		http.StatusForbidden, map[string]any{
			"clientIP":   clientIP,
			"assignedIP": assignedIP,
		})
}

func NewInvalidStatus(statusID int64) error {
	return NewDomainError(CodeInvalidStatus, "status does not reference a known workflow stage",
		http.StatusBadRequest, map[string]any{"status": statusID})
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource").(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
