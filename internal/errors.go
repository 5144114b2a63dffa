package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeUnavailable  ErrorType = "UNAVAILABLE"
	ErrorTypeRateLimited  ErrorType = "RATE_LIMITED"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidEnum      ErrorCode = "INVALID_ENUM"
	ErrCodeInvalidID        ErrorCode = "INVALID_ID"
	ErrCodePriceMismatch    ErrorCode = "PRICE_MISMATCH"
	ErrCodeStayTooLong      ErrorCode = "STAY_TOO_LONG"

	ErrCodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"

	ErrCodeNoHotel          ErrorCode = "NO_HOTEL"
	ErrCodeNotApproved      ErrorCode = "ACCOUNT_NOT_APPROVED"
	ErrCodeInsufficientRole ErrorCode = "INSUFFICIENT_ROLE"
	ErrCodeSelfApproval     ErrorCode = "SELF_APPROVAL"
	ErrCodeOwnerApproval    ErrorCode = "OWNER_APPROVAL"

	ErrCodeHotelNotFound   ErrorCode = "HOTEL_NOT_FOUND"
	ErrCodeInvalidInvite   ErrorCode = "INVALID_HOTEL_INVITE"
	ErrCodeRoomNotFound    ErrorCode = "ROOM_NOT_FOUND"
	ErrCodeBookingNotFound ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodeStaffNotFound   ErrorCode = "STAFF_NOT_FOUND"

	ErrCodeEmailExists    ErrorCode = "EMAIL_EXISTS"
	ErrCodeDuplicateRooms ErrorCode = "DUPLICATE_ROOM_NUMBERS"

	ErrCodeRateLimited  ErrorCode = "RATE_LIMITED"
	ErrCodeStoreTimeout ErrorCode = "STORE_TIMEOUT"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			messages := make([]string, len(validationErrors.Errors))
			for i, err := range validationErrors.Errors {
				messages[i] = err.Message
			}
			return strings.Join(messages, "; ")
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on Type and Code so package-level sentinels work with errors.Is
// even after WithCause/WithDetails produced a copy.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithCause returns a copy carrying cause. Sentinels are shared, so they are never mutated.
func (e *AppError) WithCause(cause error) *AppError {
	cp := *e
	cp.Cause = cause
	return &cp
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewUnavailableError marks a transient failure the caller may retry.
func NewUnavailableError(message string, code ErrorCode, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

func NewRateLimitedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimited,
		Code:       ErrCodeRateLimited,
		Message:    message,
		StatusCode: http.StatusTooManyRequests,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

var (
	ErrUnauthenticated    = NewUnauthorizedError("Unauthorized", ErrCodeUnauthenticated)
	ErrInvalidCredentials = NewUnauthorizedError("Invalid credentials", ErrCodeInvalidCredentials)

	ErrNoHotel          = NewForbiddenError("No hotel associated", ErrCodeNoHotel)
	ErrNotApproved      = NewForbiddenError("Account not approved yet", ErrCodeNotApproved)
	ErrInsufficientRole = NewForbiddenError("Forbidden", ErrCodeInsufficientRole)
	ErrSelfApproval     = NewForbiddenError("You cannot change your own approval", ErrCodeSelfApproval)
	ErrOwnerApproval    = NewForbiddenError("The hotel owner's approval cannot be changed", ErrCodeOwnerApproval)

	ErrHotelNotFound   = NewNotFoundError("Hotel not found", ErrCodeHotelNotFound)
	ErrInvalidInvite   = NewValidationError("Invalid hotel invite link", ErrCodeInvalidInvite)
	ErrRoomNotFound    = NewNotFoundError("Room not found or not part of your hotel", ErrCodeRoomNotFound)
	ErrBookingNotFound = NewNotFoundError("Booking not found", ErrCodeBookingNotFound)
	ErrStaffNotFound   = NewNotFoundError("Staff not found", ErrCodeStaffNotFound)

	ErrEmailExists = NewConflictError("An account with this email already exists", ErrCodeEmailExists)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsConflict reports whether err is a uniqueness conflict already shaped for the caller.
func IsConflict(err error) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Type == ErrorTypeConflict
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
