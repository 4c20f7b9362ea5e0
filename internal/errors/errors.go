package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeQuota      ErrorType = "quota"
	ErrorTypeTimeout    ErrorType = "timeout"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches on type and code, so wrapped sentinels compare equal
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	return newAt(2, errorType, code, message)
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return wrapAt(2, err, errorType, code, message)
}

// newAt records the caller skip frames above itself as the error source
func newAt(skip int, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  caller(skip + 1),
		Context: make(map[string]interface{}),
	}
}

func wrapAt(skip int, err error, errorType ErrorType, code, message string) *AppError {
	e := newAt(skip+1, errorType, code, message)
	e.Internal = err
	return e
}

func caller(skip int) string {
	_, file, line, _ := runtime.Caller(skip)
	return fmt.Sprintf("%s:%d", file, line)
}

// TypeOf returns the AppError type found in the chain, or internal
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// Handler logs errors according to their type
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle processes an error according to its type
func (h *Handler) Handle(ctx context.Context, err error) {
	h.HandleWith(ctx, h.logger, err)
}

// HandleWith is Handle with a request-scoped logger
func (h *Handler) HandleWith(ctx context.Context, logger *slog.Logger, err error) {
	if err == nil {
		return
	}
	if logger == nil {
		logger = h.logger
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		handleAppError(ctx, logger, appErr)
	} else {
		logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
	}
}

func handleAppError(ctx context.Context, logger *slog.Logger, err *AppError) {
	switch err.Type {
	case ErrorTypeValidation:
		logger.WarnContext(ctx, "Validation error", err.LogFields()...)
	case ErrorTypePermission:
		logger.WarnContext(ctx, "Permission error", err.LogFields()...)
	case ErrorTypeRateLimit, ErrorTypeQuota:
		logger.WarnContext(ctx, "Limit error", err.LogFields()...)
	case ErrorTypeDatabase, ErrorTypeExternal, ErrorTypeInternal, ErrorTypeTimeout:
		logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}

// Predefined errors
var (
	ErrUserNotFound       = New(ErrorTypeDatabase, "USER_NOT_FOUND", "User not found")
	ErrExternalAPI        = New(ErrorTypeExternal, "EXTERNAL_API", "External API error")
	ErrDailyLimitReached  = New(ErrorTypeQuota, "DAILY_LIMIT", "Daily translation limit reached")
	ErrEmptyTranscription = New(ErrorTypeExternal, "EMPTY_TRANSCRIPTION", "Voice message could not be recognized")
)

func NewValidationError(message string) *AppError {
	return newAt(2, ErrorTypeValidation, "VALIDATION", message)
}

func NewDatabaseError(err error) *AppError {
	return wrapAt(2, err, ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
}

func NewExternalAPIError(err error, api string) *AppError {
	return wrapAt(2, err, ErrorTypeExternal, "EXTERNAL_API", fmt.Sprintf("%s API error", api)).
		WithContext("api", api)
}

func NewTimeoutError(operation string) *AppError {
	return newAt(2, ErrorTypeTimeout, "TIMEOUT", fmt.Sprintf("%s operation timed out", operation)).
		WithContext("operation", operation)
}

func NewInternalError(err error) *AppError {
	return wrapAt(2, err, ErrorTypeInternal, "INTERNAL", "Internal server error")
}
