package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Training specific errors
	CodeCourseNotFound     ErrorCode = "COURSE_NOT_FOUND"
	CodeEnrollmentNotFound ErrorCode = "ENROLLMENT_NOT_FOUND"
	CodeAlreadyMastered    ErrorCode = "ALREADY_MASTERED"
	CodeStaleSubmission    ErrorCode = "STALE_SUBMISSION"
	CodeInvalidQuiz        ErrorCode = "INVALID_QUIZ"
	CodeInvalidSubmission  ErrorCode = "INVALID_SUBMISSION"
	CodeIndexOutOfRange    ErrorCode = "INDEX_OUT_OF_RANGE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports a match on the error code so errors.Is works against the sentinel-like
// values built with NewError.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithContext attaches a key/value pair that is surfaced as response details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrCourseNotFound     = NewError(CodeCourseNotFound, "course not found", nil)
	ErrEnrollmentNotFound = NewError(CodeEnrollmentNotFound, "enrollment not found", nil)
	ErrAlreadyMastered    = NewError(CodeAlreadyMastered, "course already mastered", nil)
	ErrStaleSubmission    = NewError(CodeStaleSubmission, "stale submission", nil)
	ErrInvalidQuiz        = NewError(CodeInvalidQuiz, "invalid quiz", nil)
	ErrInvalidSubmission  = NewError(CodeInvalidSubmission, "invalid submission", nil)
	ErrIndexOutOfRange    = NewError(CodeIndexOutOfRange, "index out of range", nil)
)

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewCourseNotFoundError(courseID string) *DomainError {
	return NewError(CodeCourseNotFound, fmt.Sprintf("Course not found with ID: %s", courseID), nil).
		WithContext("course_id", courseID)
}

func NewEnrollmentNotFoundError(employeeID, courseID string) *DomainError {
	return NewError(CodeEnrollmentNotFound,
		fmt.Sprintf("Employee %s is not enrolled in course %s", employeeID, courseID), nil).
		WithContext("employee_id", employeeID).
		WithContext("course_id", courseID)
}

func NewAlreadyMasteredError(employeeID, courseID string) *DomainError {
	return NewError(CodeAlreadyMastered,
		fmt.Sprintf("Employee %s has already mastered course %s", employeeID, courseID), nil).
		WithContext("employee_id", employeeID).
		WithContext("course_id", courseID)
}

// NewStaleSubmissionError reports that the submitted level no longer matches the stored one.
func NewStaleSubmissionError(submittedLevel, storedLevel int) *DomainError {
	return NewError(CodeStaleSubmission,
		fmt.Sprintf("Submission targets level %d but enrollment is at level %d", submittedLevel, storedLevel), nil).
		WithContext("submitted_level", submittedLevel).
		WithContext("current_level", storedLevel)
}

func NewInvalidQuizError(message string) *DomainError {
	return NewError(CodeInvalidQuiz, message, nil)
}

func NewInvalidSubmissionError(message string) *DomainError {
	return NewError(CodeInvalidSubmission, message, nil)
}

func NewIndexOutOfRangeError(index int) *DomainError {
	return NewError(CodeIndexOutOfRange,
		fmt.Sprintf("Question index %d is outside 0-%d", index, QuestionsPerQuiz-1), nil).
		WithContext("index", index)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Code    ErrorCode   `json:"code"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects field errors for a single request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	if len(v) == 1 {
		return v[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", v[0].Error(), len(v)-1)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Code:    CodeMissingField,
		Field:   field,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{
		Code:    CodeInvalidFormat,
		Field:   field,
		Message: fmt.Sprintf("%s has an invalid format", field),
		Value:   value,
	}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Code:    CodeOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("%s must be between %d and %d", field, min, max),
		Value:   value,
	}
}
