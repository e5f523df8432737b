package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError is implemented by errors that carry their own HTTP status
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors, match with errors.Is
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
	ErrStorage    = errors.New("storage failure")
)

// FieldError describes one invalid field of a payload
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationError reports missing or invalid payload fields.
// The operation it guards has not been applied.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message, Value: value}}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) StatusCode() int      { return http.StatusBadRequest }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError indicates an id or slug that resolves to nothing
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateKeyError reports a unique constraint violation
type DuplicateKeyError struct {
	Resource string
	Field    string
	Value    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

func (e *DuplicateKeyError) StatusCode() int      { return http.StatusConflict }
func (e *DuplicateKeyError) Is(target error) bool { return target == ErrConflict }

// StorageFault wraps a connectivity or engine failure of the content store
type StorageFault struct {
	Op  string
	Err error
}

func (e *StorageFault) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage.Error(), e.Op, e.Err)
}

func (e *StorageFault) Unwrap() error        { return e.Err }
func (e *StorageFault) StatusCode() int      { return http.StatusInternalServerError }
func (e *StorageFault) Is(target error) bool { return target == ErrStorage }

// NewStorageFault wraps err unless it already is a domain error
func NewStorageFault(op string, err error) error {
	if err == nil {
		return nil
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return err
	}
	return &StorageFault{Op: op, Err: err}
}

// PayloadTooLargeError reports an upload above the configured limit
type PayloadTooLargeError struct {
	Size  int64
	Limit string
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("file exceeds the %s upload limit", e.Limit)
}

func (e *PayloadTooLargeError) StatusCode() int      { return http.StatusRequestEntityTooLarge }
func (e *PayloadTooLargeError) Is(target error) bool { return target == ErrValidation }
