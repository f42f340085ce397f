package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts the API error bodies. It is not an `error`:
// it only exists to be serialized back to the caller.
type ErrorResponse interface {
	Code() int
}

type APIError struct {
	Detail string `json:"detail"`
	Status int    `json:"-"`
}

func (a *APIError) Code() int { return a.Status }

type StructuredError struct {
	Detail string              `json:"detail"`
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int { return s.Status }

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

func (s *StructuredError) Empty() bool { return len(s.Errors) == 0 }

var (
	CompanyNotFound     = NewSimple(http.StatusNotFound, "企業が見つかりません")
	InvalidID           = NewSimple(http.StatusBadRequest, "invalid id: must be a positive integer")
	MissingKeyword      = NewSimple(http.StatusBadRequest, "keyword is required")
	InternalServerError = NewSimple(http.StatusInternalServerError, "internal server error")
	MethodNotAllowed    = NewSimple(http.StatusMethodNotAllowed, "method not allowed")
	NotFound            = NewSimple(http.StatusNotFound, "not found")
)

// FromValidationError maps validator.ValidationErrors to field -> problems.
// Returns nil when err is not a validation error.
func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := NewStructured(http.StatusBadRequest)
	for _, fe := range ve {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out.Add(field, "This field is required")
		case "min":
			out.Add(field, "Value is too small, min: "+fe.Param())
		case "max":
			out.Add(field, "Value is too large, max: "+fe.Param())
		case "datetime":
			out.Add(field, "Value must be a date in format "+fe.Param())
		case "interview_time":
			out.Add(field, "Value must be a datetime (RFC3339 or YYYY-MM-DDTHH:MM)")
		case "company_status":
			out.Add(field, "Value must be one of エントリー済み, 書類選考中, 面接中, 内定, 不合格")
		default:
			out.Add(field, "Invalid value provided")
		}
	}
	return out
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Detail: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Detail: "validation failed",
		Errors: make(map[string][]string),
		Status: code,
	}
}

func BadRequest(msg string, args ...any) *APIError {
	return NewSimple(http.StatusBadRequest, msg, args...)
}
