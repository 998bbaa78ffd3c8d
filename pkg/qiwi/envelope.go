package qiwi

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}

		return tag
	})

	return v
}

// Envelope is the decoded form of any API response: either the expected
// payload or an error code reported by the server.
type Envelope[T any] struct {
	value     T
	errorCode string
	failed    bool
}

// Success wraps a decoded payload.
func Success[T any](value T) Envelope[T] {
	return Envelope[T]{value: value}
}

// Failure wraps a server-reported error code.
func Failure[T any](errorCode string) Envelope[T] {
	return Envelope[T]{errorCode: errorCode, failed: true}
}

// IsFailure reports whether the server returned an error code.
func (e Envelope[T]) IsFailure() bool {
	return e.failed
}

// Value returns the payload; it is the zero value for a failure.
func (e Envelope[T]) Value() T {
	return e.value
}

// ErrorCode returns the server error code; it is empty for a success.
func (e Envelope[T]) ErrorCode() string {
	return e.errorCode
}

// Result turns the envelope into a Go result. This is where a successful
// HTTP call becomes a failed domain operation.
func (e Envelope[T]) Result() (T, error) {
	if e.failed {
		var zero T

		return zero, &QiwiError{Description: e.errorCode}
	}

	return e.value, nil
}

// errorShape is the only error envelope the API produces.
type errorShape struct {
	ErrorCode *string `json:"errorCode"`
}

// DecodeEnvelope interprets raw response text.
//
// The success shape is tried first and the error shape second. The order
// matters: a payload that also carries an errorCode field (history entries
// do) must not be classified as a failure. A success decode is strict: the
// JSON must unmarshal into T and satisfy T's `validate` tags, so an error
// envelope cannot pass as a payload with every field missing.
func DecodeEnvelope[T any](raw string) (Envelope[T], error) {
	value, successErr := decodeSuccess[T](raw)
	if successErr == nil {
		return Success(value), nil
	}

	if code, ok := DecodeErrorCode(raw); ok {
		return Failure[T](code), nil
	}

	return Envelope[T]{}, &ParseError{Raw: raw, Err: successErr}
}

// DecodeErrorCode decodes only the error shape. It reports false unless raw
// is a JSON object with a string errorCode.
func DecodeErrorCode(raw string) (string, bool) {
	var failure errorShape

	err := json.Unmarshal([]byte(raw), &failure)
	if err != nil || failure.ErrorCode == nil {
		return "", false
	}

	return *failure.ErrorCode, true
}

func decodeSuccess[T any](raw string) (T, error) {
	var value T

	err := json.Unmarshal([]byte(raw), &value)
	if err != nil {
		return value, fmt.Errorf("decoding %T: %w", value, err)
	}

	err = validateShape(&value)
	if err != nil {
		return value, fmt.Errorf("validating %T: %w", value, err)
	}

	return value, nil
}

// validateShape runs struct validation when the payload is a struct (or a
// pointer to one); other payload kinds accept any well-formed JSON.
func validateShape(value interface{}) error {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ErrUnsupportedPayload
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil
	}

	return validate.Struct(rv.Interface())
}

// ValidateStruct validates v against its `validate` tags using the same
// validator the decoder uses.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
