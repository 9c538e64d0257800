package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrMalformedResponse is returned when a successful response does not
	// carry the envelope the operation expects.
	ErrMalformedResponse = errors.New("malformed response")
)

// ConfigurationError reports missing or malformed client settings such as
// the base URL or the admin key. It is never retryable.
type ConfigurationError struct {
	Setting string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %s: %v", e.Setting, e.Message, e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// InvalidPathError reports a request path that is neither a content nor an
// admin path. It is returned before any network activity.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("path must start with content/ or admin/: %q", e.Path)
}

// TransportError wraps connection level failures: DNS, refused
// connections, timeouts and broken response bodies.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorKind tells how an APIError message was obtained.
type ErrorKind int

const (
	// RawError means the body was not a Ghost error document and Message
	// holds the raw body text.
	RawError ErrorKind = iota
	// StructuredError means Message was taken from errors[0].message.
	StructuredError
)

func (k ErrorKind) String() string {
	if k == StructuredError {
		return "structured"
	}
	return "raw"
}

// APIError represents a non-2xx response from Ghost.
type APIError struct {
	StatusCode int
	Message    string
	// Type is errors[0].type for structured errors, e.g. "ValidationError".
	Type string
	Kind ErrorKind
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ghostErrorBody is the error document Ghost sends on failures.
type ghostErrorBody struct {
	Errors []struct {
		Message *string `json:"message"`
		Type    string  `json:"type"`
	} `json:"errors"`
}

// decodeAPIError turns a failed response into an APIError. The first stage
// looks for a structured Ghost error document; when that yields nothing the
// raw body text is used.
func decodeAPIError(statusCode int, body []byte) *APIError {
	if apiErr, ok := decodeStructuredError(statusCode, body); ok {
		return apiErr
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
		Kind:       RawError,
	}
}

func decodeStructuredError(statusCode int, body []byte) (*APIError, bool) {
	var doc ghostErrorBody
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, false
	}
	if len(doc.Errors) == 0 || doc.Errors[0].Message == nil {
		return nil, false
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    *doc.Errors[0].Message,
		Type:       doc.Errors[0].Type,
		Kind:       StructuredError,
	}, true
}

// IsConfigurationError returns true if the error is caused by client settings.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsInvalidPath returns true if the request path had no recognised prefix.
func IsInvalidPath(err error) bool {
	var pe *InvalidPathError
	return errors.As(err, &pe)
}

// IsTransportError returns true if the request never produced an HTTP response.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsAPIError returns true if Ghost answered with a non-2xx status.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// IsNotFound returns true if Ghost answered 404.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}

// IsUpdateCollision returns true if Ghost rejected a write because the
// supplied updated_at no longer matches the stored resource.
func IsUpdateCollision(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusConflict
}
