package client

import (
	"errors"
	"fmt"
	"testing"
)

// TestConfigurationError tests ConfigurationError type
func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name      string
		err       *ConfigurationError
		wantError string
	}{
		{
			name:      "without cause",
			err:       &ConfigurationError{Setting: "base_url", Message: "not set"},
			wantError: "configuration error: base_url: not set",
		},
		{
			name:      "with cause",
			err:       &ConfigurationError{Setting: "admin_key", Message: "secret is not hexadecimal", Err: errors.New("bad byte")},
			wantError: "configuration error: admin_key: secret is not hexadecimal: bad byte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantError {
				t.Errorf("expected error %q, got %q", tt.wantError, got)
			}
		})
	}
}

// TestInvalidPathError tests InvalidPathError type
func TestInvalidPathError(t *testing.T) {
	err := &InvalidPathError{Path: "posts/"}
	want := `path must start with content/ or admin/: "posts/"`
	if err.Error() != want {
		t.Errorf("expected error %q, got %q", want, err.Error())
	}
}

// TestTransportError tests TransportError type
func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Method: "GET", URL: "https://blog.local/ghost/api/admin/posts/", Err: cause}

	want := "GET https://blog.local/ghost/api/admin/posts/: connection refused"
	if err.Error() != want {
		t.Errorf("expected error %q, got %q", want, err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected TransportError to unwrap to its cause")
	}
}

// TestAPIError tests APIError type
func TestAPIError(t *testing.T) {
	tests := []struct {
		name      string
		err       *APIError
		wantError string
	}{
		{
			name:      "structured",
			err:       &APIError{StatusCode: 422, Message: "Title missing", Kind: StructuredError},
			wantError: "HTTP 422: Title missing",
		},
		{
			name:      "raw",
			err:       &APIError{StatusCode: 502, Message: "Bad Gateway", Kind: RawError},
			wantError: "HTTP 502: Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantError {
				t.Errorf("expected error %q, got %q", tt.wantError, got)
			}
		})
	}
}

// TestDecodeAPIError tests the two-stage error decoder
func TestDecodeAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantType    string
		wantKind    ErrorKind
	}{
		{
			name:        "structured message",
			status:      422,
			body:        `{"errors":[{"message":"Title missing","type":"ValidationError"}]}`,
			wantMessage: "Title missing",
			wantType:    "ValidationError",
			wantKind:    StructuredError,
		},
		{
			name:        "first error wins",
			status:      400,
			body:        `{"errors":[{"message":"first"},{"message":"second"}]}`,
			wantMessage: "first",
			wantKind:    StructuredError,
		},
		{
			name:        "empty message is still structured",
			status:      400,
			body:        `{"errors":[{"message":""}]}`,
			wantMessage: "",
			wantKind:    StructuredError,
		},
		{
			name:        "missing message falls back to body",
			status:      400,
			body:        `{"errors":[{"type":"BadRequestError"}]}`,
			wantMessage: `{"errors":[{"type":"BadRequestError"}]}`,
			wantKind:    RawError,
		},
		{
			name:        "errors not an array",
			status:      500,
			body:        `{"errors":"boom"}`,
			wantMessage: `{"errors":"boom"}`,
			wantKind:    RawError,
		},
		{
			name:        "plain text",
			status:      500,
			body:        "upstream exploded",
			wantMessage: "upstream exploded",
			wantKind:    RawError,
		},
		{
			name:        "empty body",
			status:      503,
			body:        "",
			wantMessage: "",
			wantKind:    RawError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAPIError(tt.status, []byte(tt.body))
			if got.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, got.StatusCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, got.Message)
			}
			if got.Type != tt.wantType {
				t.Errorf("expected type %q, got %q", tt.wantType, got.Type)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, got.Kind)
			}
		})
	}
}

// TestErrorHelpers tests the Is* helpers, including wrapped errors
func TestErrorHelpers(t *testing.T) {
	configErr := &ConfigurationError{Setting: "base_url", Message: "not set"}
	pathErr := &InvalidPathError{Path: "x"}
	transportErr := &TransportError{Method: "GET", URL: "u", Err: errors.New("eof")}
	notFound := &APIError{StatusCode: 404, Message: "Post not found"}
	collision := &APIError{StatusCode: 409, Message: "Saving failed! Someone else is editing this post."}

	tests := []struct {
		name  string
		check func(error) bool
		yes   []error
		no    []error
	}{
		{
			name:  "IsConfigurationError",
			check: IsConfigurationError,
			yes:   []error{configErr, fmt.Errorf("wrapped: %w", configErr)},
			no:    []error{pathErr, transportErr, notFound, nil},
		},
		{
			name:  "IsInvalidPath",
			check: IsInvalidPath,
			yes:   []error{pathErr},
			no:    []error{configErr, notFound},
		},
		{
			name:  "IsTransportError",
			check: IsTransportError,
			yes:   []error{transportErr, fmt.Errorf("wrapped: %w", transportErr)},
			no:    []error{notFound, configErr},
		},
		{
			name:  "IsAPIError",
			check: IsAPIError,
			yes:   []error{notFound, collision},
			no:    []error{transportErr, errors.New("plain")},
		},
		{
			name:  "IsNotFound",
			check: IsNotFound,
			yes:   []error{notFound, fmt.Errorf("get post: %w", notFound)},
			no:    []error{collision, configErr},
		},
		{
			name:  "IsUpdateCollision",
			check: IsUpdateCollision,
			yes:   []error{collision},
			no:    []error{notFound, transportErr},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, err := range tt.yes {
				if !tt.check(err) {
					t.Errorf("expected true for %v", err)
				}
			}
			for _, err := range tt.no {
				if tt.check(err) {
					t.Errorf("expected false for %v", err)
				}
			}
		})
	}
}
