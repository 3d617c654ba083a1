package client

import (
	"errors"
	"strings"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorClass
	}{
		{400, ErrorClassClient},
		{404, ErrorClassClient},
		{429, ErrorClassRateLimit},
		{500, ErrorClassServer},
		{503, ErrorClassServer},
		{200, ""},
	}
	for _, tt := range tests {
		if got := classifyStatus(tt.status); got != tt.want {
			t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &TransportError{Attempts: 5, Err: cause}

	if !errors.Is(err, ErrRetryExhausted) {
		t.Error("TransportError should match ErrRetryExhausted")
	}
	if !errors.Is(err, cause) {
		t.Error("TransportError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "after 5 attempts") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "with details",
			err:  &APIError{StatusCode: 404, Class: ErrorClassClient, Details: "No cards found"},
			want: "scryfall client error (status 404): No cards found",
		},
		{
			name: "without details",
			err:  &APIError{StatusCode: 502, Class: ErrorClassServer},
			want: "scryfall server error (status 502)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
