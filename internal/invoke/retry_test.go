package invoke

import (
	"errors"
	"testing"
)

func TestRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", errors.New("googleapi: rate limit exceeded"), true},
		{"quota", errors.New("Quota Exceeded for model"), true},
		{"http 429", errors.New("unexpected status 429"), true},
		{"http 503", errors.New("Error 503: Service Unavailable"), true},
		{"timeout", errors.New("context deadline exceeded: request timeout"), true},
		{"connection reset", errors.New("read tcp: connection reset by peer"), true},
		{"auth failure", errors.New("invalid api key"), false},
		{"bad request", errors.New("Error 400: invalid argument"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryableError(tt.err); got != tt.want {
				t.Errorf("retryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
