package kafka

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrProducerClosed = errors.New("kafka: producer is closed")
	ErrEmptyMessage   = errors.New("kafka: message has no value")
	ErrNoTopic        = errors.New("kafka: message has no topic")
)

// ShouldRetry reports whether a handler error is worth redelivering.
// Context cancellation means shutdown, not failure, so it never retries.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var permanent *PermanentError
	if errors.As(err, &permanent) {
		return false
	}

	msg := strings.ToLower(err.Error())
	transient := []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"i/o timeout",
		"temporarily unavailable",
		"leader not available",
	}
	for _, fragment := range transient {
		if strings.Contains(msg, fragment) {
			return true
		}
	}

	// Unknown handler errors get the configured retry budget before
	// dead-lettering.
	return true
}

// PermanentError marks a handler failure that redelivery cannot fix,
// such as an unparseable payload. It goes straight to the DLQ.
type PermanentError struct {
	Err error
}

func Permanent(err error) *PermanentError {
	return &PermanentError{Err: err}
}

func (e *PermanentError) Error() string {
	return "permanent: " + e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}
