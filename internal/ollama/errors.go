package ollama

import (
	"errors"
	"fmt"
	"strings"

	"matterdesk/internal/domain"
)

// Kind classifies a client failure. It is assigned once where the failure
// is observed and the retry loop only looks at the kind.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindTransport
	KindModelNotFound
	KindTimeout
	KindCanceled
	KindDecode
	KindExhausted
)

var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindInvalidInput:  "invalid_input",
	KindTransport:     "transport",
	KindModelNotFound: "model_not_found",
	KindTimeout:       "timeout",
	KindCanceled:      "canceled",
	KindDecode:        "decode",
	KindExhausted:     "exhausted",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Retryable reports whether a failure of this kind may be retried.
func (k Kind) Retryable() bool {
	return k == KindTransport
}

// Error is returned by every Client operation.
type Error struct {
	Kind       Kind
	Op         string
	Model      string
	Endpoint   string
	StatusCode int
	Attempts   int
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("ollama ")
	b.WriteString(e.Op)
	switch e.Kind {
	case KindModelNotFound:
		fmt.Fprintf(&b, ": model %q not found", e.Model)
	case KindTimeout:
		b.WriteString(": request timed out")
	case KindCanceled:
		b.WriteString(": canceled")
	case KindExhausted:
		fmt.Fprintf(&b, ": failed after %d attempts", e.Attempts)
	case KindInvalidInput:
		b.WriteString(": invalid input")
	case KindDecode:
		b.WriteString(": undecodable response")
	default:
		b.WriteString(": ")
		b.WriteString(e.Kind.String())
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets callers match client failures against the domain sentinels
// without depending on this package.
func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrLLMModelNotFound:
		return e.Kind == KindModelNotFound
	case domain.ErrLLMTimeout:
		return e.Kind == KindTimeout
	case domain.ErrLLMUnavailable:
		return e.Kind == KindTransport || e.Kind == KindExhausted || e.Kind == KindDecode
	}
	return false
}

// KindOf returns the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsModelNotFound reports whether err means the requested model is not installed.
func IsModelNotFound(err error) bool { return KindOf(err) == KindModelNotFound }

// IsTimeout reports whether err is a per-attempt timeout.
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }

// IsExhausted reports whether err means every attempt failed.
func IsExhausted(err error) bool { return KindOf(err) == KindExhausted }
