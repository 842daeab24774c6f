package backend

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindTransport: the request never completed (dial, TLS, read failures).
	KindTransport ErrorKind = "transport"
	// KindProtocol: non-2xx status or a body that is not the expected JSON.
	KindProtocol ErrorKind = "protocol"
	// KindApplication: the backend answered success=false.
	KindApplication ErrorKind = "application"
	// KindValidation: rejected locally, nothing was sent.
	KindValidation ErrorKind = "validation"
)

type Error struct {
	Kind    ErrorKind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Op, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s %s failure", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ServerMessage is the message the backend sent, empty for transport failures
// and responses without one.
func (e *Error) ServerMessage() string {
	if e.Kind == KindTransport {
		return ""
	}
	return e.Message
}

func ValidationError(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// AsError extracts a *Error from err, wrapping foreign errors as transport failures.
func AsError(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return be
	}
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

func IsKind(err error, kind ErrorKind) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
