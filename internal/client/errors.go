package client

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/tidwall/gjson"
)

// ErrUnexpectedEnvelope is returned when a response body matches none of the
// accepted list or detail shapes.
var ErrUnexpectedEnvelope = errors.New("unexpected response envelope")

// Error is a transport failure: the request could not be completed or the
// server answered with a non-2xx status.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Timeout reports whether the request hit the client timeout.
func (e *Error) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ServerMessage returns the message the server supplied for a failed request.
func ServerMessage(err error) (string, bool) {
	var te *Error
	if errors.As(err, &te) && te.Message != "" {
		return te.Message, true
	}
	return "", false
}

// StatusCode returns the HTTP status of a failed request, or 0.
func StatusCode(err error) int {
	var te *Error
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}

// serverMessage prefers the "message" field of an error body over "error".
func serverMessage(data []byte) string {
	if !gjson.ValidBytes(data) {
		return ""
	}
	body := gjson.ParseBytes(data)
	if msg := body.Get("message"); msg.Type == gjson.String && msg.Str != "" {
		return msg.Str
	}
	if msg := body.Get("error"); msg.Type == gjson.String && msg.Str != "" {
		return msg.Str
	}
	return ""
}
