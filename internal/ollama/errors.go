package ollama

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
)

// unreachableError signals that no connection to the backend could be made.
type unreachableError struct {
	baseURL string
	err     error
}

func (e unreachableError) Error() string {
	return "ollama unreachable at " + e.baseURL + ": " + e.err.Error()
}
func (e unreachableError) Unwrap() error { return e.err }

// IsUnreachable reports whether err indicates a refused or failed connection.
func IsUnreachable(err error) bool {
	var u unreachableError
	return errors.As(err, &u)
}

// timeoutError signals that the backend did not answer within the request bound.
type timeoutError struct{ err error }

func (e timeoutError) Error() string { return "ollama request timed out: " + e.err.Error() }
func (e timeoutError) Unwrap() error { return e.err }

// IsTimeout reports whether err indicates the request bound was exceeded.
func IsTimeout(err error) bool {
	var t timeoutError
	return errors.As(err, &t)
}

// statusError carries a non-2xx response from the backend.
type statusError struct {
	code   int
	status string
	body   string
}

func (e statusError) Error() string {
	msg := "ollama http error: " + e.status
	if e.body != "" {
		msg += ": " + e.body
	}
	return msg
}

// StatusCode returns the HTTP status returned by the backend.
func (e statusError) StatusCode() int { return e.code }

// IsHTTPStatus reports whether err is a non-2xx backend response.
func IsHTTPStatus(err error) bool {
	var s statusError
	return errors.As(err, &s)
}

// malformedError signals a body that is not valid JSON.
type malformedError struct{ err error }

func (e malformedError) Error() string { return "ollama returned invalid JSON: " + e.err.Error() }
func (e malformedError) Unwrap() error { return e.err }

// IsMalformed reports whether err indicates an unparsable response body.
func IsMalformed(err error) bool {
	var m malformedError
	return errors.As(err, &m)
}

// transportError wraps any other failed round trip.
type transportError struct{ err error }

func (e transportError) Error() string { return e.err.Error() }
func (e transportError) Unwrap() error { return e.err }

// IsTransport reports whether err is an unclassified transport failure.
func IsTransport(err error) bool {
	var t transportError
	return errors.As(err, &t)
}

// modelMissingError is returned by Probe when the model is not pulled.
type modelMissingError struct{ model string }

func (e modelMissingError) Error() string { return "model not available on backend: " + e.model }

// IsModelMissing reports whether err indicates the configured model is absent.
func IsModelMissing(err error) bool {
	var m modelMissingError
	return errors.As(err, &m)
}

// classify maps a failed round trip onto the error types above.
// Dial failures win over timeouts: a connect timeout means the server is not reachable.
func classify(baseURL string, err error) error {
	var op *net.OpError
	if errors.As(err, &op) && op.Op == "dial" {
		return unreachableError{baseURL: baseURL, err: err}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return unreachableError{baseURL: baseURL, err: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return unreachableError{baseURL: baseURL, err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutError{err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return timeoutError{err: err}
	}
	return transportError{err: err}
}

func statusText(code int, status string) string {
	if status != "" {
		return status
	}
	return strconv.Itoa(code)
}
