package topsortclient

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies what went wrong with a request.
type ErrorKind int

const (
	// KindResponse - the server answered, but with a non-success status
	KindResponse ErrorKind = iota + 1
	// KindConnection - no response was obtainable (DNS, connect, timeout)
	KindConnection
	// KindTransport - any other failure on the way to or from the server
	KindTransport
	// KindDecode - a success body that is not valid JSON
	KindDecode
)

// TopsortError is the single error type every failed operation returns.
// The underlying cause is kept for diagnostics, never discarded.
type TopsortError struct {
	Kind    ErrorKind
	Message string
	URL     string
	Status  int    // HTTP status when a response was received, 0 otherwise
	Body    string // raw response body when a response was received
	Err     error
}

// Error implements the error interface
func (e *TopsortError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As
func (e *TopsortError) Unwrap() error {
	return e.Err
}

func newResponseError(label, reqURL string, resp *http.Response, body []byte) *TopsortError {
	cause := fmt.Errorf("Request failed: %s - %s", resp.Status, reqURL)
	message := fmt.Sprintf("%s - %v", label, cause)
	if len(body) > 0 {
		message = fmt.Sprintf("%s - Content: %s", label, string(body))
	}

	return &TopsortError{
		Kind:    KindResponse,
		Message: message,
		URL:     reqURL,
		Status:  resp.StatusCode,
		Body:    string(body),
		Err:     cause,
	}
}

func newConnectionError(label, reqURL string, err error) *TopsortError {
	return &TopsortError{
		Kind:    KindConnection,
		Message: fmt.Sprintf("%s - Could not connect to %s", label, reqURL),
		URL:     reqURL,
		Err:     err,
	}
}

func newTransportError(label, reqURL string, err error) *TopsortError {
	return &TopsortError{
		Kind:    KindTransport,
		Message: fmt.Sprintf("%s - %v", label, err),
		URL:     reqURL,
		Err:     err,
	}
}

func newDecodeError(label string, err error) *TopsortError {
	return &TopsortError{
		Kind:    KindDecode,
		Message: fmt.Sprintf("%s - Failed to decode response: %v", label, err),
		Err:     err,
	}
}
