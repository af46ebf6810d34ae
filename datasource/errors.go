package datasource

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport marks failures where no usable answer came back: the host was
// unreachable, the connection broke, or the body could not be decoded.
var ErrTransport = errors.New("weather api transport failure")

// ErrCityNotFound matches any APIError carrying the API's 404 code.
var ErrCityNotFound = &APIError{Code: http.StatusNotFound, Message: "city not found"}

// APIError is a well-formed answer from the API whose status code is not a success.
type APIError struct {
	Code    int    // normalised "cod" field
	Message string // the API's own message, possibly empty
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("weather api [%d]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("weather api [%d]", e.Code)
}

// Is implements errors.Is by comparing status codes.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsNotFound reports whether err is the API's "city not found" answer.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCityNotFound)
}
