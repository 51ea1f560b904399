package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/valyala/fasthttp"
)

var (
	ErrMalformedResponse = errors.New("unexpected API payload")
	ErrNotFound          = errors.New("not found")
)

// TransportError means the stats API could not be reached or did not answer in time.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unable to reach World of Tanks API: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Timeout() bool {
	return errors.Is(e.Err, fasthttp.ErrTimeout) ||
		errors.Is(e.Err, fasthttp.ErrDialTimeout) ||
		errors.Is(e.Err, context.DeadlineExceeded)
}

// StatusError is an HTTP response with status 400 or above.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("World of Tanks API returned HTTP %d", e.StatusCode)
}

// ServiceError is a well-formed response whose envelope reports a failure.
type ServiceError struct {
	Endpoint string
	Status   string
	Code     int
	Message  string
}

func (e *ServiceError) Error() string {
	return e.Message
}
