// Package weberr decorates errors with the HTTP response they should
// produce. Handlers return plain errors; the errors middleware asks
// this package how to render them.
package weberr

import (
	"net/http"
)

// An Opt decorates an error on its way out of a handler.
type Opt func(error) error

// Wrap applies every opt to err, in order.
func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// ErrorResponse is the JSON body every client-visible error renders to.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RequestError marks an error as caused by the request rather than the
// server.
type RequestError struct {
	Err error
}

func (r *RequestError) Error() string { return r.Err.Error() }

func (r *RequestError) Unwrap() error { return r.Err }

// NewError builds a request error rendering msg with the given status.
func NewError(err error, msg string, status int, opts ...Opt) error {
	e := &RequestError{Err: err}
	opts = append(opts, WithResponse(&ErrorResponse{msg}, status))
	return Wrap(e, opts...)
}

func NotFound(err error, opts ...Opt) error {
	return NewError(err, "the requested resource could not be found", http.StatusNotFound, opts...)
}

func NotAuthorized(err error, opts ...Opt) error {
	return NewError(err, "not authorized to access this resource", http.StatusUnauthorized, opts...)
}

func BadRequest(err error, opts ...Opt) error {
	return NewError(err, "invalid request", http.StatusBadRequest, opts...)
}

func InternalError(err error, opts ...Opt) error {
	return NewError(err, "the server could not process the request", http.StatusInternalServerError, opts...)
}
