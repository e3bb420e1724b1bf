package weberr

import "errors"

type responder interface {
	Response() (body interface{}, status int)
}

// Response digs through the error chain for an attached HTTP response.
func Response(err error) (body interface{}, status int, ok bool) {
	var re responder
	if !errors.As(err, &re) {
		return nil, 0, false
	}
	body, status = re.Response()
	return body, status, true
}

// WithResponse attaches the body and status the error should render as.
func WithResponse(body interface{}, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

type responseError struct {
	error
	body   interface{}
	status int
}

func (e *responseError) Response() (interface{}, int) { return e.body, e.status }

func (e *responseError) Unwrap() error { return e.error }
