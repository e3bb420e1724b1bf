package weberr

import "errors"

type fielder interface {
	Fields() map[string]interface{}
}

// Fields digs through the error chain for attached log fields.
func Fields(err error) (fields map[string]interface{}, ok bool) {
	var fe fielder
	if !errors.As(err, &fe) {
		return nil, false
	}
	return fe.Fields(), true
}

// WithFields attaches structured log fields to the error.
func WithFields(fields map[string]interface{}) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}

type fieldsError struct {
	error
	fields map[string]interface{}
}

func (e *fieldsError) Fields() map[string]interface{} { return e.fields }

func (e *fieldsError) Unwrap() error { return e.error }
