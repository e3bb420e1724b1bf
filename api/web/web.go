// Package web holds the small framework the API is built on: a
// handler signature that returns errors, middleware composition, and
// JSON request/response plumbing.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// A Handler runs in the context of a request and reports failures by
// returning, so middleware up the chain decides how to render them.
type Handler func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

type Middleware func(Handler) Handler

// WrapMiddleware wraps handler so the first middleware in mw is the
// outermost.
func WrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if m := mw[i]; m != nil {
			handler = m(handler)
		}
	}
	return handler
}

// Respond sends data as JSON. A 204 writes no body.
func Respond(ctx context.Context, w http.ResponseWriter, data interface{}, status int) error {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return nil
	}

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshalling response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

// Requests bigger than this are rejected mid-decode.
const maxBodyBytes = 1 << 20

// Decode reads the JSON body into val, rejecting unknown fields. An
// empty body surfaces as io.EOF for callers that treat it as a
// default.
func Decode(w http.ResponseWriter, r *http.Request, val interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(val)
}

// Param returns the named route variable.
func Param(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}
