package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/pokecards/backend/api/web"
	"github.com/pokecards/backend/random"
)

// RequestIDHeader lets a caller propagate its own request id; without
// one a process-unique id is minted.
const RequestIDHeader = "X-Request-Id"

// Caller-supplied ids are clipped to this length.
const requestIDMaxLen = 128

type ridKey int

const requestIDKey ridKey = 1

var (
	ridPrefix  = random.String(10)
	ridCounter int64
)

func RequestID() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			id := r.Header.Get(RequestIDHeader)
			switch {
			case id == "":
				id = fmt.Sprintf("%s-%d", ridPrefix, atomic.AddInt64(&ridCounter, 1))
			case len(id) > requestIDMaxLen:
				id = id[:requestIDMaxLen]
			}

			return handler(context.WithValue(ctx, requestIDKey, id), w, r)
		}
		return h
	}
	return m
}

// ContextRequestID returns the request id, or "" outside a request.
func ContextRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
