package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/pokecards/backend/api/web"
	"github.com/pokecards/backend/api/weberr"
	"github.com/pokecards/backend/rate"
)

// RateLimit throttles a route per client address. Used on login to
// slow down credential guessing.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !lim.Allow(host) {
				err := errors.New("rate limit exceeded")
				return weberr.NewError(err, "too many requests", http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
