package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/pokecards/backend/api/web"
	"github.com/pokecards/backend/api/weberr"
	"github.com/pokecards/backend/core/claims"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// LoadAndSave runs the scs session machinery around the handler and
// promotes a stored session into request claims.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			hh := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := r.Context()

				if uid := session.GetString(ctx, userIDKey); uid != "" {
					clm := claims.Claims{
						UserID: uid,
						Role:   session.GetString(ctx, roleKey),
					}
					ctx = claims.Set(ctx, clm)
				}

				err = handler(ctx, w, r)
			})

			session.LoadAndSave(hh).ServeHTTP(w, r)
			return err
		}
		return h
	}
	return m
}

func Authenticate() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if _, err := claims.Get(ctx); err != nil {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func Admin() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !claims.IsAdmin(ctx) {
				return weberr.NotAuthorized(errors.New("user is not an administrator"))
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
