package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/pokecards/backend/api/middleware"
	"github.com/pokecards/backend/api/web"
	"github.com/pokecards/backend/config"
	"github.com/pokecards/backend/core/auth"
	"github.com/pokecards/backend/core/cart"
	"github.com/pokecards/backend/core/deck"
	"github.com/pokecards/backend/core/order"
	"github.com/pokecards/backend/core/payment"
	"github.com/pokecards/backend/core/product"
	"github.com/pokecards/backend/core/user"
	"github.com/pokecards/backend/database"
	"github.com/pokecards/backend/rate"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin   string
	Log          logrus.FieldLogger
	DB           *sqlx.DB
	Session      *scs.SessionManager
	Pix          config.Pix
	Gateway      payment.Gateway
	LoginLimiter *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate()
	admin := auth.Admin()

	a.Handle(http.MethodGet, "/health", handleHealth(cfg.DB))

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(cfg.DB, cfg.Session))
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.Session), middleware.RateLimit(cfg.LoginLimiter))
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))

	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(cfg.DB), authen)

	a.Handle(http.MethodGet, "/products/featured", product.HandleListFeatured(cfg.DB))
	a.Handle(http.MethodGet, "/products/category/{category}", product.HandleListByCategory(cfg.DB))
	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.DB))
	a.Handle(http.MethodPost, "/products", product.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/products/{id}", product.HandleUpdate(cfg.DB), admin)

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodGet, "/cart/count", cart.HandleCount(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(cfg.DB), authen)
	a.Handle(http.MethodPost, "/cart/items", cart.HandleAddItem(cfg.DB), authen)
	a.Handle(http.MethodPut, "/cart/items/{id}", cart.HandleUpdateItem(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/cart/items/{id}", cart.HandleDeleteItem(cfg.DB), authen)

	a.Handle(http.MethodGet, "/decks/public", deck.HandleListPublic(cfg.DB))
	a.Handle(http.MethodGet, "/decks/{id}", deck.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodGet, "/decks", deck.HandleList(cfg.DB), authen)
	a.Handle(http.MethodPost, "/decks/{id}/copy", deck.HandleCopy(cfg.DB), authen)
	a.Handle(http.MethodPost, "/decks", deck.HandleCreate(cfg.DB), authen)
	a.Handle(http.MethodPut, "/decks/{id}", deck.HandleUpdate(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/decks/{id}", deck.HandleDelete(cfg.DB), authen)

	a.Handle(http.MethodGet, "/orders/{id}", order.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodGet, "/orders", order.HandleList(cfg.DB), authen)
	a.Handle(http.MethodPost, "/orders", order.HandleCheckout(cfg.DB, cfg.Pix), authen)
	a.Handle(http.MethodPut, "/orders/{id}/status", order.HandleUpdateStatus(cfg.DB), admin)

	a.Handle(http.MethodPost, "/payment/pix", order.HandleDirectPix(cfg.DB, cfg.Pix), authen)
	a.Handle(http.MethodGet, "/payment/status/{id}", order.HandlePaymentStatus(cfg.Gateway), authen)

	return a.Router
}

func handleHealth(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		status, code := "ok", http.StatusOK
		if err := database.StatusCheck(ctx, db); err != nil {
			status, code = "database not ready", http.StatusInternalServerError
		}

		out := struct {
			Status string `json:"status"`
		}{status}

		return web.Respond(ctx, w, out, code)
	}
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
