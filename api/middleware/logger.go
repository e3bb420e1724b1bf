package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/pokecards/backend/api/web"
	"github.com/sirupsen/logrus"
	"github.com/zenazn/goji/web/mutil"
)

// Logger writes one line when a request starts and one when it
// completes, with the status and size captured off the wrapped writer.
func Logger(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			log := log.WithFields(logrus.Fields{
				"req_id":      ContextRequestID(ctx),
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			log.Info("request started")
			start := time.Now().UTC()

			lw := mutil.WrapWriter(w)
			err := handler(ctx, lw, r)

			log.WithFields(logrus.Fields{
				"status":      lw.Status(),
				"bytes":       lw.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}).Info("request completed")

			return err
		}
		return h
	}
	return m
}
