// Package httpserver builds the API's *http.Server from config.
package httpserver

import (
	"net/http"
	"time"

	"propaudit/internal/platform/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
	// Headroom past the request deadline so the timeout middleware can
	// still write its 503 body before the connection is cut.
	writeHeadroom = 5 * time.Second
)

// New builds the API server. Read and write deadlines follow the per-request
// timeout applied to /api so neither cuts a request off first.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + writeHeadroom,
		IdleTimeout:       idleTimeout,
	}
}
