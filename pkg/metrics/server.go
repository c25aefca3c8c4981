package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Route is one extra endpoint served next to /metrics.
type Route struct {
	Path    string
	Handler http.Handler
}

// Serve binds port and serves the given routes in the background. Binding
// errors are returned immediately; the returned function shuts the server
// down.
func Serve(port int, routes ...Route) (shutdown func(context.Context) error, err error) {
	mux := http.NewServeMux()
	for _, r := range routes {
		mux.Handle(r.Path, r.Handler)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("binding metrics port %d: %w", port, err)
	}
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	logger := slog.Default().With("component", "metrics-server")
	go func() {
		logger.Info("serving metrics", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	return srv.Shutdown, nil
}
