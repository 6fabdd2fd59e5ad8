package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dasdy/gridfit/web/routes"
)

func disableCacheInDevMode(dev bool, next http.Handler) http.Handler {
	if !dev {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func BuildServer(handler *routes.ServerHandler, dev bool) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/screen", http.HandlerFunc(handler.ScreenHandle))
	mux.Handle("/screen/rebalanced", http.HandlerFunc(handler.RebalancedHandle))
	mux.Handle("/favorites/toggle", http.HandlerFunc(handler.ToggleFavoriteHandle))
	mux.Handle("/search", http.HandlerFunc(handler.SearchHandle))
	mux.Handle("/back", http.HandlerFunc(handler.BackHandle))
	mux.Handle("/api/report", http.HandlerFunc(handler.ReportHandle))
	mux.Handle("/", http.HandlerFunc(handler.IndexHandle))

	return disableCacheInDevMode(dev, mux)
}

func StartServer(port int, handler *routes.ServerHandler, dev bool) error {
	slog.Info("Running interface", "port", port, "dev", dev)

	err := http.ListenAndServe(fmt.Sprintf(":%d", port), BuildServer(handler, dev))
	if err != nil {
		return fmt.Errorf("could not run server: %w", err)
	}

	return nil
}
