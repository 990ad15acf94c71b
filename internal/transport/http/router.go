package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nhi/pkg/platform/httputil"
	"nhi/pkg/platform/middleware/metadata"
	"nhi/pkg/platform/middleware/recovery"
	"nhi/pkg/platform/middleware/requestid"
	"nhi/pkg/platform/middleware/requestlog"
	"nhi/pkg/platform/middleware/requesttime"
)

// RouteRegistrar is implemented by handlers that mount their own routes.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// NewRouter wires middleware, operational endpoints and the versioned API.
// Handlers stay thin and delegate to services.
func NewRouter(logger *slog.Logger, gatherer prometheus.Gatherer, v1 ...RouteRegistrar) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requestlog.Middleware(logger))
	r.Use(recovery.Middleware(logger))

	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(api chi.Router) {
		for _, h := range v1 {
			h.Register(api)
		}
	})
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
