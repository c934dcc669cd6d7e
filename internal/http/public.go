package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saltaireguide/directory/internal/directory"
	"github.com/saltaireguide/directory/internal/fetcher"
	"github.com/saltaireguide/directory/internal/logging"
	"github.com/saltaireguide/directory/pkg/interfaces"
)

const requestIDHeader = "X-Request-ID"

// PageService assembles the page for a listing path.
type PageService interface {
	Page(ctx context.Context, path string) (*directory.Page, error)
}

// PublicAPI serves listing pages, health and metrics.
type PublicAPI struct {
	pages    PageService
	logger   interfaces.Logger
	metrics  *Metrics
	gatherer prometheus.Gatherer
	clock    func() time.Time
}

// PublicOption mutates the PublicAPI configuration.
type PublicOption func(*PublicAPI)

// NewPublicAPI constructs the public API. Without WithRegistry the collectors
// live on a private registry exposed only through this API's /metrics.
func NewPublicAPI(pages PageService, opts ...PublicOption) *PublicAPI {
	api := &PublicAPI{
		pages:  pages,
		logger: logging.NoOp(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	if api.metrics == nil {
		reg := prometheus.NewRegistry()
		api.metrics = NewMetrics(reg)
		api.gatherer = reg
	}
	return api
}

func WithLogger(logger interfaces.Logger) PublicOption {
	return func(api *PublicAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithRegistry registers the page collectors on reg and serves it at /metrics.
func WithRegistry(reg *prometheus.Registry) PublicOption {
	return func(api *PublicAPI) {
		if reg != nil {
			api.metrics = NewMetrics(reg)
			api.gatherer = reg
		}
	}
}

func WithClock(clock func() time.Time) PublicOption {
	return func(api *PublicAPI) {
		if clock != nil {
			api.clock = clock
		}
	}
}

// Register mounts the routes on mux.
func (api *PublicAPI) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET /healthz", api.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(api.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /{path...}", api.handlePage)
}

// Handler returns a mux with every route registered.
func (api *PublicAPI) Handler() http.Handler {
	mux := http.NewServeMux()
	api.Register(mux)
	return mux
}

func (api *PublicAPI) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (api *PublicAPI) handlePage(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	started := api.clock()
	requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	path := "/" + r.PathValue("path")

	ctx := fetcher.WithRequestMemo(r.Context())
	ctx = logging.ContextWithFields(ctx, map[string]any{"request_id": requestID})
	logger := logging.WithPath(api.logger, path).WithContext(ctx)

	w.Header().Set(requestIDHeader, requestID)
	page, err := api.pages.Page(ctx, path)
	if err != nil {
		status, body := mapError(err)
		outcome := OutcomeError
		if status == http.StatusNotFound {
			outcome = OutcomeNotFound
			logger.Debug("page.not_found")
		} else {
			logger.Error("page.unavailable", "error", err)
		}
		api.metrics.observe(outcome, api.clock().Sub(started).Seconds())
		writeJSON(w, status, body)
		return
	}
	api.metrics.observe(OutcomeOK, api.clock().Sub(started).Seconds())
	writeJSON(w, http.StatusOK, page)
}
