package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/swxiao/jenkins/pkg/cache"
	"github.com/swxiao/jenkins/pkg/history"
	"github.com/swxiao/jenkins/pkg/httputil"
	"github.com/swxiao/jenkins/pkg/observability"
	"github.com/swxiao/jenkins/pkg/search"
)

// IndexProvider supplies the root index for the caller's scope. Keeping
// this minimal avoids the gateway depending on the object model.
type IndexProvider interface {
	SearchIndex() *search.Index
}

// Options configures the gateway. Index and Logger are required; Cache,
// History and Metrics are optional.
type Options struct {
	Index           IndexProvider
	Logger          *observability.Logger
	Metrics         *observability.Metrics
	OTelMetrics     *observability.OTelMetrics
	Cache           *cache.SuggestCache
	History         *history.Recorder
	SuggestionLimit int
	CaseInsensitive bool
}

// Server is the quick-search HTTP gateway.
type Server struct {
	index           IndexProvider
	logger          *observability.Logger
	metrics         *observability.Metrics
	otelMetrics     *observability.OTelMetrics
	cache           *cache.SuggestCache
	history         *history.Recorder
	suggestionLimit int
	caseInsensitive bool
	router          *mux.Router
	handler         http.Handler
}

// NewServer creates the gateway and wires its routes and middleware.
func NewServer(opts Options) *Server {
	s := &Server{
		index:           opts.Index,
		logger:          opts.Logger,
		metrics:         opts.Metrics,
		otelMetrics:     opts.OTelMetrics,
		cache:           opts.Cache,
		history:         opts.History,
		suggestionLimit: opts.SuggestionLimit,
		caseInsensitive: opts.CaseInsensitive,
		router:          mux.NewRouter(),
	}

	s.router.Use(httputil.RequestIDMiddleware)
	s.router.Use(httputil.LoggingMiddleware(s.logger, s.metrics))
	s.router.Use(httputil.RecoveryMiddleware(s.logger))

	s.router.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	s.router.HandleFunc("/search/suggest", s.handleSuggest).Methods(http.MethodGet)
	if s.history != nil {
		s.router.HandleFunc("/search/history/top", s.handleTopQueries).Methods(http.MethodGet)
	}

	// Transport-level spans and metrics flow through the global otel
	// providers; a no-op when none are installed.
	s.handler = otelhttp.NewHandler(s.router, "quicksearch")

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
