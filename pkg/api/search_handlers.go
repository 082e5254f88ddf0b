package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/swxiao/jenkins/pkg/httputil"
	"github.com/swxiao/jenkins/pkg/observability"
)

var tracer = otel.Tracer("quicksearch/api")

const (
	outcomeResolved = "resolved"
	outcomeNotFound = "not_found"
)

// handleSearch handles GET /search?q=<query>: exact resolution only. A hit
// redirects to the target; a miss is a hard 404, never a partial match.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	ctx, span := tracer.Start(r.Context(), "ExactSearch")
	defer span.End()

	start := time.Now()
	target, ok := s.index.SearchIndex().FindFold(query, s.caseInsensitive)
	duration := time.Since(start)

	outcome := outcomeNotFound
	results := 0
	if ok {
		outcome = outcomeResolved
		results = 1
	}
	span.SetAttributes(attribute.String("outcome", outcome))

	if s.metrics != nil {
		s.metrics.ObserveResolution(outcome, duration)
	}
	s.otelMetrics.RecordResolution(ctx, outcome, duration)
	s.recordHistory(ctx, "exact", query, results, duration)

	if !ok {
		httputil.WriteNotFoundError(w, "no exact match")
		return
	}
	http.Redirect(w, r, "/"+target.SearchURL(), http.StatusFound)
}

// handleSuggest handles GET /search/suggest?query=<query>. An empty
// suggestion list is a valid 200 response.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	ctx, span := tracer.Start(r.Context(), "Suggest")
	defer span.End()

	if s.cache != nil {
		payload, tier, hit := s.cache.Get(ctx, query)
		s.otelMetrics.RecordCacheLookup(ctx, tier, hit)
		if hit {
			if s.metrics != nil {
				s.metrics.CacheHitsTotal.WithLabelValues(tier).Inc()
			}
			span.SetAttributes(attribute.Bool("cache_hit", true))
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
			return
		}
		// The reported tier is the deepest one consulted.
		if s.metrics != nil {
			s.metrics.CacheMissesTotal.WithLabelValues(tier).Inc()
		}
	}

	start := time.Now()
	items := s.index.SearchIndex().SuggestLimit(query, s.suggestionLimit)
	duration := time.Since(start)

	resp := SuggestResponse{Suggestions: make([]Suggestion, 0, len(items))}
	for _, it := range items {
		resp.Suggestions = append(resp.Suggestions, Suggestion{Name: it.Name, URL: it.URL})
	}

	span.SetAttributes(attribute.Int("result_count", len(resp.Suggestions)))
	if s.metrics != nil {
		s.metrics.ObserveSuggestion(len(resp.Suggestions))
	}
	s.otelMetrics.RecordSuggestion(ctx, len(resp.Suggestions))
	s.recordHistory(ctx, "suggest", query, len(resp.Suggestions), duration)

	payload, err := json.Marshal(resp)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, query, payload); err != nil {
			observability.FromContext(ctx).WithError(err).Warn("Suggestion cache write failed")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// handleTopQueries handles GET /search/history/top?limit=<n>.
func (s *Server) handleTopQueries(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	stats, err := s.history.TopQueries(r.Context(), limit)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	resp := TopQueriesResponse{Queries: make([]TopQuery, 0, len(stats))}
	for _, st := range stats {
		resp.Queries = append(resp.Queries, TopQuery{Query: st.Query, Searches: st.Searches})
	}
	httputil.WriteSuccess(w, resp)
}

// recordHistory logs the search best-effort; failures never affect the
// response.
func (s *Server) recordHistory(ctx context.Context, mode, query string, results int, duration time.Duration) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, mode, query, results, duration); err != nil {
		if s.metrics != nil {
			s.metrics.HistoryErrorsTotal.Inc()
		}
		s.logger.WithError(err).Warn("Search history write failed")
	}
}
