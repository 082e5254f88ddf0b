package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for testing

	"github.com/swxiao/jenkins/pkg/api"
	"github.com/swxiao/jenkins/pkg/cache"
	"github.com/swxiao/jenkins/pkg/history"
	"github.com/swxiao/jenkins/pkg/model"
	"github.com/swxiao/jenkins/pkg/observability"
	"github.com/swxiao/jenkins/pkg/workspace"
)

func testLogger() *observability.Logger {
	return observability.NewLogger(observability.ErrorLevel, io.Discard)
}

// fixtureWorkspace builds the graph the handler tests run against.
func fixtureWorkspace() *model.Workspace {
	ws := model.NewWorkspace()
	ws.CreateJob("build-web")
	p := ws.CreateJob("project name")
	p.SetDisplayName("display name")
	folder := ws.CreateFolder("team-a")
	folder.CreateJob("deploy")
	return ws
}

func newTestServer(t *testing.T, opts api.Options) *api.Server {
	t.Helper()
	if opts.Index == nil {
		opts.Index = workspace.NewHolder(fixtureWorkspace())
	}
	if opts.Logger == nil {
		opts.Logger = testLogger()
	}
	if opts.SuggestionLimit == 0 {
		opts.SuggestionLimit = 100
	}
	return api.NewServer(opts)
}

func doGet(s *api.Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestExactSearchRedirects(t *testing.T) {
	s := newTestServer(t, api.Options{})

	rec := doGet(s, "/search?q=build-web")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/job/build-web/", rec.Header().Get("Location"))
}

func TestExactSearchNestedJobRedirects(t *testing.T) {
	s := newTestServer(t, api.Options{})

	rec := doGet(s, "/search?q=deploy")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/job/team-a/job/deploy/", rec.Header().Get("Location"))
}

func TestExactSearchEscapesLocation(t *testing.T) {
	s := newTestServer(t, api.Options{})

	rec := doGet(s, "/search?q=project+name")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/job/project%20name/", rec.Header().Get("Location"))
}

// No exact match must produce a failure status, never a substring match.
func TestExactSearchNotFound(t *testing.T) {
	s := newTestServer(t, api.Options{})

	tests := []struct {
		name  string
		query string
	}{
		{"unknown name", "no-such-thing"},
		{"substring of an indexed name", "build"},
		{"empty query", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(s, "/search?q="+tt.query)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

// A markup-like query must come back as inert data, never as markup.
func TestMarkupQueryStaysInert(t *testing.T) {
	s := newTestServer(t, api.Options{})

	rec := doGet(s, "/search?q=%3Cscript%3Ealert('script')%3B%3C%2Fscript%3E")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>")

	rec = doGet(s, "/search/suggest?query=%3Cscript%3E")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>")
}

func TestSuggestReturnsBothAliases(t *testing.T) {
	s := newTestServer(t, api.Options{})

	rec := doGet(s, "/search/suggest?query=name")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SuggestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Suggestions, 2)

	var names []string
	for _, sg := range resp.Suggestions {
		names = append(names, sg.Name)
		assert.Equal(t, "job/project%20name/", sg.URL)
	}
	assert.Contains(t, names, "project name")
	assert.Contains(t, names, "display name")
}

func TestSuggestEmptyListIsValid(t *testing.T) {
	s := newTestServer(t, api.Options{})

	rec := doGet(s, "/search/suggest?query=zzz")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SuggestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Suggestions)
	assert.Empty(t, resp.Suggestions)
}

func TestSuggestHonorsLimit(t *testing.T) {
	ws := model.NewWorkspace()
	for _, name := range []string{"job-1", "job-2", "job-3"} {
		ws.CreateJob(name)
	}
	s := newTestServer(t, api.Options{
		Index:           workspace.NewHolder(ws),
		SuggestionLimit: 2,
	})

	rec := doGet(s, "/search/suggest?query=job")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SuggestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Suggestions, 2)
}

func TestCaseInsensitiveExactSearch(t *testing.T) {
	s := newTestServer(t, api.Options{CaseInsensitive: true})

	rec := doGet(s, "/search?q=BUILD-WEB")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/job/build-web/", rec.Header().Get("Location"))
}

func TestSuggestServedFromCache(t *testing.T) {
	c, err := cache.New(cache.Config{MaxEntries: 8, TTL: time.Minute})
	require.NoError(t, err)
	s := newTestServer(t, api.Options{Cache: c})

	first := doGet(s, "/search/suggest?query=deploy")
	require.Equal(t, http.StatusOK, first.Code)

	// The response must now be cached under the raw query.
	payload, _, hit := c.Get(context.Background(), "deploy")
	require.True(t, hit)
	assert.JSONEq(t, first.Body.String(), string(payload))

	second := doGet(s, "/search/suggest?query=deploy")
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestCacheMissCountsDeepestTier(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c, err := cache.New(cache.Config{
		MaxEntries: 8,
		TTL:        time.Minute,
		RedisURL:   "redis://" + mr.Addr(),
	})
	require.NoError(t, err)
	defer c.Close()

	m := observability.NewMetrics(prometheus.NewRegistry())
	s := newTestServer(t, api.Options{Cache: c, Metrics: m})

	rec := doGet(s, "/search/suggest?query=deploy")
	require.Equal(t, http.StatusOK, rec.Code)

	// Both tiers were consulted, so the miss belongs to Redis, not L1.
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("redis")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("l1")))

	rec = doGet(s, "/search/suggest?query=deploy")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("l1")))
}

func setupHistory(t *testing.T) *history.Recorder {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rec := history.NewRecorder(db, "sqlite3")
	require.NoError(t, rec.InitSchema(context.Background()))
	return rec
}

func TestSearchesAreRecorded(t *testing.T) {
	recorder := setupHistory(t)
	s := newTestServer(t, api.Options{History: recorder})

	doGet(s, "/search?q=build-web")
	doGet(s, "/search?q=build-web")
	doGet(s, "/search/suggest?query=deploy")

	stats, err := recorder.TopQueries(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "build-web", stats[0].Query)
	assert.Equal(t, 2, stats[0].Searches)
}

func TestTopQueriesEndpoint(t *testing.T) {
	recorder := setupHistory(t)
	s := newTestServer(t, api.Options{History: recorder})

	doGet(s, "/search?q=build-web")

	rec := doGet(s, "/search/history/top?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TopQueriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Queries, 1)
	assert.Equal(t, "build-web", resp.Queries[0].Query)
	assert.Equal(t, 1, resp.Queries[0].Searches)
}
