package server_test

import (
	"encoding/json"
	"errors"
	"hws_news/internal/feed"
	"hws_news/internal/metrics"
	"hws_news/internal/models"
	"hws_news/internal/server"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func newsItem(id int, published time.Time) models.NewsItem {
	return models.NewsItem{
		ID:            id,
		Title:         "Test Title",
		Strap:         "Test Strap",
		URL:           models.MustParseURL("https://example.com/news"),
		MainImage:     models.MustParseURL("https://example.com/news.jpg"),
		PublishedDate: published,
	}
}

func setupServer(t *testing.T) (*feed.Store, http.Handler) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	store := feed.NewStore()
	base := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	store.Apply(feed.Update{Page: 1, Added: 3, Items: []models.NewsItem{
		newsItem(3, base),
		newsItem(2, base.Add(-24*time.Hour)),
		newsItem(1, base.Add(-48*time.Hour)),
	}})

	return store, server.NewServer(store, m, reg).Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetNews(t *testing.T) {
	_, h := setupServer(t)

	testCases := []struct {
		name    string
		target  string
		wantIDs []int
	}{
		{"limit", "/api/news/2", []int{3, 2}},
		{"no limit", "/api/news", []int{3, 2, 1}},
		{"invalid limit", "/api/news/abc", []int{3, 2, 1}},
		{"huge limit", "/api/news/1000", []int{3, 2, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(t, h, tc.target)
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body []map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

			var ids []int
			for _, n := range body {
				ids = append(ids, int(n["id"].(float64)))
			}
			require.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestGetNews_Fields(t *testing.T) {
	_, h := setupServer(t)
	w := get(t, h, "/api/news/1")

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, "Test Title", body[0]["title"])
	require.Equal(t, "https://example.com/news", body[0]["url"])
	require.Equal(t, "https://example.com/news.jpg", body[0]["main_image"])
	require.Equal(t, "2024-01-03T00:00:00Z", body[0]["published_date"])
}

func TestGetNews_Empty(t *testing.T) {
	h := server.NewServer(feed.NewStore(), nil, nil).Handler()
	w := get(t, h, "/api/news")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestGetNewNewsCount(t *testing.T) {
	_, h := setupServer(t)

	w := get(t, h, "/api/news/count?since=2024-01-01T12:00:00Z")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"count": 2}`, w.Body.String())

	w = get(t, h, "/api/news/count?since=yesterday")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthCheck(t *testing.T) {
	store, h := setupServer(t)

	w := get(t, h, "/health")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	store.Finish(errors.New("page 2: network error"))
	w = get(t, h, "/health")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	store.Finish(nil)
	w = get(t, h, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := setupServer(t)
	get(t, h, "/health")

	w := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "hws_news_http_requests_total")
	require.Contains(t, w.Body.String(), "hws_news_merged_items")
}

func TestRequestIDHeader(t *testing.T) {
	_, h := setupServer(t)
	w := get(t, h, "/api/news")
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
