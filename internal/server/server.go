package server

import (
	"encoding/json"
	"hws_news/internal/feed"
	"hws_news/internal/logger"
	"hws_news/internal/metrics"
	"hws_news/internal/middleware"
	"hws_news/internal/models"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Server хранит зависимости HTTP-обработчиков: снимок ленты и метрики.
type Server struct {
	store    *feed.Store
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

// NewServer создаёт новый экземпляр Server поверх хранилища store.
func NewServer(store *feed.Store, m *metrics.Metrics, gatherer prometheus.Gatherer) *Server {
	return &Server{store: store, metrics: m, gatherer: gatherer}
}

// Handler собирает маршруты и оборачивает их в middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/news/count", s.GetNewNewsCount)
	mux.HandleFunc("GET /api/news/{limit}", s.GetNews)
	mux.HandleFunc("GET /api/news", s.GetNews)
	mux.HandleFunc("GET /health", s.HealthCheck)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(s.metrics)(handler)
	handler = middleware.RequestIDMiddleware(handler)
	return handler
}

// HealthCheck отвечает 200 OK, если загрузка завершилась без ошибок, иначе 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := s.store.Status()
	if !status.Done {
		http.Error(w, "Feed loading", http.StatusServiceUnavailable)
		return
	}
	if status.Err != nil {
		http.Error(w, "Feed incomplete", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("OK"))
}

// newsItemResponse — представление новости в ответе API.
type newsItemResponse struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Strap     string `json:"strap"`
	URL       string `json:"url"`
	MainImage string `json:"main_image"`
	Published string `json:"published_date"`
}

func toResponse(item models.NewsItem) newsItemResponse {
	return newsItemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Strap:     item.Strap,
		URL:       item.URL.String(),
		MainImage: item.MainImage.String(),
		Published: item.PublishedDate.UTC().Format(time.RFC3339),
	}
}

// GetNews возвращает JSON-массив последних limit новостей, отсортированных по дате.
func (s *Server) GetNews(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.PathValue("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	items := s.store.Latest(limit)
	news := make([]newsItemResponse, 0, len(items))
	for _, item := range items {
		news = append(news, toResponse(item))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(news); err != nil {
		logger.Log.WithError(err).Error("Failed to encode news response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// GetNewNewsCount возвращает JSON {"count": N} с количеством новостей,
// опубликованных после времени since в параметре запроса.
func (s *Server) GetNewNewsCount(w http.ResponseWriter, r *http.Request) {
	lastUpdate, err := time.Parse(time.RFC3339, r.URL.Query().Get("since"))
	if err != nil {
		http.Error(w, "Invalid time format", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"count": s.store.CountSince(lastUpdate)})
}
