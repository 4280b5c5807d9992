package api

import (
	"net/http"
	"time"

	"github.com/jaffarkeikei/InsightEd/pkg/feedback"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
	"github.com/jaffarkeikei/InsightEd/pkg/metrics"
	"github.com/jaffarkeikei/InsightEd/pkg/report"
)

// HealthHandler serves liveness and metrics.
type HealthHandler struct {
	version  string
	book     *gradebook.Book
	feedback *feedback.Service
	metrics  *metrics.Collector
	started  time.Time
}

// RegisterRoutes mounts /health and /metrics.
func (h *HealthHandler) RegisterRoutes(router *Router) {
	router.GET("/health", h.Health)
	metricsHandler := h.metrics.Handler()
	router.GET("/metrics", metricsHandler.ServeHTTP)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	Results         int    `json:"results"`
	Students        int    `json:"students"`
	FeedbackEnabled bool   `json:"feedbackEnabled"`
	Uptime          string `json:"uptime"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	}
	if h.book != nil {
		resp.Results = h.book.Len()
		resp.Students = len(h.book.StudentIDs())
	}
	if h.feedback != nil {
		resp.FeedbackEnabled = h.feedback.Enabled()
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Services are the dependencies of the API routes.
type Services struct {
	Version   string
	Generator *report.Generator
	Feedback  *feedback.Service
	Metrics   *metrics.Collector
	// Hub receives report events; nil disables /ws.
	Hub *Hub
}

// Mount registers every route on router.
func Mount(router *Router, s Services) {
	book := s.Generator.Book()
	passMark := s.Generator.Settings().PassMark

	var events EventBroadcaster = nopBroadcaster{}
	if s.Hub != nil {
		events = NewHubEventBroadcaster(s.Hub)
		NewWebSocketHandler(s.Hub).RegisterRoutes(router)
	}

	(&HealthHandler{
		version:  s.Version,
		book:     book,
		feedback: s.Feedback,
		metrics:  s.Metrics,
		started:  time.Now(),
	}).RegisterRoutes(router)
	NewStudentsHandler(book, passMark).RegisterRoutes(router)
	NewReportsHandler(s.Generator, events).RegisterRoutes(router)
	if s.Feedback != nil {
		NewFeedbackHandler(book, s.Feedback, passMark, events).RegisterRoutes(router)
	}
}
