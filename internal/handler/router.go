package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	aiHandler "github.com/zhouzirui/interview-prep/backend/internal/handler/ai"
	eventsHandler "github.com/zhouzirui/interview-prep/backend/internal/handler/events"
	questionHandler "github.com/zhouzirui/interview-prep/backend/internal/handler/question"
	sessionHandler "github.com/zhouzirui/interview-prep/backend/internal/handler/session"
	middlewarePkg "github.com/zhouzirui/interview-prep/backend/internal/middleware"
	aiService "github.com/zhouzirui/interview-prep/backend/internal/service/ai"
	"github.com/zhouzirui/interview-prep/backend/internal/service/events"
	questionService "github.com/zhouzirui/interview-prep/backend/internal/service/question"
	sessionService "github.com/zhouzirui/interview-prep/backend/internal/service/session"
)

// Services bundles what the router needs. Gateway may be nil when no AI provider is configured.
type Services struct {
	Sessions  *sessionService.Service
	Questions *questionService.Service
	Gateway   *aiService.Gateway
	Hub       *events.Hub
}

// NewRouter wires HTTP routes to core services.
func NewRouter(svc Services, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middlewarePkg.Authenticate(jwtSecret))

		aiHandler.New(svc.Gateway).RegisterRoutes(api)
		sessionHandler.New(svc.Sessions).RegisterRoutes(api)
		questionHandler.New(svc.Questions, svc.Sessions).RegisterRoutes(api)

		if svc.Hub != nil {
			eventsHandler.NewWebSocketHandler(svc.Sessions, svc.Hub).RegisterRoutes(api)
			eventsHandler.NewStreamHandler(svc.Sessions, svc.Hub).RegisterRoutes(api)
		}
	})

	return r
}
