package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoArmGo/CommunityApp/internal/auth"
	"github.com/GoArmGo/CommunityApp/internal/metrics"
	"github.com/GoArmGo/CommunityApp/internal/ratelimit"
	"github.com/GoArmGo/CommunityApp/internal/usecase"
)

// RouterDeps зависимости HTTP-слоя
type RouterDeps struct {
	Profile  usecase.ProfileUseCase
	Boards   usecase.BoardUseCase
	Comments usecase.CommentUseCase
	Files    usecase.FileUseCase

	Tokens   TokenVerifier
	Resolver *auth.Resolver
	Limiter  ratelimit.Limiter
	Metrics  *metrics.Metrics

	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// NewRouter собирает chi-роутер со всеми маршрутами API
func NewRouter(d RouterDeps) http.Handler {
	profileHandler := NewProfileHandler(d.Profile, d.Files, d.Logger)
	boardHandler := NewBoardHandler(d.Boards, d.Comments, d.Logger)
	fileHandler := NewFileHandler(d.Files, d.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}

	r.Get("/healthz", Health(d.Logger))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	limit := RateLimit(d.Limiter, d.Metrics, d.Logger)
	requireAuth := RequireAuth(d.Tokens, d.Resolver, d.Logger)

	// публичные маршруты, лимит по IP
	r.Group(func(r chi.Router) {
		r.Use(limit)

		r.Post("/join", profileHandler.Join)
		r.Post("/login", profileHandler.Login)

		r.Get("/api/boards", boardHandler.List)
		r.Get("/api/boards/{boardId}", boardHandler.Get)
		r.Get("/api/{boardId}/comments", boardHandler.ListComments)
		r.Get("/api/users/{userId}", profileHandler.GetByID)
		r.Get("/api/s3/download-url", fileHandler.DownloadURL)
	})

	// маршруты с токеном, лимит по пользователю
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(limit)

		r.Post("/api/boards", boardHandler.Create)
		r.Get("/api/boards/saved", boardHandler.ListSaved)
		r.Put("/api/boards/{boardId}", boardHandler.Update)
		r.Post("/api/{boardId}/comments", boardHandler.SaveComment)

		r.Get("/api/users/me", profileHandler.GetMe)
		r.Put("/api/users/me", profileHandler.UpdateMe)
		r.Post("/api/users/me/image", profileHandler.UploadImage)

		r.Get("/api/s3/upload-url", fileHandler.UploadURL)
	})

	return r
}
