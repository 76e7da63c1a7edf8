package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoArmGo/CommunityApp/internal/auth"
	"github.com/GoArmGo/CommunityApp/internal/metrics"
	"github.com/GoArmGo/CommunityApp/internal/ratelimit"
)

type ctxKey int

const userIDKey ctxKey = iota

// RequestLogger логирует каждый HTTP-запрос.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// responseWriter перехватывает код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// TokenVerifier проверяет подпись и срок действия токена
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth пропускает запрос только с валидным Bearer-токеном
// и кладёт id пользователя в контекст.
func RequireAuth(verifier TokenVerifier, resolver *auth.Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, err := auth.BearerToken(header)
			if err == nil {
				_, err = verifier.Verify(token)
			}
			var userID int64
			if err == nil {
				userID, err = resolver.ResolveUserID(header)
			}
			if err != nil {
				respondWithUseCaseError(w, r, err, logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
		})
	}
}

func withUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext возвращает id пользователя, положенный RequireAuth
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// RateLimit ограничивает запросы по пользователю, а для анонимных по IP
func RateLimit(limiter ratelimit.Limiter, m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := rateLimitKey(r)
			d := limiter.Allow(r.Context(), key)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if !d.ResetAt.IsZero() {
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
			}
			if !d.Allowed {
				if m != nil {
					m.RateLimitHit(metrics.RoutePattern(r))
				}
				logger.Warn("rate limit exceeded", "key", key, "path", r.URL.Path)
				respondWithError(w, http.StatusTooManyRequests, "Слишком много запросов", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if id, ok := UserIDFromContext(r.Context()); ok {
		return "user:" + strconv.FormatInt(id, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		host = "unknown"
	}
	return "ip:" + host
}
