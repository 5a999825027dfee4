package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"filmrental-backend/internal/logger"
	"filmrental-backend/internal/security"

	"github.com/google/uuid"
)

type contextKey string

const staffIDKey contextKey = "staff-id"

// StaffIDFromContext returns the staff member the request was authenticated as.
func StaffIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(staffIDKey).(uuid.UUID)
	return id, ok
}

func withStaffID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, staffIDKey, id)
}

type route struct {
	method string
	path   string
}

// AuthMiddleware requires a valid bearer access token on every route except
// the public ones.
type AuthMiddleware struct {
	tokenManager security.TokenManager
	public       map[route]bool
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm, public: make(map[route]bool)}
}

func (m *AuthMiddleware) AllowAnonymous(method, path string) {
	m.public[route{method: method, path: path}] = true
}

func (m *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.public[route{method: r.Method, path: r.URL.Path}] {
			next.ServeHTTP(w, r)
			return
		}

		token, err := bearerToken(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}
		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: security.ErrWrongTokenType.Error()})
			return
		}

		// The authenticated staff id always replaces anything the client sent.
		next.ServeHTTP(w, r.WithContext(withStaffID(r.Context(), claims.StaffID)))
	})
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("authorization token is not provided")
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errors.New("authorization header must use the Bearer scheme")
	}
	return token, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
