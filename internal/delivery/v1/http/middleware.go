package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
)

const (
	SessionHeader   = "X-Session-ID"
	maxSessionIDLen = 128
)

type ctxKey int

const (
	sessionKey ctxKey = iota
	userKey
	tokenKey
)

// SessionMiddleware привязывает запрос к анонимной сессии корзины.
// Если клиент не прислал X-Session-ID, выдаётся новый идентификатор в ответном заголовке.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
		if len(sessionID) > maxSessionIDLen {
			WriteError(w, e.ErrSessionRequired)
			return
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		w.Header().Set(SessionHeader, sessionID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sessionID)))
	})
}

func sessionFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}

type AuthMiddleware struct {
	authUC usecase.AuthUC
	logger logger.Logger
}

func NewAuthMiddleware(authUC usecase.AuthUC, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC, logger: logger}
}

// RequireUser пропускает только запросы с действующим Bearer-токеном.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			WriteError(w, e.ErrUnauthorized)
			return
		}

		user, err := m.authUC.Authenticate(r.Context(), token)
		if err != nil {
			m.logger.Debugf("authentication rejected: %v", err)
			WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin ставится после RequireUser.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())
		if user == nil {
			WriteError(w, e.ErrUnauthorized)
			return
		}
		if !user.IsAdmin() {
			m.logger.Warnf("non-admin access to %s by user %s", r.URL.Path, user.ID)
			WriteError(w, e.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func userFromCtx(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userKey).(*domain.User)
	return u
}

func tokenFromCtx(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "

	h := r.Header.Get("Authorization")
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}

	return strings.TrimSpace(h[len(prefix):])
}
