package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"group-order-client/internal/auth"
	"group-order-client/internal/session"

	"go.uber.org/zap"
)

type contextKey string

const viewSessionContextKey contextKey = "viewSession"

const ViewSessionCookie = "order_view"

type ViewSession struct {
	ID         string
	Controller *session.Controller
}

func WithViewSession(ctx context.Context, vs *ViewSession) context.Context {
	return context.WithValue(ctx, viewSessionContextKey, vs)
}

func GetViewSession(ctx context.Context) (*ViewSession, bool) {
	vs, ok := ctx.Value(viewSessionContextKey).(*ViewSession)
	return vs, ok && vs != nil
}

type ViewSessionOptions struct {
	Store  *session.Store
	Secret string
	TTL    time.Duration
	Secure bool
	Logger *zap.Logger
	Now    func() time.Time
}

// ViewSessionAuth attaches the browser's view-session to the request. A
// missing, invalid or expired cookie, or one naming a forgotten session,
// starts a fresh view-session; the cookie is re-issued on every request so
// its expiry slides with activity.
func ViewSessionAuth(opts ViewSessionOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			vs := lookupViewSession(r, opts)
			if vs == nil {
				id, ctrl, err := opts.Store.Create()
				if err != nil {
					logger.Error("view session create failed", zap.Error(err))
					writeSessionError(w, http.StatusInternalServerError, "Could not start a session")
					return
				}
				vs = &ViewSession{ID: id, Controller: ctrl}
				logger.Info("view session started", zap.String("viewSession", id), zap.String("requestId", GetRequestID(r.Context())))
			}

			token, err := auth.IssueViewToken(vs.ID, opts.Secret, opts.TTL, now())
			if err != nil {
				logger.Error("view session token failed", zap.Error(err))
				writeSessionError(w, http.StatusInternalServerError, "Could not start a session")
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     ViewSessionCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(opts.TTL.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(WithViewSession(r.Context(), vs)))
		})
	}
}

func lookupViewSession(r *http.Request, opts ViewSessionOptions) *ViewSession {
	cookie, err := r.Cookie(ViewSessionCookie)
	if err != nil {
		return nil
	}
	id, err := auth.VerifyViewToken(cookie.Value, opts.Secret)
	if err != nil {
		return nil
	}
	ctrl, ok := opts.Store.Get(id)
	if !ok {
		return nil
	}
	return &ViewSession{ID: id, Controller: ctrl}
}

func writeSessionError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "SESSION_ERROR",
		"message": message,
	})
}
