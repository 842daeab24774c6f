package httpapi

import (
	"net/http"

	"group-order-client/internal/config"
	"group-order-client/internal/http/handlers"
	"group-order-client/internal/middleware"
	"group-order-client/internal/session"
	"group-order-client/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(logger *zap.Logger, cfg config.Config, store *session.Store, h *handlers.Handler, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Telemetry(logger))

	if cfg.IsDevelopment() || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Content-Type",
				"X-Requested-With",
				"X-Request-Id",
				"Cache-Control",
				"Pragma",
			},
			AllowCredentials: true,
			MaxAge:           300,
		}

		if cfg.IsDevelopment() {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}

		r.Use(cors.Handler(options))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.ViewSessionAuth(middleware.ViewSessionOptions{
			Store:  store,
			Secret: cfg.SessionSecret,
			TTL:    cfg.SessionTTL,
			Secure: cfg.SessionCookieSecure,
			Logger: logger,
		}))

		r.Get("/ws/view", wsServer.ViewWS)
		r.Get("/api/view", h.View)

		r.Group(func(r chi.Router) {
			r.Use(setResponseHeader("X-Frame-Options", "DENY"))

			r.Get("/", h.Index)
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)

			r.Post("/orders", h.CreateOrder)
			r.Post("/orders/join", h.JoinOrder)
			r.Get("/orders/leave", h.LeaveOrderConfirm)
			r.Post("/orders/leave", h.LeaveOrder)
			r.Post("/menu/reload", h.ReloadMenu)

			r.Post("/cart/add", h.AddToCart)
			r.Post("/cart/quantity", h.UpdateQuantity)
			r.Post("/cart/remove", h.RemoveFromCart)

			r.Get("/receipt", h.Receipt)
			r.Get("/receipt.pdf", h.ReceiptPDF)
			r.Post("/receipt/archive", h.ArchiveReceipt)
		})
	})

	return r
}

func setResponseHeader(name string, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(name, value)
			next.ServeHTTP(w, r)
		})
	}
}
