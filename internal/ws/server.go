package ws

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"group-order-client/internal/config"
	"group-order-client/internal/middleware"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

type Server struct {
	Logger *zap.Logger
	Config config.Config

	upgrader websocket.Upgrader
}

func New(logger *zap.Logger, cfg config.Config) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &Server{Logger: logger, Config: cfg}
	srv.upgrader = websocket.Upgrader{CheckOrigin: srv.checkOrigin}
	return srv
}

// checkOrigin accepts same-host pages, configured CORS origins and, in
// development, anything.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || s.Config.IsDevelopment() {
		return true
	}
	for _, allowed := range s.Config.CorsAllowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

type viewClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *viewClient) writeJSON(value any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(value)
}

func (c *viewClient) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// ViewWS streams the view-session's view: the current one on connect, then one
// message per completed command.
func (s *Server) ViewWS(w http.ResponseWriter, r *http.Request) {
	vs, ok := middleware.GetViewSession(r.Context())
	if !ok {
		http.Error(w, "view session not found", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	logger := s.Logger.With(zap.String("viewSession", vs.ID))
	client := &viewClient{conn: conn}
	views, unsubscribe := vs.Controller.Subscribe()
	defer unsubscribe()

	if err := client.writeJSON(map[string]any{"type": "view.snapshot", "data": vs.Controller.Snapshot()}); err != nil {
		return
	}
	logger.Debug("view stream opened")

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	heartbeat := s.Config.WSHeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-clientClosed:
			logger.Debug("view stream closed")
			return
		case <-r.Context().Done():
			return
		case view, open := <-views:
			if !open {
				return
			}
			if err := client.writeJSON(map[string]any{"type": "view.updated", "data": view}); err != nil {
				logger.Debug("view stream write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := client.ping(); err != nil {
				return
			}
		}
	}
}
