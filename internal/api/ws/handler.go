package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/aurora/internal/infrastructure/logging"
	"github.com/GriffinCanCode/aurora/internal/shared/id"
	"github.com/GriffinCanCode/aurora/internal/shell"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 64 * 1024
)

// Message is the envelope for both directions.
type Message struct {
	Type    string           `json:"type"`
	Line    string           `json:"line,omitempty"`
	Key     string           `json:"key,omitempty"`
	Ctrl    bool             `json:"ctrl,omitempty"`
	Message string           `json:"message,omitempty"`
	Session *shell.Info      `json:"session,omitempty"`
	Result  *shell.Result    `json:"result,omitempty"`
	Keys    *shell.KeyResult `json:"keys,omitempty"`
	Input   *shell.LineState `json:"input,omitempty"`
}

// Recorder receives connection and message counts.
type Recorder interface {
	RecordWSMessage(direction, msgType string)
	IncWSConnections()
	DecWSConnections()
}

type nopRecorder struct{}

func (nopRecorder) RecordWSMessage(string, string) {}
func (nopRecorder) IncWSConnections()              {}
func (nopRecorder) DecWSConnections()              {}

// Option configures a Handler.
type Option func(*Handler)

// WithMetrics reports traffic to r.
func WithMetrics(r Recorder) Option {
	return func(h *Handler) { h.metrics = r }
}

// WithKeepalive sets how often the server pings and how long it waits for a pong.
func WithKeepalive(ping, wait time.Duration) Option {
	return func(h *Handler) {
		h.pingPeriod = ping
		h.pongWait = wait
	}
}

// WithCheckOrigin replaces the upgrade origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(h *Handler) { h.upgrader.CheckOrigin = fn }
}

// Handler manages WebSocket connections
type Handler struct {
	sessions *shell.Manager
	shell    *shell.Interpreter
	logger   *logging.Logger
	metrics  Recorder
	upgrader websocket.Upgrader

	pingPeriod time.Duration
	pongWait   time.Duration
}

// NewHandler creates a new WebSocket handler
func NewHandler(sessions *shell.Manager, interp *shell.Interpreter, logger *logging.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	h := &Handler{
		sessions:   sessions,
		shell:      interp,
		logger:     logger.Named("ws"),
		metrics:    nopRecorder{},
		pingPeriod: pingPeriod,
		pongWait:   pongWait,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleConnection upgrades the request and serves the session named by :id
// until the client disconnects or the session closes.
func (h *Handler) HandleConnection(c *gin.Context) {
	s, ok := h.sessions.Get(id.SessionID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	log := h.logger.With(zap.String("session", s.ID.String()))
	log.Debug("terminal stream opened")
	defer log.Debug("terminal stream closed")

	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepalive(conn, done)

	info := s.Info()
	line := h.shell.Line(s)
	if err := h.send(conn, Message{Type: "connected", Session: &info, Input: &line}); err != nil {
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
		h.metrics.RecordWSMessage("in", msg.Type)

		reply, closed := h.handle(s, msg)
		if err := h.send(conn, reply); err != nil {
			return
		}
		if closed {
			_ = h.send(conn, Message{Type: "closed"})
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
				time.Now().Add(writeWait))
			return
		}
	}
}

// keepalive pings the client until done closes or a ping fails.
func (h *Handler) keepalive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// handle turns one client message into its reply. closed reports whether the
// session ended as a result.
func (h *Handler) handle(s *shell.Session, msg Message) (reply Message, closed bool) {
	switch msg.Type {
	case "exec":
		res := h.shell.Execute(s, msg.Line)
		line := h.shell.Line(s)
		return Message{Type: "result", Result: &res, Input: &line}, res.Closed
	case "key":
		kr := h.shell.HandleKey(s, shell.KeyEvent{Key: msg.Key, Ctrl: msg.Ctrl})
		return Message{Type: "key", Keys: &kr}, s.Closed()
	case "ping":
		return Message{Type: "pong"}, false
	default:
		return Message{Type: "error", Message: "unknown message type"}, false
	}
}

func (h *Handler) send(conn *websocket.Conn, msg Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Debug("websocket write failed", zap.Error(err))
		return err
	}
	h.metrics.RecordWSMessage("out", msg.Type)
	return nil
}
