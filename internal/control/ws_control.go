package control

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/frudas24/zoomkit/internal/editor"
	"github.com/frudas24/zoomkit/internal/logx"
	"github.com/frudas24/zoomkit/internal/session"
)

// ErrBusy is returned when a control connection is already attached.
var ErrBusy = errors.New("control connection already active")

// Server handles websocket control input for one editor at a time.
type Server struct {
	mu sync.Mutex
	// applyMu orders throttle decisions and their dispatch; taken before mu.
	applyMu  sync.Mutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	log      *zap.Logger
	throttle *Throttle
	conn     *websocket.Conn
	editor   *editor.Editor
	sent     uint64
	hasSent  bool
}

// NewServer creates a control websocket server.
func NewServer(sess *session.Session, log *zap.Logger) *Server {
	log = logx.OrNop(log)
	return &Server{
		session:  sess,
		log:      log,
		throttle: NewThrottle(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Throttle exposes the sample throttle, mainly for tests.
func (s *Server) Throttle() *Throttle {
	return s.throttle
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := r.URL.Query().Get("id")
	ed, ok := s.session.Editor(id)
	if !ok {
		http.Error(w, "unknown editor", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn, ed); err != nil {
		s.log.Warn("control connection rejected", zap.String("editor", id), zap.Error(err))
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)
	s.log.Info("control connected", zap.String("editor", id))

	if err := s.push(conn, ed.State()); err != nil {
		return
	}
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			s.log.Debug("control read ended", zap.String("editor", id), zap.Error(err))
			return
		}
		if err := s.handleMessage(conn, ed, msg); err != nil {
			s.log.Debug("control write failed", zap.String("editor", id), zap.Error(err))
			return
		}
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn, ed *editor.Editor) error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return ErrBusy
	}
	s.conn = conn
	s.editor = ed
	s.sent, s.hasSent = 0, false
	s.throttle.Reset()
	return nil
}

// cleanupConn clears the active connection when closed.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
		s.editor = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
}

// handleMessage dispatches a single control message.
func (s *Server) handleMessage(conn *websocket.Conn, ed *editor.Editor, msg Message) error {
	switch msg.T {
	case TypeInputEnabled:
		if msg.Enabled != nil {
			s.session.SetInputEnabled(*msg.Enabled)
		}
		return nil
	case TypeState:
		return s.push(conn, ed.State())
	}

	if !s.session.InputEnabled() {
		return nil
	}
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	return s.apply(conn, ed, s.throttle.Filter(msg.Command))
}

// apply runs cmds against ed and pushes the resulting state. Callers hold
// applyMu.
func (s *Server) apply(conn *websocket.Conn, ed *editor.Editor, cmds []editor.Command) error {
	if len(cmds) == 0 {
		return nil
	}
	for _, cmd := range cmds {
		if err := ed.Handle(cmd); err != nil {
			s.log.Debug("command rejected", zap.String("editor", ed.ID()), zap.String("cmd", cmd.T), zap.Error(err))
			if werr := s.writeJSON(conn, ErrorMessage{T: TypeError, Cmd: cmd.T, Error: err.Error()}); werr != nil {
				return werr
			}
		}
	}
	return s.push(conn, ed.State())
}

// FlushPending applies a sample the throttle is still holding.
func (s *Server) FlushPending() error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	conn, ed := s.conn, s.editor
	s.mu.Unlock()
	if conn == nil {
		return nil
	}
	return s.apply(conn, ed, s.throttle.Flush())
}

// Publish pushes the attached editor's state if it changed since the last push.
func (s *Server) Publish() error {
	s.mu.Lock()
	conn, ed := s.conn, s.editor
	s.mu.Unlock()
	if conn == nil {
		return nil
	}
	st := ed.State()
	s.mu.Lock()
	stale := s.hasSent && st.Version <= s.sent
	s.mu.Unlock()
	if stale {
		return nil
	}
	return s.push(conn, st)
}

// Attached returns the id of the editor bound to the active connection.
func (s *Server) Attached() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return "", false
	}
	return s.editor.ID(), true
}

// push sends st and records its version.
func (s *Server) push(conn *websocket.Conn, st editor.State) error {
	if err := s.writeJSON(conn, StateMessage{T: TypeState, State: st}); err != nil {
		return fmt.Errorf("push state: %w", err)
	}
	s.mu.Lock()
	if s.conn == conn && (!s.hasSent || st.Version > s.sent) {
		s.sent, s.hasSent = st.Version, true
	}
	s.mu.Unlock()
	return nil
}

// writeJSON serializes writes on conn.
func (s *Server) writeJSON(conn *websocket.Conn, v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteJSON(v)
}
