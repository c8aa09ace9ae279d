package rtc

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/frudas24/zoomkit/internal/control"
	"github.com/frudas24/zoomkit/internal/editor"
	"github.com/frudas24/zoomkit/internal/logx"
	"github.com/frudas24/zoomkit/internal/session"
)

// GestureHandler applies control messages from the data channel to ed and
// answers with the resulting state.
func GestureHandler(sess *session.Session, ed *editor.Editor, log *zap.Logger) Handler {
	log = logx.OrNop(log)
	return func(data []byte) []byte {
		var msg control.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug("bad gesture payload", zap.Error(err))
			return encode(control.ErrorMessage{T: control.TypeError, Error: err.Error()})
		}
		switch msg.T {
		case control.TypeState:
			return encode(control.StateMessage{T: control.TypeState, State: ed.State()})
		case control.TypeInputEnabled:
			if msg.Enabled != nil {
				sess.SetInputEnabled(*msg.Enabled)
			}
			return nil
		}
		if !sess.InputEnabled() {
			return nil
		}
		if err := ed.Handle(msg.Command); err != nil {
			log.Debug("command rejected", zap.String("editor", ed.ID()), zap.String("cmd", msg.T), zap.Error(err))
			return encode(control.ErrorMessage{T: control.TypeError, Cmd: msg.T, Error: err.Error()})
		}
		return encode(control.StateMessage{T: control.TypeState, State: ed.State()})
	}
}

// encode marshals v, returning nil on failure.
func encode(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
