// Package control carries gesture commands over a websocket.
package control

import "github.com/frudas24/zoomkit/internal/editor"

// Control-only message types. Every other type is an editor command.
const (
	TypeInputEnabled = "inputEnabled"
	TypeState        = "state"
	TypeError        = "error"
)

// Message is a control websocket payload sent by the client.
type Message struct {
	editor.Command
	Enabled *bool `json:"enabled,omitempty"`
}

// StateMessage pushes an editor snapshot to the client.
type StateMessage struct {
	T     string       `json:"t"`
	State editor.State `json:"state"`
}

// ErrorMessage reports a rejected command without closing the connection.
type ErrorMessage struct {
	T     string `json:"t"`
	Cmd   string `json:"cmd,omitempty"`
	Error string `json:"error"`
}
