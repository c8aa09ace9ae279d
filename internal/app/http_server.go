package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/frudas24/zoomkit/internal/editor"
	"github.com/frudas24/zoomkit/internal/session"
)

// RegisterRoutes wires API and websocket handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/editors", a.handleEditors)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/crop", a.handleCrop)
	mux.HandleFunc("/api/crop/save", a.handleCropSave)
	mux.HandleFunc("/api/config", a.handleConfig)
	mux.Handle("/ws/signal", a.Signaling())
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)
	if stream := a.PreviewStream(); stream != nil {
		mux.HandleFunc("/mjpeg/preview", a.requireAuthFunc(stream.Handler))
		mux.HandleFunc("/mjpeg/preview.jpg", a.requireAuthFunc(stream.FrameHandler))
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type editorRequest struct {
	Profile string `json:"profile"`
}

type editorResponse struct {
	ID      string       `json:"id"`
	Kind    editor.Kind  `json:"kind"`
	Profile string       `json:"profile"`
	State   editor.State `json:"state"`
}

type stateResponse struct {
	session.Snapshot
	Profiles []string `json:"profiles"`
}

type configRequest struct {
	MJPEGIntervalMs *int `json:"mjpegIntervalMs,omitempty"`
	MJPEGQuality    *int `json:"mjpegQuality,omitempty"`
	Reset           bool `json:"reset,omitempty"`
}

type configResponse struct {
	Applied         bool `json:"applied"`
	MJPEGIntervalMs int  `json:"mjpegIntervalMs"`
	MJPEGQuality    int  `json:"mjpegQuality"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	writeJSON(w, map[string]bool{"ok": true})
}

// handleEditors creates an editor from a profile or removes one.
func (a *App) handleEditors(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	switch r.Method {
	case http.MethodPost:
		var req editorRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
		}
		ed, err := a.CreateEditor(req.Profile)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, ErrUnknownProfile) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		a.mu.Lock()
		name := a.profileOf[ed.ID()]
		a.mu.Unlock()
		writeJSONStatus(w, http.StatusCreated, editorResponse{ID: ed.ID(), Kind: ed.Kind(), Profile: name, State: ed.State()})
	case http.MethodDelete:
		if !a.RemoveEditor(r.URL.Query().Get("id")) {
			http.Error(w, "unknown editor", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]bool{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleState returns the session state, or one editor's state when id is given.
func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, stateResponse{Snapshot: a.session.Snapshot(), Profiles: a.profiles.Names()})
		return
	}
	ed, ok := a.session.Editor(id)
	if !ok {
		http.Error(w, "unknown editor", http.StatusNotFound)
		return
	}
	writeJSON(w, ed.State())
}

// handleCrop returns the current crop of an editor.
func (a *App) handleCrop(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	ed, fixedWidth, ok := a.cropTarget(w, r)
	if !ok {
		return
	}
	res, err := ed.Crop(fixedWidth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, res)
}

// handleCropSave persists the current crop of an editor.
func (a *App) handleCropSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !a.requireAuth(w) {
		return
	}
	ed, fixedWidth, ok := a.cropTarget(w, r)
	if !ok {
		return
	}
	entry, err := a.SaveCrop(ed.ID(), fixedWidth)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, editor.ErrUnsupported) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, entry)
}

// cropTarget resolves the editor and fixedWidth query parameters.
func (a *App) cropTarget(w http.ResponseWriter, r *http.Request) (*editor.Editor, float64, bool) {
	q := r.URL.Query()
	ed, ok := a.session.Editor(q.Get("id"))
	if !ok {
		http.Error(w, "unknown editor", http.StatusNotFound)
		return nil, 0, false
	}
	fixedWidth, err := parseFixedWidth(q.Get("fixedWidth"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, 0, false
	}
	return ed, fixedWidth, true
}

// handleConfig updates preview settings at runtime.
func (a *App) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req configRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	interval, quality := a.cfg.MJPEGIntervalMs, a.cfg.MJPEGQuality
	if req.Reset {
		interval, quality = a.defaultMJPEG.intervalMs, a.defaultMJPEG.quality
	}
	if req.MJPEGIntervalMs != nil {
		interval = *req.MJPEGIntervalMs
	}
	if req.MJPEGQuality != nil {
		quality = *req.MJPEGQuality
	}
	if err := validatePreview(interval, quality); err != nil {
		a.mu.Unlock()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a.cfg.MJPEGIntervalMs, a.cfg.MJPEGQuality = interval, quality
	clear(a.previewVersion)
	a.mu.Unlock()

	if a.previewStream != nil {
		a.previewStream.SetMinInterval(time.Duration(interval) * time.Millisecond)
	}
	writeJSON(w, configResponse{Applied: true, MJPEGIntervalMs: interval, MJPEGQuality: quality})
}

// validatePreview checks preview settings.
func validatePreview(intervalMs, quality int) error {
	if intervalMs != 0 && (intervalMs < 16 || intervalMs > 5000) {
		return fmt.Errorf("mjpegIntervalMs must be 0 or 16-5000")
	}
	if quality < 1 || quality > 100 {
		return fmt.Errorf("mjpegQuality must be 1-100")
	}
	return nil
}

// parseFixedWidth parses an optional positive width; empty means none.
func parseFixedWidth(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("fixedWidth must be a non-negative number")
	}
	return v, nil
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// requireAuthFunc wraps h with the session check.
func (a *App) requireAuthFunc(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.requireAuth(w) {
			return
		}
		h(w, r)
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

// writeJSONStatus encodes v as the response body with status.
func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
