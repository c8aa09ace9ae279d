// Package app wires HTTP, websocket transports, and the frame loop together.
package app

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/frudas24/zoomkit/internal/config"
	"github.com/frudas24/zoomkit/internal/control"
	"github.com/frudas24/zoomkit/internal/editor"
	"github.com/frudas24/zoomkit/internal/imgcrop"
	"github.com/frudas24/zoomkit/internal/logx"
	"github.com/frudas24/zoomkit/internal/mjpeg"
	"github.com/frudas24/zoomkit/internal/rtc"
	"github.com/frudas24/zoomkit/internal/session"
	"github.com/frudas24/zoomkit/internal/store"
)

// ErrUnknownProfile is returned when an editor is requested for a missing profile.
var ErrUnknownProfile = errors.New("unknown profile")

// mjpegDefaults keeps the preview settings captured at startup.
type mjpegDefaults struct {
	intervalMs int
	quality    int
}

// App coordinates the HTTP API, websocket servers, and editors.
type App struct {
	mu           sync.Mutex
	cfg          config.Config
	defaultMJPEG mjpegDefaults
	log          *zap.Logger
	session      *session.Session
	profiles     config.Profiles
	store        *store.Store
	control      *control.Server
	signaling    *rtc.Server

	previewStream  *mjpeg.Stream
	source         image.Image
	profileOf      map[string]string
	previewVersion map[string]uint64
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, profiles config.Profiles, st *store.Store, api *rtc.API, log *zap.Logger) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if st == nil {
		return nil, errors.New("store is required")
	}
	if api == nil {
		return nil, errors.New("rtc api is required")
	}
	log = logx.OrNop(log)
	if profiles == nil {
		profiles = config.Profiles{config.DefaultProfile: config.BuiltinProfile()}
	}

	app := &App{
		cfg: cfg,
		defaultMJPEG: mjpegDefaults{
			intervalMs: cfg.MJPEGIntervalMs,
			quality:    cfg.MJPEGQuality,
		},
		log:            log,
		session:        sess,
		profiles:       profiles,
		store:          st,
		profileOf:      make(map[string]string),
		previewVersion: make(map[string]uint64),
	}
	app.control = control.NewServer(sess, log.Named("control"))
	app.signaling = rtc.NewServer(api, sess, rtc.PeerReplace, log.Named("rtc"))
	if cfg.MJPEGEnabled {
		app.previewStream = mjpeg.NewStream(time.Duration(cfg.MJPEGIntervalMs) * time.Millisecond)
	}
	return app, nil
}

// Start loads the source image when one is configured.
func (a *App) Start() error {
	if a.cfg.ImagePath == "" {
		a.log.Info("no source image configured; crop profiles need an explicit resolution")
		return nil
	}
	img, err := imgcrop.Open(a.cfg.ImagePath)
	if err != nil {
		return err
	}
	a.SetSource(img)
	size := imgcrop.SizeOf(img)
	a.log.Info("source image loaded",
		zap.String("path", a.cfg.ImagePath),
		zap.Float64("width", size.Width),
		zap.Float64("height", size.Height),
	)
	return nil
}

// SetSource replaces the decoded source image.
func (a *App) SetSource(img image.Image) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.source = img
	clear(a.previewVersion)
}

// Source returns the decoded source image, if any.
func (a *App) Source() image.Image {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.source
}

// CreateEditor builds an editor from the named profile and registers it.
func (a *App) CreateEditor(name string) (*editor.Editor, error) {
	if name == "" {
		name = config.DefaultProfile
	}
	p, ok := a.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownProfile)
	}
	if editor.Kind(p.Kind) == editor.KindCrop && !validSize(p.Resolution.Width, p.Resolution.Height) {
		if src := a.Source(); src != nil {
			p.Resolution = imgcrop.SizeOf(src)
		}
	}
	ed, err := editor.FromProfile(p)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	a.session.AddEditor(ed)
	a.mu.Lock()
	a.profileOf[ed.ID()] = name
	a.mu.Unlock()
	a.log.Info("editor created", zap.String("id", ed.ID()), zap.String("profile", name), zap.String("kind", string(ed.Kind())))
	return ed, nil
}

// RemoveEditor drops an editor and its bookkeeping.
func (a *App) RemoveEditor(id string) bool {
	if !a.session.RemoveEditor(id) {
		return false
	}
	a.mu.Lock()
	delete(a.profileOf, id)
	delete(a.previewVersion, id)
	a.mu.Unlock()
	return true
}

// SaveCrop resolves the crop of editor id and persists it.
func (a *App) SaveCrop(id string, fixedWidth float64) (store.Entry, error) {
	ed, ok := a.session.Editor(id)
	if !ok {
		return store.Entry{}, fmt.Errorf("editor %q not found", id)
	}
	r, err := ed.Crop(fixedWidth)
	if err != nil {
		return store.Entry{}, err
	}
	a.mu.Lock()
	entry := store.Entry{Profile: a.profileOf[id], Result: r}
	a.mu.Unlock()
	if err := a.store.Put(id, entry); err != nil {
		return store.Entry{}, err
	}
	return entry, nil
}

// Signaling returns the signaling websocket handler.
func (a *App) Signaling() *rtc.Server {
	return a.signaling
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

// PreviewStream returns the MJPEG preview stream, or nil when disabled.
func (a *App) PreviewStream() *mjpeg.Stream {
	return a.previewStream
}

// validSize reports whether both dimensions are positive.
func validSize(w, h float64) bool {
	return w > 0 && h > 0
}
