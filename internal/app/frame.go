package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/frudas24/zoomkit/internal/editor"
	"github.com/frudas24/zoomkit/internal/geom"
	"github.com/frudas24/zoomkit/internal/imgcrop"
)

// Run drives the frame loop until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(max(a.cfg.FPS, 1))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			a.Frame(now.Sub(last))
			last = now
		}
	}
}

// Frame advances every editor by dt, pushes changed state and refreshes the preview.
func (a *App) Frame(dt time.Duration) {
	for _, ed := range a.session.Editors() {
		ed.Tick(dt)
	}
	if err := a.control.FlushPending(); err != nil {
		a.log.Debug("flush pending sample", zap.Error(err))
	}
	if err := a.control.Publish(); err != nil {
		a.log.Debug("publish state", zap.Error(err))
	}
	a.refreshPreview()
}

// refreshPreview renders the attached crop editor into the MJPEG stream when it changed.
func (a *App) refreshPreview() {
	if a.previewStream == nil {
		return
	}
	id, ok := a.control.Attached()
	if !ok {
		return
	}
	ed, ok := a.session.Editor(id)
	if !ok {
		return
	}

	a.mu.Lock()
	src := a.source
	seen, rendered := a.previewVersion[id]
	quality := a.cfg.MJPEGQuality
	a.mu.Unlock()
	if src == nil {
		return
	}

	v := ed.Version()
	if rendered && seen == v {
		return
	}
	if err := a.renderPreview(ed, quality); err != nil {
		a.log.Debug("preview render", zap.String("editor", id), zap.Error(err))
		return
	}
	a.mu.Lock()
	a.previewVersion[id] = v
	a.mu.Unlock()
}

// renderPreview publishes what the crop box of ed currently shows.
func (a *App) renderPreview(ed *editor.Editor, quality int) error {
	cfg, ok := ed.CropConfig()
	if !ok {
		return nil
	}
	st := ed.State()
	if st.Crop == nil {
		return nil
	}
	container := geom.Sz(st.Crop.Width, st.Crop.Height)
	img := imgcrop.Viewport(a.Source(), st.Crop.Matrix(), container, cfg.CropSize)
	return a.previewStream.PublishImage(img, quality)
}
