// Package editor owns one zoom widget and its animation timeline behind a
// mutex so transports and the frame loop can share it.
package editor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frudas24/zoomkit/internal/anim"
	"github.com/frudas24/zoomkit/internal/crop"
	"github.com/frudas24/zoomkit/internal/cropzoom"
	"github.com/frudas24/zoomkit/internal/gallery"
	"github.com/frudas24/zoomkit/internal/geom"
	"github.com/frudas24/zoomkit/internal/snapback"
)

// Kind names the widget an editor hosts.
type Kind string

const (
	// KindCrop hosts a cropzoom.CropZoom.
	KindCrop Kind = "crop"
	// KindGallery hosts a gallery.Gallery.
	KindGallery Kind = "gallery"
	// KindSnapBack hosts a snapback.SnapBack.
	KindSnapBack Kind = "snapback"
)

var (
	// ErrUnknownCommand is returned for a command name Handle does not know.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUnsupported is returned when the hosted widget cannot run a command.
	ErrUnsupported = errors.New("command not supported by widget")
)

// State is the snapshot published to clients. Exactly one widget field is set.
type State struct {
	ID       string             `json:"id"`
	Kind     Kind               `json:"kind"`
	Version  uint64             `json:"version"`
	Crop     *cropzoom.Snapshot `json:"crop,omitempty"`
	Gallery  *gallery.Snapshot  `json:"gallery,omitempty"`
	SnapBack *snapback.Snapshot `json:"snapback,omitempty"`
	Settled  int                `json:"settled,omitempty"`
}

// Editor serialises commands and ticks for one widget.
type Editor struct {
	mu       sync.Mutex
	id       string
	kind     Kind
	timeline *anim.Timeline
	driver   anim.Driver

	crop     *cropzoom.CropZoom
	gallery  *gallery.Gallery
	snapback *snapback.SnapBack

	version uint64
	settled int
}

// newEditor returns an editor shell with a fresh id and timeline.
func newEditor(kind Kind, reduceMotion bool) *Editor {
	e := &Editor{id: uuid.NewString(), kind: kind, timeline: anim.NewTimeline()}
	e.driver = e.timeline
	if reduceMotion {
		e.driver = anim.Immediate{}
	}
	return e
}

// NewCrop returns an editor hosting a crop widget.
func NewCrop(cfg cropzoom.Config) (*Editor, error) {
	e := newEditor(KindCrop, cfg.Timing.ReduceMotion)
	cz, err := cropzoom.New(cfg, e.driver)
	if err != nil {
		return nil, fmt.Errorf("crop widget: %w", err)
	}
	e.crop = cz
	return e, nil
}

// NewGallery returns an editor hosting a gallery.
func NewGallery(cfg gallery.Config) (*Editor, error) {
	e := newEditor(KindGallery, cfg.Timing.ReduceMotion)
	g, err := gallery.New(cfg, e.driver)
	if err != nil {
		return nil, fmt.Errorf("gallery widget: %w", err)
	}
	e.gallery = g
	return e, nil
}

// NewSnapBack returns an editor hosting a snap-back element.
func NewSnapBack(cfg snapback.Config) (*Editor, error) {
	if !geom.Valid(cfg.Size) && (cfg.Resize == nil || !geom.Valid(cfg.Resize.Size)) {
		return nil, fmt.Errorf("snapback widget: size must be positive")
	}
	e := newEditor(KindSnapBack, cfg.Timing.ReduceMotion)
	e.snapback = snapback.New(cfg, e.driver)
	e.snapback.OnGestureEnd(func() { e.settled++ })
	return e, nil
}

// ID returns the editor id.
func (e *Editor) ID() string {
	return e.id
}

// Kind returns the hosted widget kind.
func (e *Editor) Kind() Kind {
	return e.kind
}

// Version returns a counter bumped by every state change.
func (e *Editor) Version() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version
}

// Handle applies one command. Commands apply strictly in call order.
func (e *Editor) Handle(cmd Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var err error
	switch e.kind {
	case KindCrop:
		err = e.handleCrop(cmd)
	case KindGallery:
		err = e.handleGallery(cmd)
	default:
		err = e.handleSnapBack(cmd)
	}
	if err == nil {
		e.version++
	}
	return err
}

// handleCrop dispatches a command to the crop widget.
func (e *Editor) handleCrop(cmd Command) error {
	cz := e.crop
	region := cz.DetectorSize()
	switch cmd.T {
	case CmdPanStart:
		cz.PanStart()
	case CmdPanChange:
		cz.PanChange(cmd.panEvent(region))
	case CmdPanEnd:
		cz.PanEnd(cmd.panEvent(region))
	case CmdPinchStart:
		cz.PinchStart(cmd.pinchEvent(region))
	case CmdPinchUpdate:
		cz.PinchUpdate(cmd.pinchEvent(region))
	case CmdPinchEnd:
		cz.PinchEnd()
	case CmdRotate:
		cz.Rotate(cmd.animate())
	case CmdFlipH:
		cz.FlipHorizontal(cmd.animate())
	case CmdFlipV:
		cz.FlipVertical(cmd.animate())
	case CmdReset:
		cz.Reset(cmd.animate())
	case CmdSetIndex:
		return fmt.Errorf("%s: %w", cmd.T, ErrUnsupported)
	default:
		return fmt.Errorf("%q: %w", cmd.T, ErrUnknownCommand)
	}
	return nil
}

// handleGallery dispatches a command to the gallery.
func (e *Editor) handleGallery(cmd Command) error {
	g := e.gallery
	region := g.DetectorSize()
	switch cmd.T {
	case CmdPanStart:
		g.PanStart()
	case CmdPanChange:
		g.PanChange(cmd.panEvent(region))
	case CmdPanEnd:
		g.PanEnd(cmd.panEvent(region))
	case CmdPinchStart:
		g.PinchStart(cmd.pinchEvent(region))
	case CmdPinchUpdate:
		g.PinchUpdate(cmd.pinchEvent(region))
	case CmdPinchEnd:
		g.PinchEnd()
	case CmdReset:
		g.Reset(cmd.animate())
	case CmdSetIndex:
		g.SetIndex(cmd.Index, cmd.animate())
	case CmdRotate, CmdFlipH, CmdFlipV:
		return fmt.Errorf("%s: %w", cmd.T, ErrUnsupported)
	default:
		return fmt.Errorf("%q: %w", cmd.T, ErrUnknownCommand)
	}
	return nil
}

// handleSnapBack dispatches a command to the snap-back element.
func (e *Editor) handleSnapBack(cmd Command) error {
	s := e.snapback
	snap := s.Snapshot()
	region := geom.Sz(snap.ResizedWidth, snap.ResizedHeight)
	switch cmd.T {
	case CmdPinchStart:
		s.PinchStart(cmd.pinchEvent(region))
	case CmdPinchUpdate:
		s.PinchUpdate(cmd.pinchEvent(region))
	case CmdPinchEnd:
		s.PinchEnd()
	case CmdPanStart, CmdPanChange, CmdPanEnd, CmdRotate, CmdFlipH, CmdFlipV, CmdReset, CmdSetIndex:
		return fmt.Errorf("%s: %w", cmd.T, ErrUnsupported)
	default:
		return fmt.Errorf("%q: %w", cmd.T, ErrUnknownCommand)
	}
	return nil
}

// Tick advances animations by dt and reports whether anything moved.
func (e *Editor) Tick(dt time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.timeline.Tick(dt) {
		return false
	}
	e.version++
	return true
}

// Animating reports whether any animation is still running.
func (e *Editor) Animating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeline.Active()
}

// State returns the current snapshot.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := State{ID: e.id, Kind: e.kind, Version: e.version, Settled: e.settled}
	switch e.kind {
	case KindCrop:
		snap := e.crop.Snapshot()
		st.Crop = &snap
	case KindGallery:
		snap := e.gallery.Snapshot()
		st.Gallery = &snap
	default:
		snap := e.snapback.Snapshot()
		st.SnapBack = &snap
	}
	return st
}

// Crop resolves the current crop. Only crop editors support it.
func (e *Editor) Crop(fixedWidth float64) (crop.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.crop == nil {
		return crop.Result{}, fmt.Errorf("crop: %w", ErrUnsupported)
	}
	return e.crop.Crop(fixedWidth), nil
}

// CropConfig returns the options of a crop editor.
func (e *Editor) CropConfig() (cropzoom.Config, bool) {
	if e.crop == nil {
		return cropzoom.Config{}, false
	}
	return e.crop.Config(), true
}
