// Package testutil holds shared fixtures for transport tests.
package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/frudas24/zoomkit/internal/cropzoom"
	"github.com/frudas24/zoomkit/internal/editor"
	"github.com/frudas24/zoomkit/internal/geom"
	"github.com/frudas24/zoomkit/internal/session"
)

// Password is the session password used by fixtures.
const Password = "pw"

// AuthedSession returns an authenticated session.
func AuthedSession(t testing.TB) *session.Session {
	t.Helper()
	sess := session.New(Password)
	if !sess.Authenticate(Password) {
		t.Fatalf("expected authenticate success")
	}
	return sess
}

// CropEditor returns a 100x100 crop editor over a 400x200 image.
func CropEditor(t testing.TB) *editor.Editor {
	t.Helper()
	ed, err := editor.NewCrop(cropzoom.DefaultConfig(geom.Sz(100, 100), geom.Sz(400, 200)))
	if err != nil {
		t.Fatalf("NewCrop failed: %v", err)
	}
	return ed
}

// SessionWithEditor returns an authenticated session holding one crop editor.
func SessionWithEditor(t testing.TB) (*session.Session, *editor.Editor) {
	t.Helper()
	sess := AuthedSession(t)
	ed := CropEditor(t)
	sess.AddEditor(ed)
	return sess, ed
}

// Clock is a manual clock for code that accepts a now func.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock at the Unix epoch.
func NewClock() *Clock {
	return &Clock{now: time.Unix(0, 0)}
}

// Now returns the current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
