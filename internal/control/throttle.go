package control

import (
	"math"
	"time"

	"github.com/frudas24/zoomkit/internal/editor"
)

const (
	minUpdateInterval = 16 * time.Millisecond
	minUpdateDelta    = 2
)

// Throttle coalesces bursts of mid-gesture samples. A held sample is never
// lost: it is released ahead of the next command that is not a sample.
type Throttle struct {
	lastAt  time.Time
	last    editor.Command
	pending *editor.Command
	now     func() time.Time
}

// NewThrottle returns a ready-to-use throttle.
func NewThrottle() *Throttle {
	return &Throttle{now: time.Now}
}

// SetNowFunc overrides the clock used for throttling.
func (t *Throttle) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		t.now = fn
	}
}

// Filter returns the commands to apply now, in order.
func (t *Throttle) Filter(cmd editor.Command) []editor.Command {
	if !cmd.IsUpdate() {
		out := t.flush()
		t.lastAt = time.Time{}
		return append(out, cmd)
	}

	now := t.now()
	if cmd.T == t.last.T && !t.lastAt.IsZero() {
		if now.Sub(t.lastAt) < minUpdateInterval || !moved(t.last, cmd) {
			held := cmd
			t.pending = &held
			return nil
		}
	}

	t.pending = nil
	t.lastAt = now
	t.last = cmd
	return []editor.Command{cmd}
}

// Reset forgets any held sample and timing state.
func (t *Throttle) Reset() {
	t.lastAt = time.Time{}
	t.last = editor.Command{}
	t.pending = nil
}

// Pending reports whether a sample is being held.
func (t *Throttle) Pending() bool {
	return t.pending != nil
}

// Flush releases the held sample, if any.
func (t *Throttle) Flush() []editor.Command {
	return t.flush()
}

// flush drops and returns the held sample.
func (t *Throttle) flush() []editor.Command {
	if t.pending == nil {
		return nil
	}
	cmd := *t.pending
	t.pending = nil
	t.last = cmd
	return []editor.Command{cmd}
}

// moved reports whether b differs enough from a to be worth applying.
// Normalized samples are only throttled by time.
func moved(a, b editor.Command) bool {
	if math.Abs(b.X-a.X) >= minUpdateDelta || math.Abs(b.Y-a.Y) >= minUpdateDelta {
		return true
	}
	if a.Norm || b.Norm {
		return true
	}
	return b.Scale != a.Scale || b.Rotation != a.Rotation
}
