package gesture

import (
	"time"

	"github.com/suhaib0edu/ariabridge/semantics"
)

// GestureMode says which event source currently drives interaction.
type GestureMode uint8

const (
	// BrowserGestures honors high-level synthesized events (click,
	// scroll). The initial mode.
	BrowserGestures GestureMode = iota
	// PointerEvents means raw pointer events were seen recently and are
	// handling interaction; synthesized gestures duplicate them.
	PointerEvents
)

func (m GestureMode) String() string {
	if m == PointerEvents {
		return "pointerEvents"
	}
	return "browserGestures"
}

// EventType tags one input event. Only the tag matters to arbitration.
type EventType string

// isPointerEvent reports whether t is a raw pointer/touch/mouse/key event
// as opposed to a browser-synthesized gesture.
func isPointerEvent(t EventType) bool {
	switch t {
	case "pointerdown", "pointermove", "pointerup", "pointercancel",
		"touchstart", "touchmove", "touchend", "touchcancel",
		"mousedown", "mousemove", "mouseup",
		"keydown", "keyup":
		return true
	}
	return false
}

// DebounceWindow is how long after the last raw pointer event the arbiter
// stays in PointerEvents before reverting to BrowserGestures.
const DebounceWindow = 500 * time.Millisecond

// ModeListener observes gesture mode changes.
type ModeListener func(GestureMode)

// Arbiter is the pointer-versus-gesture state machine. Single-owner,
// host-serialized: the debounce callback must not run concurrently with
// event delivery (ManualClock guarantees that; SystemClock hosts must
// serialize).
type Arbiter struct {
	clock Clock

	mode      GestureMode
	enabled   bool
	modeKnown bool
	disabled  bool
	features  semantics.Features

	timer      Timer
	generation uint64

	listeners []ModeListener
}

// NewArbiter starts in BrowserGestures with accessibility support not yet
// detected.
func NewArbiter(clock Clock) *Arbiter {
	return &Arbiter{clock: clock}
}

func (a *Arbiter) Mode() GestureMode { return a.mode }

// Enabled reports whether accessibility is currently enabled.
func (a *Arbiter) Enabled() bool { return a.enabled && !a.disabled }

// AddModeListener registers fn for mode-change notifications.
func (a *Arbiter) AddModeListener(fn ModeListener) {
	a.listeners = append(a.listeners, fn)
}

// SetSupportKnown records the result of accessibility support detection.
// Once known, gesture acceptance follows enablement alone.
func (a *Arbiter) SetSupportKnown(enabled bool) {
	a.modeKnown = true
	a.enabled = enabled
}

// SetFeatures records the platform accessibility feature bitset reported
// by the host. A feature report resolves support detection: assistive
// navigation being announced is what enables gesture acceptance.
func (a *Arbiter) SetFeatures(f semantics.Features) {
	a.features = f
	a.SetSupportKnown(f.Has(semantics.FeatureAccessibleNavigation))
}

// Features returns the last feature bitset reported through SetFeatures.
func (a *Arbiter) Features() semantics.Features { return a.features }

// Disable tears accessibility down entirely: the debounce timer is
// cancelled, the mode is forced to PointerEvents and no gesture is
// accepted afterwards.
func (a *Arbiter) Disable() {
	a.disabled = true
	a.enabled = false
	a.generation++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.setMode(PointerEvents)
}

// ReceiveGlobalEvent feeds one raw DOM-level event to the arbiter. Any
// pointer-class event switches to PointerEvents and (re)arms the debounce
// window; arming while armed reschedules, never queues.
func (a *Arbiter) ReceiveGlobalEvent(t EventType) {
	if a.disabled || !isPointerEvent(t) {
		return
	}
	a.setMode(PointerEvents)

	a.generation++
	gen := a.generation
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = a.clock.AfterFunc(DebounceWindow, func() {
		// A superseded deadline firing anyway is benign.
		if gen != a.generation {
			return
		}
		a.timer = nil
		a.setMode(BrowserGestures)
	})
}

// ShouldAcceptBrowserGesture decides, for one synthesized gesture event,
// whether to forward it as a semantic action or suppress it as already
// handled through the pointer path. When support detection has resolved,
// enablement decides; while it is still unknown, the current gesture mode
// decides. The decision depends only on arbiter state, never on the
// event tag itself.
func (a *Arbiter) ShouldAcceptBrowserGesture(_ EventType) bool {
	if a.disabled {
		return false
	}
	if a.modeKnown {
		return a.enabled
	}
	return a.mode == BrowserGestures
}

func (a *Arbiter) setMode(m GestureMode) {
	if a.mode == m {
		return
	}
	a.mode = m
	for _, fn := range a.listeners {
		fn(m)
	}
}
