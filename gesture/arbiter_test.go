package gesture_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/suhaib0edu/ariabridge/gesture"
	"github.com/suhaib0edu/ariabridge/semantics"
)

func newArbiter() (*gesture.Arbiter, *gesture.ManualClock) {
	clock := gesture.NewManualClock(time.Unix(0, 0))
	return gesture.NewArbiter(clock), clock
}

// a click within the debounce window of a pointer event is suppressed
// while support is still unknown; a later click is accepted
func TestDebounceSuppressesDuplicateClick(t *testing.T) {
	a, clock := newArbiter()
	assert.True(t, a.ShouldAcceptBrowserGesture("click"))

	a.ReceiveGlobalEvent("pointerdown")
	assert.Equal(t, gesture.PointerEvents, a.Mode())
	clock.Advance(300 * time.Millisecond)
	assert.False(t, a.ShouldAcceptBrowserGesture("click"))

	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, gesture.BrowserGestures, a.Mode())
	assert.True(t, a.ShouldAcceptBrowserGesture("click"))
}

// each pointer event reschedules the window instead of queueing timers
func TestDebounceReschedules(t *testing.T) {
	a, clock := newArbiter()

	a.ReceiveGlobalEvent("pointerdown")
	clock.Advance(400 * time.Millisecond)
	a.ReceiveGlobalEvent("pointermove")
	// the first deadline has passed, but it was superseded
	clock.Advance(200 * time.Millisecond)
	assert.Equal(t, gesture.PointerEvents, a.Mode())

	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, gesture.BrowserGestures, a.Mode())
}

// gesture events themselves never flip the mode
func TestGestureEventsDoNotArm(t *testing.T) {
	a, clock := newArbiter()
	a.ReceiveGlobalEvent("click")
	a.ReceiveGlobalEvent("scroll")
	assert.Equal(t, gesture.BrowserGestures, a.Mode())
	clock.Advance(time.Second)
	assert.Equal(t, gesture.BrowserGestures, a.Mode())
}

// once support detection resolves, enablement alone decides
func TestSupportKnownOverridesMode(t *testing.T) {
	a, _ := newArbiter()
	a.SetSupportKnown(true)

	a.ReceiveGlobalEvent("touchstart")
	assert.Equal(t, gesture.PointerEvents, a.Mode())
	assert.True(t, a.ShouldAcceptBrowserGesture("click"))

	b, _ := newArbiter()
	b.SetSupportKnown(false)
	assert.False(t, b.ShouldAcceptBrowserGesture("click"))
}

// a platform feature report resolves support detection; assistive
// navigation enables gesture acceptance, other features alone do not
func TestFeatureReportResolvesSupport(t *testing.T) {
	a, _ := newArbiter()
	a.SetFeatures(semantics.FeatureAccessibleNavigation | semantics.FeatureReduceMotion)
	assert.True(t, a.Enabled())
	assert.True(t, a.ShouldAcceptBrowserGesture("click"))
	assert.True(t, a.Features().Has(semantics.FeatureReduceMotion))
	assert.False(t, a.Features().Has(semantics.FeatureBoldText))

	b, _ := newArbiter()
	b.SetFeatures(semantics.FeatureBoldText)
	assert.False(t, b.Enabled())
	assert.False(t, b.ShouldAcceptBrowserGesture("click"))
}

// disabling cancels the pending revert and pins pointer mode
func TestDisable(t *testing.T) {
	a, clock := newArbiter()
	a.ReceiveGlobalEvent("mousedown")
	a.Disable()

	assert.Equal(t, gesture.PointerEvents, a.Mode())
	assert.False(t, a.ShouldAcceptBrowserGesture("click"))
	clock.Advance(time.Second)
	// the cancelled timer must not revert the mode
	assert.Equal(t, gesture.PointerEvents, a.Mode())
	assert.False(t, a.Enabled())

	a.ReceiveGlobalEvent("pointerdown")
	assert.Equal(t, gesture.PointerEvents, a.Mode())
}

// listeners hear every transition, in both directions
func TestModeListeners(t *testing.T) {
	a, clock := newArbiter()
	var seen []gesture.GestureMode
	a.AddModeListener(func(m gesture.GestureMode) { seen = append(seen, m) })

	a.ReceiveGlobalEvent("pointerdown")
	a.ReceiveGlobalEvent("pointermove") // no transition, already in pointer mode
	clock.Advance(600 * time.Millisecond)

	assert.Equal(t, []gesture.GestureMode{gesture.PointerEvents, gesture.BrowserGestures}, seen)
}

// key events count as the raw input path
func TestKeyEventsArmDebounce(t *testing.T) {
	a, _ := newArbiter()
	a.ReceiveGlobalEvent("keydown")
	assert.Equal(t, gesture.PointerEvents, a.Mode())
	assert.False(t, a.ShouldAcceptBrowserGesture("scroll"))
}

// the manual clock fires timers in deadline order and honors Stop
func TestManualClock(t *testing.T) {
	clock := gesture.NewManualClock(time.Unix(0, 0))
	var order []string
	clock.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })
	clock.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	stopped := clock.AfterFunc(150*time.Millisecond, func() { order = append(order, "x") })
	assert.True(t, stopped.Stop())

	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, time.Unix(0, 0).Add(300*time.Millisecond), clock.Now())
}
