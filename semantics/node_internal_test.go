package semantics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/suhaib0edu/ariabridge/dom"
)

func newTestNode(t *testing.T) *Node {
	t.Helper()
	o := NewOwner(dom.NewElement("mount"), nil)
	o.Strict = true
	return o.getOrCreate(1)
}

// applying the same snapshot twice must leave the dirty mask unchanged
func TestApplyUpdateIdempotent(t *testing.T) {
	n := newTestNode(t)
	u := NewNodeUpdate(1)
	u.Label = "save"
	u.Flags = FlagIsButton
	u.Rect = Rect{Left: 10, Top: 10, Right: 60, Bottom: 30}

	n.applyUpdate(&u)
	first := n.dirty
	n.applyUpdate(&u)

	assert.Equal(t, first, n.dirty)
}

// changing one field category sets exactly that category's bit
func TestDirtyMaskCompleteness(t *testing.T) {
	base := NewNodeUpdate(1)

	cases := []struct {
		name   string
		mutate func(u *NodeUpdate)
		want   DirtyField
	}{
		{"flags", func(u *NodeUpdate) { u.Flags = FlagIsButton }, DirtyFlags},
		{"actions", func(u *NodeUpdate) { u.Actions = ActionTap }, DirtyActions},
		{"rect", func(u *NodeUpdate) { u.Rect = Rect{Right: 5, Bottom: 5} }, DirtyRect},
		{"transform", func(u *NodeUpdate) { u.Transform[12] = 40 }, DirtyTransform},
		{"elevation", func(u *NodeUpdate) { u.Elevation = 2 }, DirtyElevation},
		{"thickness", func(u *NodeUpdate) { u.Thickness = 1 }, DirtyThickness},
		{"scrollChildren", func(u *NodeUpdate) { u.ScrollChildren = 3 }, DirtyScrollChildren},
		{"scrollIndex", func(u *NodeUpdate) { u.ScrollIndex = 2 }, DirtyScrollIndex},
		{"scrollPosition", func(u *NodeUpdate) { u.ScrollPosition = 100 }, DirtyScrollPosition},
		{"scrollExtentMax", func(u *NodeUpdate) { u.ScrollExtentMax = 400 }, DirtyScrollExtents},
		{"scrollExtentMin", func(u *NodeUpdate) { u.ScrollExtentMin = -1 }, DirtyScrollExtents},
		{"label", func(u *NodeUpdate) { u.Label = "x" }, DirtyLabel},
		{"labelAttributes", func(u *NodeUpdate) {
			u.LabelAttributes = []StringAttribute{{Start: 0, End: 1, Kind: SpellOut}}
		}, DirtyLabel},
		{"hint", func(u *NodeUpdate) { u.Hint = "x" }, DirtyHint},
		{"value", func(u *NodeUpdate) { u.Value = "x" }, DirtyValue},
		{"increasedValue", func(u *NodeUpdate) { u.IncreasedValue = "x" }, DirtyIncreasedValue},
		{"decreasedValue", func(u *NodeUpdate) { u.DecreasedValue = "x" }, DirtyDecreasedValue},
		{"tooltip", func(u *NodeUpdate) { u.Tooltip = "x" }, DirtyTooltip},
		{"textDirection", func(u *NodeUpdate) { u.TextDirection = TextDirectionRTL }, DirtyTextDirection},
		{"textSelection", func(u *NodeUpdate) { u.TextSelectionExtent = 4 }, DirtyTextSelection},
		{"valueLength", func(u *NodeUpdate) { u.MaxValueLength = 12 }, DirtyValueLength},
		{"traversalChildren", func(u *NodeUpdate) { u.ChildrenInTraversalOrder = []int64{9} }, DirtyChildrenInTraversalOrder},
		{"hitTestChildren", func(u *NodeUpdate) { u.ChildrenInHitTestOrder = []int64{9} }, DirtyChildrenInHitTestOrder},
		{"additionalActions", func(u *NodeUpdate) { u.AdditionalActions = []int64{9} }, DirtyAdditionalActions},
		{"platformView", func(u *NodeUpdate) { u.PlatformViewID = 7 }, DirtyPlatformViewID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := newTestNode(t)
			n.applyUpdate(&base)
			n.dirty = 0

			u := base
			tc.mutate(&u)
			n.applyUpdate(&u)
			assert.Equal(t, tc.want, n.dirty)
		})
	}
}

// attribute-run identity changes flip the shared bit even when the string
// itself is unchanged
func TestAttributeRunsShareDirtyBit(t *testing.T) {
	n := newTestNode(t)
	u := NewNodeUpdate(1)
	u.Label = "hello"
	u.LabelAttributes = []StringAttribute{{Start: 0, End: 5, Kind: SpellOut}}
	n.applyUpdate(&u)
	n.dirty = 0

	u.LabelAttributes = []StringAttribute{{Start: 0, End: 5, Kind: Locale, LocaleID: "en-US"}}
	n.applyUpdate(&u)
	assert.Equal(t, DirtyLabel, n.dirty)
}

// geometry styles follow rect/transform/scroll changes
func TestGeometryRecompute(t *testing.T) {
	n := newTestNode(t)
	u := NewNodeUpdate(1)
	u.Rect = Rect{Left: 0, Top: 0, Right: 100, Bottom: 40}
	n.applyUpdate(&u)

	w, _ := n.element.Style("width")
	h, _ := n.element.Style("height")
	assert.Equal(t, "100px", w)
	assert.Equal(t, "40px", h)
	_, hasTransform := n.element.Style("transform")
	assert.False(t, hasTransform)

	u.Rect = Rect{Left: 20, Top: 10, Right: 120, Bottom: 50}
	n.applyUpdate(&u)
	tr, _ := n.element.Style("transform")
	assert.Equal(t, "translate(20px, 10px)", tr)
}

// leaves accept pointer events; parents and platform views do not
func TestPointerPolicy(t *testing.T) {
	n := newTestNode(t)
	u := NewNodeUpdate(1)
	n.applyUpdate(&u)
	pe, _ := n.element.Style("pointer-events")
	assert.Equal(t, "all", pe)

	u.ChildrenInTraversalOrder = []int64{2}
	u.ChildrenInHitTestOrder = []int64{2}
	n.applyUpdate(&u)
	pe, _ = n.element.Style("pointer-events")
	assert.Equal(t, "none", pe)

	u = NewNodeUpdate(1)
	u.PlatformViewID = 3
	n.applyUpdate(&u)
	pe, _ = n.element.Style("pointer-events")
	assert.Equal(t, "none", pe)
}
