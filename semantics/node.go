package semantics

import (
	"fmt"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/suhaib0edu/ariabridge/dom"
)

// Node is one retained entry of the accessibility tree. It stores the
// last-applied value of every semantic field plus a dirty mask of what
// changed since the last reconciliation cycle, and owns the live element
// that projects it into the host document.
type Node struct {
	id    int64
	owner *Owner

	flags   Flag
	actions Action

	maxValueLength      int32
	currentValueLength  int32
	textSelectionBase   int32
	textSelectionExtent int32

	scrollChildren  int32
	scrollIndex     int32
	scrollPosition  float64
	scrollExtentMax float64
	scrollExtentMin float64

	rect      Rect
	transform Transform
	elevation float64
	thickness float64

	label             string
	labelAttrHash     uint64
	hint              string
	hintAttrHash      uint64
	value             string
	valueAttrHash     uint64
	increasedValue    string
	increasedAttrHash uint64
	decreasedValue    string
	decreasedAttrHash uint64
	tooltip           string
	textDirection     TextDirection

	childrenInTraversalOrder []int64
	childrenInHitTestOrder   []int64
	additionalActions        []int64
	platformViewID           int64

	dirty DirtyField

	// parent is a back-reference resolved through the owner's table, set
	// exclusively during attach. Never an ownership edge.
	parent *Node

	element        *dom.Element
	childContainer *dom.Element

	activeRoles map[RoleKind]RoleManager

	// renderedChildren is the child sequence as last materialized in the
	// live tree. Only the reconciler reads it; it can differ from the
	// hit-test order in z-ordering but never in membership.
	renderedChildren []*Node
}

func newNode(owner *Owner, id int64) *Node {
	el := dom.NewElement("sem-node")
	el.SetAttribute("id", "sem-"+strconv.FormatInt(id, 10))
	return &Node{
		id:             id,
		owner:          owner,
		transform:      IdentityTransform,
		platformViewID: NoPlatformView,
		element:        el,
		activeRoles:    map[RoleKind]RoleManager{},
	}
}

func (n *Node) ID() int64               { return n.id }
func (n *Node) Flags() Flag             { return n.flags }
func (n *Node) Actions() Action         { return n.actions }
func (n *Node) Label() string           { return n.label }
func (n *Node) Hint() string            { return n.hint }
func (n *Node) Value() string           { return n.value }
func (n *Node) Tooltip() string         { return n.tooltip }
func (n *Node) Rect() Rect              { return n.rect }
func (n *Node) Transform() Transform    { return n.transform }
func (n *Node) ScrollPosition() float64 { return n.scrollPosition }
func (n *Node) PlatformViewID() int64   { return n.platformViewID }
func (n *Node) Parent() *Node           { return n.parent }
func (n *Node) Element() *dom.Element   { return n.element }

// ChildContainer is the element holding child elements; nil while the
// node has no children.
func (n *Node) ChildContainer() *dom.Element { return n.childContainer }

func (n *Node) HasChildren() bool { return len(n.childrenInTraversalOrder) > 0 }

// ChildIDs returns the traversal-ordered child id list.
func (n *Node) ChildIDs() []int64 { return n.childrenInTraversalOrder }

// HitTestChildIDs returns the top-to-bottom hit-test child id list.
func (n *Node) HitTestChildIDs() []int64 { return n.childrenInHitTestOrder }

// DirtyMask is the set of field categories changed since the last
// completed reconciliation cycle.
func (n *Node) DirtyMask() DirtyField { return n.dirty }

func (n *Node) IsDirty(f DirtyField) bool { return n.dirty&f != 0 }

// ActiveRoleKinds returns the currently active capability tags.
func (n *Node) ActiveRoleKinds() mapset.Set[RoleKind] {
	s := mapset.NewThreadUnsafeSet[RoleKind]()
	for k := range n.activeRoles {
		s.Add(k)
	}
	return s
}

// applyUpdate runs the update-self half of the protocol: every field of
// the snapshot is compared against the stored value, differing fields are
// replaced and their category bit set. Paired value+attribute fields share
// one bit; attribute-run lists compare by content hash. Applying the same
// snapshot twice is a no-op the second time.
func (n *Node) applyUpdate(u *NodeUpdate) {
	if n.flags != u.Flags {
		n.flags = u.Flags
		n.dirty |= DirtyFlags
	}
	if n.actions != u.Actions {
		n.actions = u.Actions
		n.dirty |= DirtyActions
	}
	if n.rect != u.Rect {
		n.rect = u.Rect
		n.dirty |= DirtyRect
	}
	if n.transform != u.Transform {
		n.transform = u.Transform
		n.dirty |= DirtyTransform
	}
	if n.elevation != u.Elevation {
		n.elevation = u.Elevation
		n.dirty |= DirtyElevation
	}
	if n.thickness != u.Thickness {
		n.thickness = u.Thickness
		n.dirty |= DirtyThickness
	}
	if n.scrollChildren != u.ScrollChildren {
		n.scrollChildren = u.ScrollChildren
		n.dirty |= DirtyScrollChildren
	}
	if n.scrollIndex != u.ScrollIndex {
		n.scrollIndex = u.ScrollIndex
		n.dirty |= DirtyScrollIndex
	}
	if n.scrollPosition != u.ScrollPosition {
		n.scrollPosition = u.ScrollPosition
		n.dirty |= DirtyScrollPosition
	}
	if n.scrollExtentMax != u.ScrollExtentMax || n.scrollExtentMin != u.ScrollExtentMin {
		n.scrollExtentMax = u.ScrollExtentMax
		n.scrollExtentMin = u.ScrollExtentMin
		n.dirty |= DirtyScrollExtents
	}
	if h := attributesHash(u.LabelAttributes); n.label != u.Label || n.labelAttrHash != h {
		n.label = u.Label
		n.labelAttrHash = h
		n.dirty |= DirtyLabel
	}
	if h := attributesHash(u.HintAttributes); n.hint != u.Hint || n.hintAttrHash != h {
		n.hint = u.Hint
		n.hintAttrHash = h
		n.dirty |= DirtyHint
	}
	if h := attributesHash(u.ValueAttributes); n.value != u.Value || n.valueAttrHash != h {
		n.value = u.Value
		n.valueAttrHash = h
		n.dirty |= DirtyValue
	}
	if h := attributesHash(u.IncreasedValueAttributes); n.increasedValue != u.IncreasedValue || n.increasedAttrHash != h {
		n.increasedValue = u.IncreasedValue
		n.increasedAttrHash = h
		n.dirty |= DirtyIncreasedValue
	}
	if h := attributesHash(u.DecreasedValueAttributes); n.decreasedValue != u.DecreasedValue || n.decreasedAttrHash != h {
		n.decreasedValue = u.DecreasedValue
		n.decreasedAttrHash = h
		n.dirty |= DirtyDecreasedValue
	}
	if n.tooltip != u.Tooltip {
		n.tooltip = u.Tooltip
		n.dirty |= DirtyTooltip
	}
	if n.textDirection != u.TextDirection {
		n.textDirection = u.TextDirection
		n.dirty |= DirtyTextDirection
	}
	if n.textSelectionBase != u.TextSelectionBase || n.textSelectionExtent != u.TextSelectionExtent {
		n.textSelectionBase = u.TextSelectionBase
		n.textSelectionExtent = u.TextSelectionExtent
		n.dirty |= DirtyTextSelection
	}
	if n.maxValueLength != u.MaxValueLength || n.currentValueLength != u.CurrentValueLength {
		n.maxValueLength = u.MaxValueLength
		n.currentValueLength = u.CurrentValueLength
		n.dirty |= DirtyValueLength
	}
	if !int64SlicesEqual(n.childrenInTraversalOrder, u.ChildrenInTraversalOrder) {
		n.childrenInTraversalOrder = append([]int64(nil), u.ChildrenInTraversalOrder...)
		n.dirty |= DirtyChildrenInTraversalOrder
	}
	if !int64SlicesEqual(n.childrenInHitTestOrder, u.ChildrenInHitTestOrder) {
		n.childrenInHitTestOrder = append([]int64(nil), u.ChildrenInHitTestOrder...)
		n.dirty |= DirtyChildrenInHitTestOrder
	}
	if !int64SlicesEqual(n.additionalActions, u.AdditionalActions) {
		n.additionalActions = append([]int64(nil), u.AdditionalActions...)
		n.dirty |= DirtyAdditionalActions
	}
	if n.platformViewID != u.PlatformViewID {
		n.platformViewID = u.PlatformViewID
		n.dirty |= DirtyPlatformViewID
	}

	if n.dirty&dirtyGeometry != 0 {
		n.recomputeGeometry()
	}
	n.updatePointerPolicy()
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// recomputeGeometry projects the node's rect, transform and scroll
// position onto the element. Runs whenever any of the three changed.
func (n *Node) recomputeGeometry() {
	el := n.element
	el.SetStyle("width", px(n.rect.Width()))
	el.SetStyle("height", px(n.rect.Height()))

	tx, ty := n.transform.TranslationXY()
	left, top := n.rect.Left+tx, n.rect.Top+ty
	if left == 0 && top == 0 && n.transform.IsIdentity() {
		el.RemoveStyle("transform")
	} else if n.transform.IsIdentity() {
		el.SetStyle("transform", fmt.Sprintf("translate(%s, %s)", px(left), px(top)))
	} else {
		el.SetStyle("transform", matrix3d(n.transform, n.rect))
	}

	if n.childContainer != nil {
		// Children are positioned in this node's coordinate space;
		// compensate for the node's own origin and scroll offset.
		n.childContainer.SetStyle("left", px(-n.rect.Left))
		n.childContainer.SetStyle("top", px(-n.rect.Top-n.scrollPosition))
	}
}

func matrix3d(t Transform, r Rect) string {
	m := t
	m[12] += r.Left
	m[13] += r.Top
	s := "matrix3d("
	for i, v := range m {
		if i > 0 {
			s += ","
		}
		s += strconv.FormatFloat(v, 'f', -1, 64)
	}
	return s + ")"
}

// updatePointerPolicy decides whether the element itself accepts pointer
// events. Nodes with children and embedded platform surfaces route events
// elsewhere; everything else accepts them directly.
func (n *Node) updatePointerPolicy() {
	if n.HasChildren() || n.platformViewID != NoPlatformView {
		n.element.SetStyle("pointer-events", "none")
	} else {
		n.element.SetStyle("pointer-events", "all")
	}
}

func (n *Node) getOrCreateChildContainer() *dom.Element {
	if n.childContainer == nil {
		n.childContainer = dom.NewElement("sem-container")
		n.childContainer.SetStyle("position", "absolute")
		n.element.AppendChild(n.childContainer)
		n.childContainer.SetStyle("left", px(-n.rect.Left))
		n.childContainer.SetStyle("top", px(-n.rect.Top-n.scrollPosition))
	}
	return n.childContainer
}

func (n *Node) releaseChildContainer() {
	if n.childContainer != nil {
		n.childContainer.Remove()
		n.childContainer = nil
	}
}

func (n *Node) disposeRoles() {
	for k, mgr := range n.activeRoles {
		mgr.Dispose()
		delete(n.activeRoles, k)
	}
}
