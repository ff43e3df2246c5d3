package semantics

// RoleKind tags one capability a node can exhibit. The set is closed;
// activation is decided per update pass by a fixed table of predicates
// over the node's current flags and actions.
type RoleKind uint8

const (
	RoleTextField RoleKind = iota
	RoleCheckable
	RoleTappable
	RoleIncrementable
	RoleScrollable
	RoleImage
	RoleLiveRegion
	RoleLabelAndValue
	RoleLink
	RoleHeading
	RolePlatformView
	roleKindCount
)

func (k RoleKind) String() string {
	switch k {
	case RoleTextField:
		return "textField"
	case RoleCheckable:
		return "checkable"
	case RoleTappable:
		return "tappable"
	case RoleIncrementable:
		return "incrementable"
	case RoleScrollable:
		return "scrollable"
	case RoleImage:
		return "image"
	case RoleLiveRegion:
		return "liveRegion"
	case RoleLabelAndValue:
		return "labelAndValue"
	case RoleLink:
		return "link"
	case RoleHeading:
		return "heading"
	case RolePlatformView:
		return "platformView"
	}
	return "unknown"
}

// RoleManager renders one capability's attributes onto the node's element.
// Update is called once per update pass while the capability is active;
// Dispose strips whatever Update set and is called exactly once, before
// the node itself can be destroyed.
type RoleManager interface {
	Update()
	Dispose()
}

// isVisualOnly reports whether the node exists purely to paint an image:
// no children and no tap action, so the element can become a leaf img.
func (n *Node) isVisualOnly() bool {
	return n.flags.Has(FlagIsImage) && !n.HasChildren() && !n.actions.Has(ActionTap)
}

// roleActive is the activation decision table. Each predicate is a pure
// function of the node's flags, actions and the other predicates, so
// re-evaluating against an unchanged snapshot always converges to the
// same set.
func (n *Node) roleActive(k RoleKind) bool {
	switch k {
	case RoleTextField:
		return n.flags.Has(FlagIsTextField)
	case RoleCheckable:
		return n.flags.Has(FlagHasCheckedState) || n.flags.Has(FlagHasToggledState)
	case RoleTappable:
		// A text field installs its own activation handling; a generic
		// tap handler on the same element would double-fire.
		return (n.actions.Has(ActionTap|ActionLongPress) || n.flags.Has(FlagIsButton)) &&
			!n.flags.Has(FlagIsTextField)
	case RoleIncrementable:
		return n.actions.Has(ActionIncrease | ActionDecrease)
	case RoleScrollable:
		return n.actions.Has(actionScrollAny)
	case RoleImage:
		return n.isVisualOnly()
	case RoleLiveRegion:
		return n.flags.Has(FlagIsLiveRegion)
	case RoleLabelAndValue:
		// Image-only nodes label via the image role, text fields via the
		// input itself, incrementables via the range attributes.
		return (n.label != "" || n.value != "" || n.tooltip != "") &&
			!n.flags.Has(FlagIsTextField) &&
			!n.isVisualOnly() &&
			!n.actions.Has(ActionIncrease|ActionDecrease)
	case RoleLink:
		return n.flags.Has(FlagIsLink)
	case RoleHeading:
		return n.flags.Has(FlagIsHeader)
	case RolePlatformView:
		return n.platformViewID != NoPlatformView
	}
	return false
}

// updateRoles recomputes the active capability set against the node's
// current flags and actions. Each predicate is evaluated once per pass.
// Deactivations are disposed before any activation updates run, so an
// attribute can hand over between capabilities (label/value to image, for
// instance) without the old owner stripping it afterwards.
func (n *Node) updateRoles() {
	var active [roleKindCount]bool
	for k := RoleKind(0); k < roleKindCount; k++ {
		active[k] = n.roleActive(k)
	}
	for k := RoleKind(0); k < roleKindCount; k++ {
		if mgr, exists := n.activeRoles[k]; exists && !active[k] {
			mgr.Dispose()
			delete(n.activeRoles, k)
		}
	}
	for k := RoleKind(0); k < roleKindCount; k++ {
		if !active[k] {
			continue
		}
		mgr, exists := n.activeRoles[k]
		if !exists {
			mgr = newRoleManager(k, n)
			n.activeRoles[k] = mgr
		}
		mgr.Update()
	}
}

func newRoleManager(k RoleKind, n *Node) RoleManager {
	switch k {
	case RoleTextField:
		return &textFieldRole{n: n}
	case RoleCheckable:
		return &checkableRole{n: n}
	case RoleTappable:
		return &tappableRole{n: n}
	case RoleIncrementable:
		return &incrementableRole{n: n}
	case RoleScrollable:
		return &scrollableRole{n: n}
	case RoleImage:
		return &imageRole{n: n}
	case RoleLiveRegion:
		return &liveRegionRole{n: n}
	case RoleLabelAndValue:
		return &labelAndValueRole{n: n}
	case RoleLink:
		return &linkRole{n: n}
	case RoleHeading:
		return &headingRole{n: n}
	case RolePlatformView:
		return &platformViewRole{n: n}
	}
	panic("semantics: no manager for role kind " + k.String())
}
