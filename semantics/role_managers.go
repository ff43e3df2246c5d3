package semantics

import "strconv"

// The concrete role managers below project ARIA attributes onto the
// node's element. Each one owns exactly the attributes it sets; Dispose
// removes them and nothing else, so independent capabilities never fight
// over the same element state.

type headingRole struct{ n *Node }

func (r *headingRole) Update() {
	r.n.element.SetAttribute("role", "heading")
	r.n.element.SetAttribute("aria-level", "1")
}

func (r *headingRole) Dispose() {
	r.n.element.RemoveAttribute("role")
	r.n.element.RemoveAttribute("aria-level")
}

type linkRole struct{ n *Node }

func (r *linkRole) Update()  { r.n.element.SetAttribute("role", "link") }
func (r *linkRole) Dispose() { r.n.element.RemoveAttribute("role") }

type imageRole struct{ n *Node }

func (r *imageRole) Update() {
	el := r.n.element
	el.SetAttribute("role", "img")
	if r.n.label != "" {
		el.SetAttribute("aria-label", r.n.label)
	} else {
		el.RemoveAttribute("aria-label")
	}
}

func (r *imageRole) Dispose() {
	r.n.element.RemoveAttribute("role")
	r.n.element.RemoveAttribute("aria-label")
}

type checkableRole struct{ n *Node }

func (r *checkableRole) Update() {
	n, el := r.n, r.n.element
	switch {
	case n.flags.Has(FlagHasToggledState):
		el.SetAttribute("role", "switch")
		el.SetAttribute("aria-checked", strconv.FormatBool(n.flags.Has(FlagIsToggled)))
	case n.flags.Has(FlagIsInMutuallyExclusiveGroup):
		el.SetAttribute("role", "radio")
		el.SetAttribute("aria-checked", strconv.FormatBool(n.flags.Has(FlagIsChecked)))
	default:
		el.SetAttribute("role", "checkbox")
		el.SetAttribute("aria-checked", strconv.FormatBool(n.flags.Has(FlagIsChecked)))
	}
}

func (r *checkableRole) Dispose() {
	r.n.element.RemoveAttribute("role")
	r.n.element.RemoveAttribute("aria-checked")
}

type tappableRole struct{ n *Node }

func (r *tappableRole) Update() {
	n, el := r.n, r.n.element
	if n.flags.Has(FlagIsButton) {
		el.SetAttribute("role", "button")
	}
	if n.flags.Has(FlagHasEnabledState) && !n.flags.Has(FlagIsEnabled) {
		el.SetAttribute("aria-disabled", "true")
	} else {
		el.RemoveAttribute("aria-disabled")
	}
}

func (r *tappableRole) Dispose() {
	// Only strip the role if we still own it; the button flag may have
	// been cleared together with the action that deactivated us.
	if v, _ := r.n.element.Attribute("role"); v == "button" {
		r.n.element.RemoveAttribute("role")
	}
	r.n.element.RemoveAttribute("aria-disabled")
}

type textFieldRole struct{ n *Node }

func (r *textFieldRole) Update() {
	n, el := r.n, r.n.element
	el.SetAttribute("role", "textbox")
	el.SetAttribute("contenteditable", "true")
	if n.label != "" {
		el.SetAttribute("aria-label", n.label)
	} else {
		el.RemoveAttribute("aria-label")
	}
	if n.flags.Has(FlagIsReadOnly) {
		el.SetAttribute("aria-readonly", "true")
	} else {
		el.RemoveAttribute("aria-readonly")
	}
	if n.flags.Has(FlagIsMultiline) {
		el.SetAttribute("aria-multiline", "true")
	} else {
		el.RemoveAttribute("aria-multiline")
	}
}

func (r *textFieldRole) Dispose() {
	el := r.n.element
	el.RemoveAttribute("role")
	el.RemoveAttribute("contenteditable")
	el.RemoveAttribute("aria-label")
	el.RemoveAttribute("aria-readonly")
	el.RemoveAttribute("aria-multiline")
}

type incrementableRole struct{ n *Node }

func (r *incrementableRole) Update() {
	n, el := r.n, r.n.element
	el.SetAttribute("role", "slider")
	el.SetAttribute("aria-valuetext", n.value)
	if n.actions.Has(ActionIncrease) {
		el.SetAttribute("aria-valuemax", n.increasedValue)
	} else {
		el.RemoveAttribute("aria-valuemax")
	}
	if n.actions.Has(ActionDecrease) {
		el.SetAttribute("aria-valuemin", n.decreasedValue)
	} else {
		el.RemoveAttribute("aria-valuemin")
	}
}

func (r *incrementableRole) Dispose() {
	el := r.n.element
	el.RemoveAttribute("role")
	el.RemoveAttribute("aria-valuetext")
	el.RemoveAttribute("aria-valuemax")
	el.RemoveAttribute("aria-valuemin")
}

type scrollableRole struct{ n *Node }

func (r *scrollableRole) Update() {
	n, el := r.n, r.n.element
	if n.actions.Has(ActionScrollUp | ActionScrollDown) {
		el.SetStyle("overflow-y", "scroll")
	} else {
		el.RemoveStyle("overflow-y")
	}
	if n.actions.Has(ActionScrollLeft | ActionScrollRight) {
		el.SetStyle("overflow-x", "scroll")
	} else {
		el.RemoveStyle("overflow-x")
	}
}

func (r *scrollableRole) Dispose() {
	r.n.element.RemoveStyle("overflow-y")
	r.n.element.RemoveStyle("overflow-x")
}

type liveRegionRole struct{ n *Node }

func (r *liveRegionRole) Update()  { r.n.element.SetAttribute("aria-live", "polite") }
func (r *liveRegionRole) Dispose() { r.n.element.RemoveAttribute("aria-live") }

type labelAndValueRole struct{ n *Node }

func (r *labelAndValueRole) Update() {
	n := r.n
	combined := n.label
	if n.value != "" {
		if combined != "" {
			combined += " "
		}
		combined += n.value
	}
	if n.tooltip != "" {
		if combined != "" {
			combined += " "
		}
		combined += n.tooltip
	}
	n.element.SetAttribute("aria-label", combined)
}

func (r *labelAndValueRole) Dispose() {
	r.n.element.RemoveAttribute("aria-label")
}

type platformViewRole struct{ n *Node }

func (r *platformViewRole) Update() {
	r.n.element.SetAttribute("data-platform-view", strconv.FormatInt(r.n.platformViewID, 10))
}

func (r *platformViewRole) Dispose() {
	r.n.element.RemoveAttribute("data-platform-view")
}
