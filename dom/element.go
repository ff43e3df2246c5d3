// Package dom is a minimal in-memory stand-in for the live document the
// accessibility tree is projected into. It models the one behavior the
// reconciler depends on: InsertBefore moves an element that already has a
// parent instead of duplicating it, which is what makes same-frame
// reparenting work without an explicit removal step. Hosts with a real DOM
// binding can mirror this API one-to-one.
package dom

type Element struct {
	tag      string
	parent   *Element
	children []*Element
	attrs    map[string]string
	styles   map[string]string
}

func NewElement(tag string) *Element {
	return &Element{tag: tag}
}

func (e *Element) Tag() string      { return e.tag }
func (e *Element) Parent() *Element { return e.parent }

// Children returns the live child slice; callers must not mutate it.
func (e *Element) Children() []*Element { return e.children }

func (e *Element) SetAttribute(name, value string) {
	if e.attrs == nil {
		e.attrs = map[string]string{}
	}
	e.attrs[name] = value
}

func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// Attributes returns a copy of the attribute map.
func (e *Element) Attributes() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

func (e *Element) SetStyle(name, value string) {
	if e.styles == nil {
		e.styles = map[string]string{}
	}
	e.styles[name] = value
}

func (e *Element) RemoveStyle(name string) {
	delete(e.styles, name)
}

func (e *Element) Style(name string) (string, bool) {
	v, ok := e.styles[name]
	return v, ok
}

// AppendChild moves child to the end of e's child list, detaching it from
// its current parent first.
func (e *Element) AppendChild(child *Element) {
	e.InsertBefore(child, nil)
}

// InsertBefore places child immediately before ref among e's children, or
// at the end when ref is nil. A child that already has a parent is removed
// from it first, so inserting is always a move, never a copy. Inserting an
// element before itself is a no-op. Panics if ref is non-nil but not a
// child of e; that is a caller bug.
func (e *Element) InsertBefore(child, ref *Element) {
	if child == ref {
		return
	}
	child.Remove()
	if ref == nil {
		child.parent = e
		e.children = append(e.children, child)
		return
	}
	for i, c := range e.children {
		if c == ref {
			child.parent = e
			e.children = append(e.children, nil)
			copy(e.children[i+1:], e.children[i:])
			e.children[i] = child
			return
		}
	}
	panic("dom: InsertBefore reference is not a child of this element")
}

// Remove detaches e from its parent. No-op when already detached.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}
