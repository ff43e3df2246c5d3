package semantics

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/suhaib0edu/ariabridge/dom"
)

// phase tracks where the owner is inside one update cycle.
type phase uint8

const (
	phaseIdle phase = iota
	phaseSelfUpdating
	phaseStructureFixing
	phaseFinalizing
)

// OnErrorFunc receives structural inconsistencies the owner chose to skip
// instead of crashing on. Only called when Strict is off.
type OnErrorFunc func(err error)

// Stats counts the structural work of the most recent update cycle.
type Stats struct {
	// Moves is the number of element insertions performed by the
	// reconciler against non-empty previous orders.
	Moves int
	// Attachments and Detachments count attach/detach declarations,
	// before finalization resolves same-cycle reparenting.
	Attachments int
	Detachments int
	// Removals is the number of nodes permanently destroyed at
	// finalization.
	Removals int
}

// Owner holds the full node table and runs the two-phase update protocol:
// first every node in the batch applies its own data and reacts through
// the role registry, then structure is fixed up via the reconciler, then
// deferred attach/detach declarations are finalized. One Owner per tree;
// the host must serialize calls, no batch may be delivered while another
// is being applied.
type Owner struct {
	mount *dom.Element
	nodes map[int64]*Node

	// Strict turns invariant violations into panics. Production hosts
	// leave it off and get best-effort self-healing plus onError reports.
	Strict  bool
	onError OnErrorFunc

	phase         phase
	rootPublished bool

	pendingAttachments map[int64]*Node
	pendingDetachments []*Node
	pendingDetachIDs   mapset.Set[int64]

	postUpdateCallbacks []func()
	stats               Stats
}

// NewOwner creates an owner that publishes the tree root into mount on
// the first cycle that produces node 0. onError may be nil.
func NewOwner(mount *dom.Element, onError OnErrorFunc) *Owner {
	return &Owner{
		mount:              mount,
		nodes:              map[int64]*Node{},
		onError:            onError,
		pendingAttachments: map[int64]*Node{},
		pendingDetachIDs:   mapset.NewThreadUnsafeSet[int64](),
	}
}

// Node returns the node for id, or nil. Debug and test use.
func (o *Owner) Node(id int64) *Node { return o.nodes[id] }

// Len is the number of live nodes in the table.
func (o *Owner) Len() int { return len(o.nodes) }

// Root returns the root node (id 0) once the first successful update has
// produced it.
func (o *Owner) Root() *Node { return o.nodes[0] }

// Stats reports the structural work of the last completed cycle.
func (o *Owner) Stats() Stats { return o.stats }

// NodeIDs returns the ids currently in the table, unordered.
func (o *Owner) NodeIDs() []int64 {
	out := make([]int64, 0, len(o.nodes))
	for id := range o.nodes {
		out = append(out, id)
	}
	return out
}

// AddOneTimePostUpdateCallback registers fn to run once, after the next
// tree settle. Collaborators use this for post-layout timing.
func (o *Owner) AddOneTimePostUpdateCallback(fn func()) {
	o.postUpdateCallbacks = append(o.postUpdateCallbacks, fn)
}

// UpdateSemantics applies one update batch. Records are full snapshots;
// the owner computes what changed. The whole cycle runs synchronously:
// Idle -> SelfUpdating -> StructureFixing -> Finalizing -> Idle.
func (o *Owner) UpdateSemantics(updates []NodeUpdate) {
	if o.phase != phaseIdle {
		panic("semantics: UpdateSemantics re-entered mid-cycle")
	}
	o.stats = Stats{}

	o.phase = phaseSelfUpdating
	for i := range updates {
		u := &updates[i]
		n := o.getOrCreate(u.ID)
		n.applyUpdate(u)
		n.updateRoles()
	}

	o.phase = phaseStructureFixing
	for i := range updates {
		n := o.nodes[updates[i].ID]
		n.updateChildren()
		n.dirty = 0
	}

	o.phase = phaseFinalizing
	o.finalize()

	if root, ok := o.nodes[0]; ok && !o.rootPublished {
		o.mount.AppendChild(root.element)
		o.rootPublished = true
	}
	o.phase = phaseIdle

	if o.Strict {
		if err := o.Validate(); err != nil {
			panic(err)
		}
	}
}

func (o *Owner) getOrCreate(id int64) *Node {
	n, ok := o.nodes[id]
	if !ok {
		n = newNode(o, id)
		o.nodes[id] = n
	}
	return n
}

// declareAttached records that child now belongs to parent. An attachment
// always overrides a pending detachment for the same id, which is what
// makes same-frame reparenting work.
func (o *Owner) declareAttached(parent, child *Node) {
	child.parent = parent
	o.pendingAttachments[child.id] = parent
	o.stats.Attachments++
}

// declareDetached records that child left its rendering parent this
// cycle. Whether that is a removal or a reparenting is decided at
// finalization.
func (o *Owner) declareDetached(child *Node) {
	if o.pendingDetachIDs.Add(child.id) {
		o.pendingDetachments = append(o.pendingDetachments, child)
		o.stats.Detachments++
	}
}

// finalize resolves the cycle's attach/detach declarations: every
// detached node without a matching attachment is destroyed along with any
// descendants that did not escape by reparenting. Then the one-time
// post-update callbacks run and the declaration lists reset.
func (o *Owner) finalize() {
	for _, n := range o.pendingDetachments {
		o.finalizeDetached(n)
	}
	o.pendingDetachments = nil
	o.pendingDetachIDs.Clear()
	o.pendingAttachments = map[int64]*Node{}

	cbs := o.postUpdateCallbacks
	o.postUpdateCallbacks = nil
	for _, cb := range cbs {
		cb()
	}
}

func (o *Owner) finalizeDetached(n *Node) {
	if _, live := o.nodes[n.id]; !live {
		// Already finalized through an ancestor, possibly after
		// reattaching into a subtree that was itself removed. No-op.
		return
	}
	if parent, reattached := o.pendingAttachments[n.id]; reattached {
		if n.parent != parent {
			o.fail(fmt.Errorf("semantics: node %d recorded parent disagrees with its attachment", n.id))
		}
		return
	}
	o.removeNode(n)
}

func (o *Owner) removeNode(n *Node) {
	delete(o.nodes, n.id)
	n.disposeRoles()
	n.parent = nil
	n.element.Remove()
	o.stats.Removals++
	for _, child := range n.renderedChildren {
		// A child that reparented away this cycle is no longer ours.
		if child.parent == n {
			o.removeNode(child)
		}
	}
}

// fail surfaces a structural inconsistency: panic in strict builds,
// report-and-skip otherwise.
func (o *Owner) fail(err error) {
	if o.Strict {
		panic(err)
	}
	if o.onError != nil {
		o.onError(err)
	}
}

// Validate walks the whole table and checks the tree invariants: the
// root exists with no parent once published, every child id resolves to a
// node whose parent back-reference matches, hit-test membership equals
// traversal membership, container presence matches child presence, and
// no dirty mask survives finalization. Strict mode runs this after every
// cycle.
func (o *Owner) Validate() error {
	if o.rootPublished {
		root, ok := o.nodes[0]
		if !ok {
			return fmt.Errorf("semantics: root node 0 missing from a published tree")
		}
		if root.parent != nil {
			return fmt.Errorf("semantics: root node 0 has a parent")
		}
	}
	for id, n := range o.nodes {
		if n.dirty != 0 {
			return fmt.Errorf("semantics: node %d dirty mask %#x survived finalization", id, n.dirty)
		}
		if len(n.childrenInTraversalOrder) != len(n.childrenInHitTestOrder) {
			return fmt.Errorf("semantics: node %d traversal and hit-test orders differ in length", id)
		}
		traversal := mapset.NewThreadUnsafeSet(n.childrenInTraversalOrder...)
		for _, cid := range n.childrenInHitTestOrder {
			if !traversal.Contains(cid) {
				return fmt.Errorf("semantics: node %d hit-test child %d not in traversal order", id, cid)
			}
		}
		if len(n.renderedChildren) > 0 && n.childContainer == nil {
			return fmt.Errorf("semantics: node %d has rendered children but no container", id)
		}
		if len(n.renderedChildren) == 0 && n.childContainer != nil {
			return fmt.Errorf("semantics: node %d has a container but no children", id)
		}
		for _, cid := range n.childrenInTraversalOrder {
			child, ok := o.nodes[cid]
			if !ok {
				return fmt.Errorf("semantics: node %d lists child %d which is not in the tree", id, cid)
			}
			if child.parent != n {
				return fmt.Errorf("semantics: node %d is parented to the wrong node", cid)
			}
		}
	}
	return nil
}
