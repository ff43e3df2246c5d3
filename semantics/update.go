package semantics

// Rect is a node's bounding box in its parent's coordinate space, given as
// left/top/right/bottom edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Transform is a column-major 4x4 matrix mapping the node's coordinate
// space into its parent's. The full matrix math lives with the host; the
// core only inspects the translation components and recognizes identity.
type Transform [16]float64

var IdentityTransform = Transform{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

func (t Transform) IsIdentity() bool { return t == IdentityTransform }

// TranslationXY returns the 2D translation components.
func (t Transform) TranslationXY() (x, y float64) { return t[12], t[13] }

// NoPlatformView marks the absence of an embedded platform surface.
const NoPlatformView int64 = -1

// NodeUpdate is one record of an update batch: the complete new state of a
// node, not a delta. The core compares every field against the node's
// stored value and computes the dirty set itself.
type NodeUpdate struct {
	ID int64

	Flags   Flag
	Actions Action

	MaxValueLength      int32
	CurrentValueLength  int32
	TextSelectionBase   int32
	TextSelectionExtent int32

	ScrollChildren  int32
	ScrollIndex     int32
	ScrollPosition  float64
	ScrollExtentMax float64
	ScrollExtentMin float64

	Rect      Rect
	Transform Transform
	Elevation float64
	Thickness float64

	Label                    string
	LabelAttributes          []StringAttribute
	Hint                     string
	HintAttributes           []StringAttribute
	Value                    string
	ValueAttributes          []StringAttribute
	IncreasedValue           string
	IncreasedValueAttributes []StringAttribute
	DecreasedValue           string
	DecreasedValueAttributes []StringAttribute
	Tooltip                  string
	TextDirection            TextDirection

	ChildrenInTraversalOrder []int64
	ChildrenInHitTestOrder   []int64
	AdditionalActions        []int64

	PlatformViewID int64
}

// NewNodeUpdate returns an update for id with the neutral defaults a host
// would send for an empty node: identity transform and no platform view.
func NewNodeUpdate(id int64) NodeUpdate {
	return NodeUpdate{
		ID:             id,
		Transform:      IdentityTransform,
		PlatformViewID: NoPlatformView,
	}
}

func int64SlicesEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
