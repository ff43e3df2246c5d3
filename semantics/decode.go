package semantics

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// DecodeBatch parses one recorded update batch:
//
//	{"nodes": [{"id": 0, "label": "...", "childrenInTraversalOrder": [1,2], ...}, ...]}
//
// Every field is optional and defaults to the neutral value a host sends
// for an empty node. Flags and actions are numeric bitmasks. The wire
// encoding the host framework actually uses is its own business; this
// format exists for fixtures, replay and tests.
func DecodeBatch(data []byte) ([]NodeUpdate, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("semantics: batch is not valid JSON")
	}
	nodes := gjson.GetBytes(data, "nodes")
	if !nodes.Exists() || !nodes.IsArray() {
		return nil, errors.New(`semantics: batch has no "nodes" array`)
	}

	var (
		updates []NodeUpdate
		decErr  error
	)
	nodes.ForEach(func(_, v gjson.Result) bool {
		u, err := decodeNode(v)
		if err != nil {
			decErr = err
			return false
		}
		updates = append(updates, u)
		return true
	})
	return updates, decErr
}

func decodeNode(v gjson.Result) (NodeUpdate, error) {
	id := v.Get("id")
	if !id.Exists() {
		return NodeUpdate{}, errors.New("semantics: batch node without an id")
	}
	u := NewNodeUpdate(id.Int())

	u.Flags = Flag(v.Get("flags").Uint())
	u.Actions = Action(v.Get("actions").Uint())

	u.MaxValueLength = int32(v.Get("maxValueLength").Int())
	u.CurrentValueLength = int32(v.Get("currentValueLength").Int())
	u.TextSelectionBase = int32(v.Get("textSelectionBase").Int())
	u.TextSelectionExtent = int32(v.Get("textSelectionExtent").Int())

	u.ScrollChildren = int32(v.Get("scrollChildren").Int())
	u.ScrollIndex = int32(v.Get("scrollIndex").Int())
	u.ScrollPosition = v.Get("scrollPosition").Float()
	u.ScrollExtentMax = v.Get("scrollExtentMax").Float()
	u.ScrollExtentMin = v.Get("scrollExtentMin").Float()

	if r := v.Get("rect"); r.Exists() {
		u.Rect = Rect{
			Left:   r.Get("left").Float(),
			Top:    r.Get("top").Float(),
			Right:  r.Get("right").Float(),
			Bottom: r.Get("bottom").Float(),
		}
	}
	if tr := v.Get("transform"); tr.Exists() {
		arr := tr.Array()
		if len(arr) != 16 {
			return NodeUpdate{}, fmt.Errorf("semantics: node %d transform has %d entries, want 16", u.ID, len(arr))
		}
		for i, e := range arr {
			u.Transform[i] = e.Float()
		}
	}
	u.Elevation = v.Get("elevation").Float()
	u.Thickness = v.Get("thickness").Float()

	u.Label = v.Get("label").String()
	u.LabelAttributes = decodeAttributes(v.Get("labelAttributes"))
	u.Hint = v.Get("hint").String()
	u.HintAttributes = decodeAttributes(v.Get("hintAttributes"))
	u.Value = v.Get("value").String()
	u.ValueAttributes = decodeAttributes(v.Get("valueAttributes"))
	u.IncreasedValue = v.Get("increasedValue").String()
	u.IncreasedValueAttributes = decodeAttributes(v.Get("increasedValueAttributes"))
	u.DecreasedValue = v.Get("decreasedValue").String()
	u.DecreasedValueAttributes = decodeAttributes(v.Get("decreasedValueAttributes"))
	u.Tooltip = v.Get("tooltip").String()

	switch v.Get("textDirection").String() {
	case "ltr":
		u.TextDirection = TextDirectionLTR
	case "rtl":
		u.TextDirection = TextDirectionRTL
	}

	u.ChildrenInTraversalOrder = decodeIDList(v.Get("childrenInTraversalOrder"))
	u.ChildrenInHitTestOrder = decodeIDList(v.Get("childrenInHitTestOrder"))
	if u.ChildrenInHitTestOrder == nil {
		// Hosts that only record traversal order imply identical
		// hit-test order.
		u.ChildrenInHitTestOrder = append([]int64(nil), u.ChildrenInTraversalOrder...)
	}
	u.AdditionalActions = decodeIDList(v.Get("additionalActions"))

	if pv := v.Get("platformViewId"); pv.Exists() {
		u.PlatformViewID = pv.Int()
	}
	return u, nil
}

func decodeIDList(v gjson.Result) []int64 {
	if !v.Exists() {
		return nil
	}
	arr := v.Array()
	if len(arr) == 0 {
		return nil
	}
	out := make([]int64, len(arr))
	for i, e := range arr {
		out[i] = e.Int()
	}
	return out
}

func decodeAttributes(v gjson.Result) []StringAttribute {
	if !v.Exists() {
		return nil
	}
	var out []StringAttribute
	v.ForEach(func(_, e gjson.Result) bool {
		a := StringAttribute{
			Start: int32(e.Get("start").Int()),
			End:   int32(e.Get("end").Int()),
		}
		if e.Get("kind").String() == "locale" {
			a.Kind = Locale
			a.LocaleID = e.Get("locale").String()
		}
		out = append(out, a)
		return true
	})
	return out
}
