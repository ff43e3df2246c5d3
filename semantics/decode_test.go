package semantics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suhaib0edu/ariabridge/dom"
	"github.com/suhaib0edu/ariabridge/semantics"
)

const sampleBatch = `{
  "nodes": [
    {
      "id": 0,
      "childrenInTraversalOrder": [1, 2],
      "childrenInHitTestOrder": [2, 1]
    },
    {
      "id": 1,
      "flags": 8,
      "actions": 1,
      "label": "Submit",
      "labelAttributes": [{"start": 0, "end": 6, "kind": "spellOut"}],
      "rect": {"left": 0, "top": 0, "right": 120, "bottom": 48},
      "textDirection": "ltr"
    },
    {
      "id": 2,
      "value": "50%",
      "scrollPosition": 10.5,
      "platformViewId": 7,
      "childrenInTraversalOrder": []
    }
  ]
}`

// the recorded-batch format round-trips into NodeUpdate snapshots
func TestDecodeBatch(t *testing.T) {
	updates, err := semantics.DecodeBatch([]byte(sampleBatch))
	require.NoError(t, err)
	require.Len(t, updates, 3)

	root := updates[0]
	assert.Equal(t, int64(0), root.ID)
	assert.Equal(t, []int64{1, 2}, root.ChildrenInTraversalOrder)
	assert.Equal(t, []int64{2, 1}, root.ChildrenInHitTestOrder)
	assert.Equal(t, semantics.NoPlatformView, root.PlatformViewID)
	assert.Equal(t, semantics.IdentityTransform, root.Transform)

	button := updates[1]
	assert.Equal(t, semantics.Flag(8), button.Flags)
	assert.Equal(t, semantics.ActionTap, button.Actions)
	assert.Equal(t, "Submit", button.Label)
	require.Len(t, button.LabelAttributes, 1)
	assert.Equal(t, semantics.SpellOut, button.LabelAttributes[0].Kind)
	assert.Equal(t, 120.0, button.Rect.Width())
	assert.Equal(t, semantics.TextDirectionLTR, button.TextDirection)

	view := updates[2]
	assert.Equal(t, "50%", view.Value)
	assert.Equal(t, 10.5, view.ScrollPosition)
	assert.Equal(t, int64(7), view.PlatformViewID)
	assert.Nil(t, view.ChildrenInTraversalOrder)
}

// hit-test order defaults to traversal order when not recorded
func TestDecodeBatchHitTestDefault(t *testing.T) {
	updates, err := semantics.DecodeBatch([]byte(`{"nodes":[{"id":0,"childrenInTraversalOrder":[3,1]}]}`))
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, updates[0].ChildrenInHitTestOrder)
}

// malformed input is rejected, not half-applied
func TestDecodeBatchErrors(t *testing.T) {
	_, err := semantics.DecodeBatch([]byte(`{"nodes": [`))
	assert.Error(t, err)

	_, err = semantics.DecodeBatch([]byte(`{}`))
	assert.Error(t, err)

	_, err = semantics.DecodeBatch([]byte(`{"nodes":[{"label":"no id"}]}`))
	assert.Error(t, err)

	_, err = semantics.DecodeBatch([]byte(`{"nodes":[{"id":0,"transform":[1,2,3]}]}`))
	assert.Error(t, err)
}

// a decoded batch drives the owner end to end
func TestDecodedBatchApplies(t *testing.T) {
	updates, err := semantics.DecodeBatch([]byte(sampleBatch))
	require.NoError(t, err)

	o := semantics.NewOwner(dom.NewElement("mount"), nil)
	o.Strict = true
	o.UpdateSemantics(updates)

	require.NoError(t, o.Validate())
	assert.Equal(t, 3, o.Len())
	assert.Equal(t, "Submit", o.Node(1).Label())
}
