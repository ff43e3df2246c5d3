// Package semantics maintains a retained accessibility tree and projects it
// onto a live element hierarchy. Each frame the host delivers a batch of
// full-snapshot node updates; the owner applies them in two phases (node
// data first, then structure), reconciles child lists with minimal element
// movement, and finalizes deferred attach/detach declarations.
package semantics

// Flag is a bitmask of boolean semantic properties carried by a node.
type Flag uint32

const (
	FlagHasCheckedState Flag = 1 << iota
	FlagIsChecked
	FlagIsSelected
	FlagIsButton
	FlagIsTextField
	FlagIsFocused
	FlagHasEnabledState
	FlagIsEnabled
	FlagIsInMutuallyExclusiveGroup
	FlagIsHeader
	FlagIsObscured
	FlagScopesRoute
	FlagNamesRoute
	FlagIsHidden
	FlagIsImage
	FlagIsLiveRegion
	FlagHasToggledState
	FlagIsToggled
	FlagHasImplicitScrolling
	FlagIsMultiline
	FlagIsReadOnly
	FlagIsFocusable
	FlagIsLink
	FlagIsSlider
)

func (f Flag) Has(other Flag) bool { return f&other != 0 }

// Action is a bitmask of the actions a node can perform on behalf of the
// user.
type Action uint32

const (
	ActionTap Action = 1 << iota
	ActionLongPress
	ActionScrollLeft
	ActionScrollRight
	ActionScrollUp
	ActionScrollDown
	ActionIncrease
	ActionDecrease
	ActionShowOnScreen
	ActionMoveCursorForwardByCharacter
	ActionMoveCursorBackwardByCharacter
	ActionSetSelection
	ActionCopy
	ActionCut
	ActionPaste
	ActionDidGainAccessibilityFocus
	ActionDidLoseAccessibilityFocus
	ActionCustomAction
	ActionDismiss
	ActionMoveCursorForwardByWord
	ActionMoveCursorBackwardByWord
	ActionSetText
)

func (a Action) Has(other Action) bool { return a&other != 0 }

const actionScrollAny = ActionScrollLeft | ActionScrollRight | ActionScrollUp | ActionScrollDown

// DirtyField identifies one category of node fields in a node's dirty
// mask. Paired fields (a string and its attribute runs) share one bit.
type DirtyField uint32

const (
	DirtyFlags DirtyField = 1 << iota
	DirtyActions
	DirtyRect
	DirtyTransform
	DirtyElevation
	DirtyThickness
	DirtyScrollChildren
	DirtyScrollIndex
	DirtyScrollPosition
	DirtyScrollExtents
	DirtyLabel
	DirtyHint
	DirtyValue
	DirtyIncreasedValue
	DirtyDecreasedValue
	DirtyTooltip
	DirtyTextDirection
	DirtyTextSelection
	DirtyValueLength
	DirtyChildrenInTraversalOrder
	DirtyChildrenInHitTestOrder
	DirtyAdditionalActions
	DirtyPlatformViewID

	dirtyGeometry = DirtyRect | DirtyTransform | DirtyScrollPosition
)

// Features describes platform accessibility settings as reported by the
// host. A plain bitfield wrapper; the gesture arbiter consumes it for
// support detection, everything else only ever asks Has.
type Features uint32

const (
	FeatureAccessibleNavigation Features = 1 << iota
	FeatureInvertColors
	FeatureDisableAnimations
	FeatureBoldText
	FeatureReduceMotion
	FeatureHighContrast
	FeatureOnOffSwitchLabels
)

func (f Features) Has(other Features) bool { return f&other != 0 }

// TextDirection is the reading direction of a node's text content.
type TextDirection uint8

const (
	TextDirectionUnset TextDirection = iota
	TextDirectionRTL
	TextDirectionLTR
)
