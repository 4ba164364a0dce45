package components

// UIState represents the current state of a UI element (e.g., button).
type UIState int

const (
	// UINormal indicates the pointer is outside the UI element ("out" frame).
	UINormal UIState = iota
	// UIHovered indicates the pointer is over the UI element ("over" frame).
	UIHovered
	// UIClicked indicates the UI element is being pressed ("down" frame).
	UIClicked
	// UIDisabled indicates the UI element is disabled and cannot be interacted with.
	UIDisabled
)

// String returns the state name used in logs.
func (s UIState) String() string {
	switch s {
	case UINormal:
		return "normal"
	case UIHovered:
		return "hovered"
	case UIClicked:
		return "clicked"
	case UIDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}
