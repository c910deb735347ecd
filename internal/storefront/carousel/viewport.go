package carousel

// Tailwind-aligned breakpoints used by the storefront layout.
const (
	breakpointSM = 640
	breakpointLG = 1024
)

// ClassifyViewport maps a viewport width in pixels to the number of product
// cards shown at once. Pure and idempotent; callers re-run it on every
// resize signal.
func ClassifyViewport(width int) int {
	switch {
	case width < breakpointSM:
		return 1
	case width < breakpointLG:
		return 2
	default:
		return 4
	}
}
