// Package nav holds the layout constants of the documentation navigation bar.
package nav

const (
	// BaseNavHeight is the navigation bar height in pixels.
	BaseNavHeight = 52

	// BaseNavHeightSmallBreakpoint is the navigation bar height below the
	// small viewport breakpoint.
	BaseNavHeightSmallBreakpoint = 48
)

// BaseNavStickyAnchorID is the element id the sticky navigation bar anchors to.
const BaseNavStickyAnchorID = "nav-sticky-anchor"
