package panel

// StatusBarHeight is the height reserved for the status bar at the bottom.
const StatusBarHeight = 2

// SidebarWidth is the preferred width of the host list in characters.
const SidebarWidth = 28

// Layout represents the position and size of a view in screen coordinates.
type Layout struct {
	X0, Y0, X1, Y1 int
}

// Width returns the interior width (excluding borders).
func (l Layout) Width() int {
	w := l.X1 - l.X0 - 1
	if w < 1 {
		return 1
	}
	return w
}

// Height returns the interior height (excluding borders).
func (l Layout) Height() int {
	h := l.Y1 - l.Y0 - 1
	if h < 1 {
		return 1
	}
	return h
}

// DeckLayout holds the four regions of the main screen:
//
//	[ hosts   ][               ]
//	[         ][   terminal    ]
//	[ details ][               ]
//	[       status bar         ]
type DeckLayout struct {
	Hosts     Layout
	Details   Layout
	Main      Layout
	StatusBar Layout
}

// CalculateDeckLayout splits the screen into the host list (top-left),
// host details (bottom-left), terminal panel (right) and status bar.
func CalculateDeckLayout(maxX, maxY int) DeckLayout {
	sidebarWidth := SidebarWidth
	if sidebarWidth > maxX/3 {
		sidebarWidth = maxX / 3
	}
	if sidebarWidth < 12 {
		sidebarWidth = 12
	}

	bodyBottom := maxY - StatusBarHeight - 1
	if bodyBottom < 2 {
		bodyBottom = 2
	}

	// details take the lower third of the sidebar
	detailsTop := bodyBottom * 2 / 3
	if detailsTop < 3 {
		detailsTop = 3
	}

	return DeckLayout{
		Hosts:     Layout{0, 0, sidebarWidth - 1, detailsTop - 1},
		Details:   Layout{0, detailsTop, sidebarWidth - 1, bodyBottom},
		Main:      Layout{sidebarWidth, 0, maxX - 1, bodyBottom},
		StatusBar: Layout{0, bodyBottom + 1, maxX - 1, maxY - 1},
	}
}
