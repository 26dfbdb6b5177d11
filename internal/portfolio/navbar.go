package portfolio

// Section is a laid out block of the page, in rows.
type Section struct {
	ID     string
	Title  string
	Top    int
	Height int
}

type Navbar struct {
	// ScrolledAfter is the scroll offset past which the bar is "scrolled".
	ScrolledAfter int
	// ActiveOffset is subtracted from section tops for the active-link test.
	ActiveOffset int
	// ScrollOffset is subtracted from section tops for the smooth-scroll
	// target. It must be smaller than ActiveOffset for a jump to land inside
	// the section it highlights.
	ScrollOffset int
}

func (n Navbar) Scrolled(scrollY int) bool {
	return scrollY > n.ScrolledAfter
}

// Active returns the id of the section under scrollY. When ranges overlap
// the later section wins, as every matching section re-marks the link.
func (n Navbar) Active(sections []Section, scrollY int) string {
	active := ""
	for _, s := range sections {
		top := s.Top - n.ActiveOffset
		if scrollY > top && scrollY <= top+s.Height {
			active = s.ID
		}
	}
	return active
}

// ScrollTarget resolves an in-page href such as "#projects" to a scroll
// offset. A bare "#" and unknown ids resolve to nothing.
func (n Navbar) ScrollTarget(sections []Section, href string) (int, bool) {
	if href == "#" || len(href) < 2 || href[0] != '#' {
		return 0, false
	}
	id := href[1:]
	for _, s := range sections {
		if s.ID == id {
			return max(s.Top-n.ScrollOffset, 0), true
		}
	}
	return 0, false
}

// SmoothStep moves current a quarter of the way to target, at least one row,
// never past it.
func SmoothStep(current, target int) int {
	d := target - current
	switch {
	case d == 0:
		return current
	case d > 0:
		return current + max(d/4, 1)
	default:
		return current + min(d/4, -1)
	}
}
