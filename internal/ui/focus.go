package ui

// FocusRing rotates focus over a fixed list of panel IDs.
type FocusRing struct {
	Order   []string
	current int
}

// NewFocusRing focuses the first ID.
func NewFocusRing(ids ...string) *FocusRing {
	return &FocusRing{Order: ids}
}

// Current returns the focused ID, or "" for an empty ring.
func (f *FocusRing) Current() string {
	if len(f.Order) == 0 {
		return ""
	}
	return f.Order[f.current]
}

// Index returns the focused position.
func (f *FocusRing) Index() int { return f.current }

// Next moves focus forward, wrapping at the end.
func (f *FocusRing) Next() string {
	if len(f.Order) == 0 {
		return ""
	}
	f.current = (f.current + 1) % len(f.Order)
	return f.Current()
}

// Prev moves focus backward, wrapping at the start.
func (f *FocusRing) Prev() string {
	if len(f.Order) == 0 {
		return ""
	}
	f.current = (f.current - 1 + len(f.Order)) % len(f.Order)
	return f.Current()
}

// Set focuses id and reports whether it exists.
func (f *FocusRing) Set(id string) bool {
	for i, o := range f.Order {
		if o == id {
			f.current = i
			return true
		}
	}
	return false
}
