package state

// Option is one choice offered by a popup.
type Option struct {
	Label string
	Value string
}

// Popup is a modal list of options with its own cursor.
type Popup struct {
	Title   string
	Options []Option
	Cursor  int
}

// NewPopup returns a popup with the first option highlighted.
func NewPopup(title string, options []Option) *Popup {
	return &Popup{Title: title, Options: options}
}

// MoveBy shifts the highlighted option, clamped to the option list.
func (p *Popup) MoveBy(delta int) bool {
	if len(p.Options) == 0 {
		p.Cursor = 0
		return false
	}
	old := p.Cursor
	p.Cursor += delta
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	if p.Cursor >= len(p.Options) {
		p.Cursor = len(p.Options) - 1
	}
	return p.Cursor != old
}

// MoveHome highlights the first option.
func (p *Popup) MoveHome() bool {
	return p.MoveBy(-len(p.Options))
}

// MoveEnd highlights the last option.
func (p *Popup) MoveEnd() bool {
	return p.MoveBy(len(p.Options))
}

// Selected returns the highlighted option.
func (p *Popup) Selected() (Option, bool) {
	if p == nil || p.Cursor < 0 || p.Cursor >= len(p.Options) {
		return Option{}, false
	}
	return p.Options[p.Cursor], true
}
