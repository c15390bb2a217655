package core

import (
	"github.com/hamidzr/displaymode/model"
)

// Picker is the cursor of a two level resolution/refresh rate chooser.
type Picker struct {
	groups []model.ResolutionGroup
	sel    Selection
	ok     bool
}

// NewPicker builds a picker over groups positioned on current.
func NewPicker(groups []model.ResolutionGroup, current *model.RawMode) *Picker {
	p := &Picker{}
	p.Reset(groups, current)
	return p
}

// Reset replaces the groups, e.g. after the display re-enumerated or the
// HiDPI filter changed, and moves the cursor back to current.
func (p *Picker) Reset(groups []model.ResolutionGroup, current *model.RawMode) {
	p.groups = groups
	p.sel, p.ok = InitialSelection(current, groups)
	if !p.ok && len(groups) > 0 {
		p.sel, p.ok = Selection{}, true
	}
}

// Groups returns the groups the picker moves over.
func (p *Picker) Groups() []model.ResolutionGroup {
	return p.groups
}

// Selection returns the cursor. It is false when there are no groups.
func (p *Picker) Selection() (Selection, bool) {
	return p.sel, p.ok
}

// Selected returns the mode under the cursor.
func (p *Picker) Selected() (model.RawMode, bool) {
	if !p.ok {
		return model.RawMode{}, false
	}
	return p.groups[p.sel.Group].Modes[p.sel.Rate], true
}

// MoveGroup moves to another resolution, clamped to the ends. The rate stays
// on the same refresh rate when the new resolution offers it, otherwise it
// goes to the highest one.
func (p *Picker) MoveGroup(delta int) {
	if !p.ok {
		return
	}
	prev, _ := p.Selected()
	p.sel.Group = clamp(p.sel.Group+delta, len(p.groups))
	p.sel.Rate = 0
	for i, m := range p.groups[p.sel.Group].Modes {
		if withinTolerance(m.RefreshRate, prev.RefreshRate) {
			p.sel.Rate = i
			break
		}
	}
}

// MoveRate moves between refresh rates of the current resolution.
func (p *Picker) MoveRate(delta int) {
	if !p.ok {
		return
	}
	p.sel.Rate = clamp(p.sel.Rate+delta, len(p.groups[p.sel.Group].Modes))
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
