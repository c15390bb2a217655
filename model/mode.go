package model

import "fmt"

// NativeHandle identifies a mode inside one enumeration of a display source.
// It is only meaningful to the source that issued it and only while that
// source is still on the same epoch.
type NativeHandle struct {
	Display uint32 `json:"-" yaml:"-"`
	Epoch   uint64 `json:"-" yaml:"-"`
	// Index into the source's mode list for Display at Epoch.
	Index int `json:"-" yaml:"-"`
}

// RawMode is a display mode as reported by a display source.
type RawMode struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
	// RefreshRate is in Hz. Zero means the display did not report one.
	RefreshRate float64      `json:"refreshRate" yaml:"refreshRate"`
	IsHiDPI     bool         `json:"isHiDPI" yaml:"isHiDPI"`
	Handle      NativeHandle `json:"-" yaml:"-"`
}

// Resolution returns the mode formatted as WxH.
func (m RawMode) Resolution() string {
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

func (m RawMode) String() string {
	s := fmt.Sprintf("%s@%s", m.Resolution(), FormatRate(m.RefreshRate))
	if m.IsHiDPI {
		s += " HiDPI"
	}
	return s
}

// Target returns the handle-free description of the mode.
func (m RawMode) Target() TargetSpec {
	return TargetSpec{
		Width:       m.Width,
		Height:      m.Height,
		RefreshRate: m.RefreshRate,
		IsHiDPI:     m.IsHiDPI,
	}
}

// SameShape reports whether two modes describe the same mode regardless of
// which enumeration they came from.
func (m RawMode) SameShape(o RawMode) bool {
	return m.Width == o.Width && m.Height == o.Height &&
		m.RefreshRate == o.RefreshRate && m.IsHiDPI == o.IsHiDPI
}

// FormatRate renders a refresh rate for display; zero is shown as "default".
func FormatRate(rate float64) string {
	if rate == 0 {
		return "default"
	}
	if rate == float64(int64(rate)) {
		return fmt.Sprintf("%dHz", int64(rate))
	}
	return fmt.Sprintf("%.2fHz", rate)
}

// ResolutionGroup holds the modes of one display sharing a width and height.
// Modes are ordered by refresh rate, highest first, with at most one mode per
// rounded integer rate.
type ResolutionGroup struct {
	Width  int
	Height int
	Modes  []RawMode
}

// Resolution returns the group's resolution formatted as WxH.
func (g ResolutionGroup) Resolution() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// TargetSpec is a persisted description of a wanted mode. It carries no
// handle and is matched against live modes every time it is used.
type TargetSpec struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
	// RefreshRate of zero matches any rate.
	RefreshRate float64 `json:"refreshRate" yaml:"refreshRate"`
	IsHiDPI     bool    `json:"isHiDPI" yaml:"isHiDPI"`
}

func (t TargetSpec) String() string {
	s := fmt.Sprintf("%dx%d", t.Width, t.Height)
	if t.RefreshRate != 0 {
		s += "@" + FormatRate(t.RefreshRate)
	}
	if t.IsHiDPI {
		s += " HiDPI"
	}
	return s
}

// Display is one online display together with its mode list from a single
// enumeration.
type Display struct {
	ID     uint32    `json:"id" yaml:"id"`
	Name   string    `json:"name" yaml:"name"`
	IsMain bool      `json:"isMain" yaml:"isMain"`
	Modes  []RawMode `json:"modes" yaml:"modes"`
	// Current is nil when the source could not tell which mode is active.
	Current *RawMode `json:"current,omitempty" yaml:"current,omitempty"`
}
