package model

import "strings"

// Modifier is a keyboard modifier of a shortcut chord.
type Modifier string

const (
	ModCtrl   Modifier = "ctrl"
	ModOption Modifier = "option"
	ModShift  Modifier = "shift"
	ModCmd    Modifier = "cmd"
)

// ModifierOrder is the canonical order modifiers are written in.
var ModifierOrder = []Modifier{ModCtrl, ModOption, ModShift, ModCmd}

// Chord is a parsed key combination such as ctrl+option+1.
type Chord struct {
	Modifiers []Modifier
	Key       string
}

func (c Chord) String() string {
	parts := make([]string, 0, len(c.Modifiers)+1)
	for _, m := range c.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}

// Preset is a named target mode for a display.
type Preset struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	DisplayID uint32     `json:"displayId" yaml:"displayId"`
	Target    TargetSpec `json:"target" yaml:"target"`
}

// Shortcut binds a key chord to a target mode for a display.
type Shortcut struct {
	ID string `json:"id" yaml:"id"`
	// Keys is the chord as typed by the user, e.g. "ctrl+option+1".
	Keys      string     `json:"keys" yaml:"keys"`
	DisplayID uint32     `json:"displayId" yaml:"displayId"`
	Target    TargetSpec `json:"target" yaml:"target"`
}
