package store

import (
	"github.com/google/uuid"
	"github.com/hamidzr/displaymode/model"
	"github.com/hamidzr/displaymode/pkg/shortcut"
	"github.com/pkg/errors"
)

// SettingsVersion is written into every saved settings document.
const SettingsVersion = 1

// Settings is the persisted user document: presets and shortcut bindings.
type Settings struct {
	Version int `json:"version" yaml:"version"`
	// Filter is the hidpi filter the picker starts with; empty means all.
	Filter    string           `json:"filter,omitempty" yaml:"filter,omitempty"`
	Presets   []model.Preset   `json:"presets" yaml:"presets"`
	Shortcuts []model.Shortcut `json:"shortcuts" yaml:"shortcuts"`
}

// Validate checks the filter name, that every shortcut parses and that no two
// shortcuts share a chord.
func (s Settings) Validate() error {
	if _, err := model.ParseHiDPIFilter(s.Filter); err != nil {
		return err
	}
	seen := make(map[string]string, len(s.Shortcuts))
	for _, sc := range s.Shortcuts {
		canonical, err := shortcut.Canonical(sc.Keys)
		if err != nil {
			return err
		}
		if prev, ok := seen[canonical]; ok {
			return errors.Wrapf(model.ErrDuplicateShortcut, "%q and %q are both %s", prev, sc.Keys, canonical)
		}
		seen[canonical] = sc.Keys
	}
	return nil
}

// AddPreset appends a preset and returns it with a fresh id.
func (s *Settings) AddPreset(name string, displayID uint32, target model.TargetSpec) model.Preset {
	p := model.Preset{
		ID:        uuid.NewString(),
		Name:      name,
		DisplayID: displayID,
		Target:    target,
	}
	s.Presets = append(s.Presets, p)
	return p
}

// FindPreset looks a preset up by id, id prefix or name.
func (s Settings) FindPreset(ref string) (model.Preset, bool) {
	for _, p := range s.Presets {
		if p.ID == ref || p.Name == ref {
			return p, true
		}
	}
	if len(ref) >= 4 {
		for _, p := range s.Presets {
			if len(p.ID) > len(ref) && p.ID[:len(ref)] == ref {
				return p, true
			}
		}
	}
	return model.Preset{}, false
}

// RemovePreset deletes a preset by id, id prefix or name.
func (s *Settings) RemovePreset(ref string) bool {
	p, ok := s.FindPreset(ref)
	if !ok {
		return false
	}
	for i := range s.Presets {
		if s.Presets[i].ID == p.ID {
			s.Presets = append(s.Presets[:i], s.Presets[i+1:]...)
			break
		}
	}
	return true
}

// AddShortcut binds keys to a target. The chord is stored in canonical form
// and must not be taken by another shortcut.
func (s *Settings) AddShortcut(keys string, displayID uint32, target model.TargetSpec) (model.Shortcut, error) {
	canonical, err := shortcut.Canonical(keys)
	if err != nil {
		return model.Shortcut{}, err
	}
	if existing, ok := s.FindShortcut(canonical); ok {
		return model.Shortcut{}, errors.Wrapf(model.ErrDuplicateShortcut, "%s is already bound to %s", canonical, existing.Target)
	}
	sc := model.Shortcut{
		ID:        uuid.NewString(),
		Keys:      canonical,
		DisplayID: displayID,
		Target:    target,
	}
	s.Shortcuts = append(s.Shortcuts, sc)
	return sc, nil
}

// FindShortcut looks a shortcut up by id or by chord in any spelling.
func (s Settings) FindShortcut(ref string) (model.Shortcut, bool) {
	canonical, err := shortcut.Canonical(ref)
	for _, sc := range s.Shortcuts {
		if sc.ID == ref {
			return sc, true
		}
		if err != nil {
			continue
		}
		if c, cerr := shortcut.Canonical(sc.Keys); cerr == nil && c == canonical {
			return sc, true
		}
	}
	return model.Shortcut{}, false
}

// RemoveShortcut deletes a shortcut by id or chord.
func (s *Settings) RemoveShortcut(ref string) bool {
	sc, ok := s.FindShortcut(ref)
	if !ok {
		return false
	}
	for i := range s.Shortcuts {
		if s.Shortcuts[i].ID == sc.ID {
			s.Shortcuts = append(s.Shortcuts[:i], s.Shortcuts[i+1:]...)
			break
		}
	}
	return true
}
