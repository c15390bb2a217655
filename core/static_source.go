package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hamidzr/displaymode/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// modesFile is the layout of a display fixture file.
type modesFile struct {
	Displays []model.Display `json:"displays" yaml:"displays"`
}

// StaticSource serves displays from memory. It stands in for the OS on
// platforms without display support and in tests.
type StaticSource struct {
	mu       sync.Mutex
	epoch    uint64
	displays []model.Display
}

// NewStaticSource creates a source over a copy of displays.
func NewStaticSource(displays []model.Display) *StaticSource {
	s := &StaticSource{displays: make([]model.Display, len(displays))}
	for i, d := range displays {
		s.displays[i] = copyDisplay(d)
	}
	return s
}

// LoadStaticSource reads a fixture file; .json files are read as JSON and
// anything else as YAML.
func LoadStaticSource(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read modes file %s", path)
	}
	var file modesFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse modes file %s", path)
	}
	logrus.WithField("path", path).Debugf("loaded %d displays from modes file", len(file.Displays))
	return NewStaticSource(file.Displays), nil
}

// Displays implements DisplaySource.
func (s *StaticSource) Displays(ctx context.Context) ([]model.Display, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++

	out := make([]model.Display, len(s.displays))
	for i, d := range s.displays {
		d = copyDisplay(d)
		for mi := range d.Modes {
			d.Modes[mi].Handle = model.NativeHandle{Display: d.ID, Epoch: s.epoch, Index: mi}
		}
		if d.Current != nil {
			for _, m := range d.Modes {
				if m.SameShape(*d.Current) {
					current := m
					d.Current = &current
					break
				}
			}
		}
		out[i] = d
	}
	return out, nil
}

// Apply implements DisplaySource.
func (s *StaticSource) Apply(ctx context.Context, displayID uint32, mode model.RawMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode.Handle.Epoch != s.epoch || mode.Handle.Display != displayID {
		return model.ErrStaleHandle
	}
	for i := range s.displays {
		d := &s.displays[i]
		if d.ID != displayID {
			continue
		}
		idx := mode.Handle.Index
		if idx < 0 || idx >= len(d.Modes) || !d.Modes[idx].SameShape(mode) {
			return model.ErrStaleHandle
		}
		current := d.Modes[idx]
		d.Current = &current
		return nil
	}
	return errors.Wrapf(model.ErrDisplayNotFound, "display %d", displayID)
}

func copyDisplay(d model.Display) model.Display {
	modes := make([]model.RawMode, len(d.Modes))
	copy(modes, d.Modes)
	d.Modes = modes
	if d.Current != nil {
		current := *d.Current
		d.Current = &current
	}
	return d
}
