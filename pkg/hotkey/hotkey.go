// Package hotkey registers global keyboard shortcuts with the OS.
package hotkey

import (
	"sync"

	"github.com/hamidzr/displaymode/model"
	"github.com/sirupsen/logrus"
)

// Registrar owns a set of registered global hotkeys.
type Registrar struct {
	mu      sync.Mutex
	entries []*entry
}

// NewRegistrar creates an empty registrar.
func NewRegistrar() *Registrar {
	return &Registrar{}
}

// Register binds chord to fn. fn runs on a listener goroutine, once per
// key-down.
func (r *Registrar) Register(chord model.Chord, fn func()) error {
	e, err := register(chord, fn)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()
	logrus.WithField("chord", chord.String()).Debug("registered hotkey")
	return nil
}

// Len returns the number of registered hotkeys.
func (r *Registrar) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close unregisters every hotkey. The registrar can be reused afterwards.
func (r *Registrar) Close() {
	r.mu.Lock()
	entries := r.entries
	r.entries = nil
	r.mu.Unlock()
	for _, e := range entries {
		if err := e.unregister(); err != nil {
			logrus.WithError(err).WithField("chord", e.chord.String()).Warn("failed to unregister hotkey")
		}
	}
}
