//go:build !darwin

package hotkey

import "github.com/hamidzr/displaymode/model"

type entry struct {
	chord model.Chord
}

// Run calls fn.
func Run(fn func()) {
	fn()
}

func register(model.Chord, func()) (*entry, error) {
	return nil, model.ErrUnsupportedPlatform
}

func (e *entry) unregister() error {
	return nil
}
