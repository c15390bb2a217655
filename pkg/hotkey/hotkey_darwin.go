//go:build darwin

package hotkey

import (
	"fmt"

	"github.com/hamidzr/displaymode/model"
	"github.com/pkg/errors"
	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"
)

var modifiers = map[model.Modifier]hotkey.Modifier{
	model.ModCtrl:   hotkey.ModCtrl,
	model.ModOption: hotkey.ModOption,
	model.ModShift:  hotkey.ModShift,
	model.ModCmd:    hotkey.ModCmd,
}

var keys = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"f13": hotkey.KeyF13, "f14": hotkey.KeyF14, "f15": hotkey.KeyF15, "f16": hotkey.KeyF16,
	"f17": hotkey.KeyF17, "f18": hotkey.KeyF18, "f19": hotkey.KeyF19, "f20": hotkey.KeyF20,
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"delete": hotkey.KeyDelete,
	"left":   hotkey.KeyLeft,
	"right":  hotkey.KeyRight,
	"up":     hotkey.KeyUp,
	"down":   hotkey.KeyDown,
}

type entry struct {
	chord model.Chord
	hk    *hotkey.Hotkey
	done  chan struct{}
}

// Run calls fn with the main thread set up for hotkey event delivery.
// It must be called from main.
func Run(fn func()) {
	mainthread.Init(fn)
}

func register(chord model.Chord, fn func()) (*entry, error) {
	key, ok := keys[chord.Key]
	if !ok {
		return nil, fmt.Errorf("key %q cannot be used as a hotkey", chord.Key)
	}
	mods := make([]hotkey.Modifier, 0, len(chord.Modifiers))
	for _, m := range chord.Modifiers {
		mods = append(mods, modifiers[m])
	}
	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return nil, errors.Wrapf(err, "failed to register hotkey %s", chord)
	}
	e := &entry{chord: chord, hk: hk, done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-e.done:
				return
			case _, ok := <-hk.Keydown():
				if !ok {
					return
				}
				fn()
			}
		}
	}()
	return e, nil
}

func (e *entry) unregister() error {
	close(e.done)
	return e.hk.Unregister()
}
