package core

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hamidzr/displaymode/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Key is a picker command decoded from terminal input.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyCancel
	KeyFilter
)

// ErrPickCanceled is returned when the user leaves the picker without
// choosing a mode.
var ErrPickCanceled = errors.New("selection canceled")

// ReadKey reads one key press. Arrow escape sequences, vi keys (hjkl), Enter,
// f, q, Esc and Ctrl+C are understood; anything else is KeyUnknown.
func ReadKey(r *bufio.Reader) (Key, error) {
	char, err := r.ReadByte()
	if err != nil {
		return KeyUnknown, err
	}
	switch char {
	case '\r', '\n':
		return KeyEnter, nil
	case 3, 'q':
		return KeyCancel, nil
	case 'k':
		return KeyUp, nil
	case 'j':
		return KeyDown, nil
	case 'h':
		return KeyLeft, nil
	case 'l':
		return KeyRight, nil
	case 'f':
		return KeyFilter, nil
	case 27:
		// a lone Esc arrives by itself, arrow keys arrive as ESC [ X in one read
		if r.Buffered() == 0 {
			return KeyCancel, nil
		}
		next, err := r.ReadByte()
		if err != nil {
			return KeyUnknown, err
		}
		if next != '[' && next != 'O' {
			return KeyUnknown, nil
		}
		code, err := r.ReadByte()
		if err != nil {
			return KeyUnknown, err
		}
		switch code {
		case 'A':
			return KeyUp, nil
		case 'B':
			return KeyDown, nil
		case 'C':
			return KeyRight, nil
		case 'D':
			return KeyLeft, nil
		}
	}
	return KeyUnknown, nil
}

// PickerView is what the terminal picker needs from its caller.
type PickerView struct {
	// Draw renders the picker state.
	Draw func(w io.Writer, p *Picker) error
	// CycleFilter, when set, is called on f to regroup the picker under
	// another HiDPI filter.
	CycleFilter func(p *Picker)
}

// RunPicker lets the user choose a mode on the terminal. in is switched to
// raw mode for the duration when it is a terminal. Up and down change the
// resolution, left and right the refresh rate.
func RunPicker(in *os.File, out io.Writer, p *Picker, view PickerView) (model.RawMode, error) {
	if _, ok := p.Selection(); !ok {
		return model.RawMode{}, fmt.Errorf("no modes to choose from")
	}
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return model.RawMode{}, fmt.Errorf("failed to set raw terminal mode: %w", err)
		}
		defer func() {
			if err := term.Restore(fd, oldState); err != nil {
				logrus.WithError(err).Warn("failed to restore terminal")
			}
		}()
		out = &rawWriter{w: out}
	}
	return pickLoop(bufio.NewReader(in), out, p, view)
}

func pickLoop(r *bufio.Reader, out io.Writer, p *Picker, view PickerView) (model.RawMode, error) {
	for {
		// clear screen and reset cursor
		fmt.Fprint(out, "\033[2J\033[H")
		if err := view.Draw(out, p); err != nil {
			return model.RawMode{}, err
		}
		key, err := ReadKey(r)
		if err != nil {
			if err == io.EOF {
				return model.RawMode{}, ErrPickCanceled
			}
			return model.RawMode{}, err
		}
		switch key {
		case KeyUp:
			p.MoveGroup(-1)
		case KeyDown:
			p.MoveGroup(1)
		case KeyLeft:
			p.MoveRate(-1)
		case KeyRight:
			p.MoveRate(1)
		case KeyFilter:
			if view.CycleFilter != nil {
				view.CycleFilter(p)
			}
		case KeyEnter:
			mode, ok := p.Selected()
			if !ok {
				continue
			}
			return mode, nil
		case KeyCancel:
			return model.RawMode{}, ErrPickCanceled
		}
	}
}

// rawWriter turns \n into \r\n, which a terminal in raw mode no longer does.
type rawWriter struct {
	w io.Writer
}

func (rw *rawWriter) Write(p []byte) (int, error) {
	if !bytes.Contains(p, []byte("\n")) {
		return rw.w.Write(p)
	}
	if _, err := io.WriteString(rw.w, strings.ReplaceAll(string(p), "\n", "\r\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}
