package core

import (
	"context"
	"sync"
	"time"

	"github.com/hamidzr/displaymode/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Snapshot is the result of one display enumeration.
type Snapshot struct {
	Displays []model.Display
	Taken    time.Time
}

// Display returns the display with id from the snapshot.
func (s Snapshot) Display(id uint32) (model.Display, error) {
	return DisplayByID(s.Displays, id)
}

// Match is a live mode resolved for a target on a specific display.
type Match struct {
	Display model.Display
	Mode    model.RawMode
}

// IsCurrent reports whether the display is already running the mode.
func (m Match) IsCurrent() bool {
	return m.Display.Current != nil && m.Display.Current.SameShape(m.Mode)
}

// Session re-enumerates the display source whenever something needs fresh
// modes. Nothing derived from an enumeration is kept for later use; the last
// snapshot is only remembered so that callers can detect changes.
type Session struct {
	source DisplaySource
	// opMu keeps an enumeration from landing between a Resolve and the
	// Apply of its result, which would make the handle stale.
	opMu sync.Mutex
	mu   sync.Mutex
	last Snapshot
}

// NewSession creates a session over source.
func NewSession(source DisplaySource) *Session {
	return &Session{source: source}
}

// Refresh enumerates displays again.
func (s *Session) Refresh(ctx context.Context) (Snapshot, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.refresh(ctx)
}

func (s *Session) refresh(ctx context.Context) (Snapshot, error) {
	displays, err := s.source.Displays(ctx)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "failed to enumerate displays")
	}
	snap := Snapshot{Displays: displays, Taken: time.Now()}
	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()
	return snap, nil
}

// Last returns the snapshot taken by the most recent Refresh.
func (s *Session) Last() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Changed reports whether displays were added, removed or switched modes
// between two snapshots.
func Changed(prev, next Snapshot) bool {
	if len(prev.Displays) != len(next.Displays) {
		return true
	}
	before := make(map[uint32]*model.RawMode, len(prev.Displays))
	for _, d := range prev.Displays {
		before[d.ID] = d.Current
	}
	for _, d := range next.Displays {
		cur, ok := before[d.ID]
		if !ok {
			return true
		}
		if (cur == nil) != (d.Current == nil) {
			return true
		}
		if cur != nil && !cur.SameShape(*d.Current) {
			return true
		}
	}
	return false
}

// Resolve re-enumerates and matches target against the live modes of the
// display. The boolean is false when the display has no matching mode.
func (s *Session) Resolve(ctx context.Context, displayID uint32, target model.TargetSpec) (Match, bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.resolve(ctx, displayID, target)
}

func (s *Session) resolve(ctx context.Context, displayID uint32, target model.TargetSpec) (Match, bool, error) {
	snap, err := s.refresh(ctx)
	if err != nil {
		return Match{}, false, err
	}
	display, err := snap.Display(displayID)
	if err != nil {
		return Match{}, false, err
	}
	mode, ok := MatchTarget(target, display.Modes)
	if !ok {
		return Match{Display: display}, false, nil
	}
	return Match{Display: display, Mode: mode}, true, nil
}

// Apply switches a display to mode. The mode must come from the latest
// enumeration.
func (s *Session) Apply(ctx context.Context, displayID uint32, mode model.RawMode) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.apply(ctx, displayID, mode)
}

// Switch resolves target on the display and applies it unless the display
// already runs it, with no enumeration in between. The first boolean is false
// when nothing matched, the second reports whether the mode was changed.
func (s *Session) Switch(ctx context.Context, displayID uint32, target model.TargetSpec) (Match, bool, bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	match, ok, err := s.resolve(ctx, displayID, target)
	if err != nil || !ok {
		return match, ok, false, err
	}
	if match.IsCurrent() {
		return match, true, false, nil
	}
	if err := s.apply(ctx, match.Display.ID, match.Mode); err != nil {
		return match, true, false, err
	}
	return match, true, true, nil
}

func (s *Session) apply(ctx context.Context, displayID uint32, mode model.RawMode) error {
	log := logrus.WithFields(logrus.Fields{"display": displayID, "mode": mode.String()})
	if err := s.source.Apply(ctx, displayID, mode); err != nil {
		log.WithError(err).Error("failed to apply display mode")
		return errors.Wrapf(err, "failed to apply %s to display %d", mode, displayID)
	}
	log.Info("applied display mode")
	return nil
}
