package core

import (
	"context"
	"sync"
	"time"

	"github.com/hamidzr/displaymode/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultFireInterval is the minimum time between two fires of one shortcut.
// Held-down keys repeat key-down events much faster than a mode switch takes.
const DefaultFireInterval = 250 * time.Millisecond

// Dispatcher applies the target of a shortcut when it fires.
type Dispatcher struct {
	session  *Session
	interval time.Duration

	// mu serializes fires so two mode switches never overlap.
	mu       sync.Mutex
	limitsMu sync.Mutex
	limits   map[string]*rate.Limiter
}

// NewDispatcher creates a dispatcher. A zero interval uses DefaultFireInterval.
func NewDispatcher(session *Session, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = DefaultFireInterval
	}
	return &Dispatcher{
		session:  session,
		interval: interval,
		limits:   make(map[string]*rate.Limiter),
	}
}

func (d *Dispatcher) allow(id string) bool {
	d.limitsMu.Lock()
	defer d.limitsMu.Unlock()
	lim, ok := d.limits[id]
	if !ok {
		lim = rate.NewLimiter(rate.Every(d.interval), 1)
		d.limits[id] = lim
	}
	return lim.Allow()
}

// Fire resolves the shortcut's target on its display and applies it.
// A target the display cannot show, or a display that is gone, is not an
// error: the shortcut simply does nothing. The returned bool reports whether
// a mode switch happened.
func (d *Dispatcher) Fire(ctx context.Context, sc model.Shortcut) (bool, error) {
	log := logrus.WithFields(logrus.Fields{
		"shortcut": sc.Keys,
		"display":  sc.DisplayID,
		"target":   sc.Target.String(),
	})
	if !d.allow(sc.ID) {
		log.Trace("shortcut fired too soon, ignoring")
		return false, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	match, ok, applied, err := d.session.Switch(ctx, sc.DisplayID, sc.Target)
	if errors.Is(err, model.ErrDisplayNotFound) {
		log.Debug("display for shortcut is not online")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !ok {
		log.Debug("no matching mode on display")
		return false, nil
	}
	if !applied {
		log.WithField("mode", match.Mode.String()).Debug("display already in target mode")
	}
	return applied, nil
}
