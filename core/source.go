package core

import (
	"context"

	"github.com/hamidzr/displaymode/model"
)

// DisplaySource enumerates displays and applies modes to them.
//
// Every call to Displays starts a new enumeration. Handles inside the modes
// it returns are only valid until the next call; Apply rejects older ones
// with model.ErrStaleHandle.
type DisplaySource interface {
	Displays(ctx context.Context) ([]model.Display, error)
	Apply(ctx context.Context, displayID uint32, mode model.RawMode) error
}
