package core

import (
	"math"
	"sort"

	"github.com/hamidzr/displaymode/constant"
	"github.com/hamidzr/displaymode/model"
)

type resolutionKey struct {
	width, height int
}

// Selection points at a refresh rate entry inside a list of resolution groups.
type Selection struct {
	// Group is the index into the groups slice.
	Group int
	// Rate is the index into that group's Modes.
	Rate int
}

// withinTolerance reports whether two refresh rates are close enough to be
// the same rate as far as users are concerned (59.94 vs 60).
func withinTolerance(a, b float64) bool {
	return math.Abs(a-b) < constant.RateTolerance
}

// roundedRate buckets a refresh rate to whole Hz, halves away from zero.
func roundedRate(rate float64) int64 {
	return int64(math.Round(rate))
}

// GroupModes buckets modes by resolution after applying filter.
// Groups come back smallest resolution first (width, then height). Inside a
// group modes are ordered by refresh rate, highest first, and only the first
// mode of every whole-Hz bucket is kept.
func GroupModes(modes []model.RawMode, filter model.HiDPIFilter) []model.ResolutionGroup {
	buckets := make(map[resolutionKey][]model.RawMode)
	for _, m := range modes {
		if !filter.Keep(m) {
			continue
		}
		key := resolutionKey{width: m.Width, height: m.Height}
		buckets[key] = append(buckets[key], m)
	}

	groups := make([]model.ResolutionGroup, 0, len(buckets))
	for key, members := range buckets {
		groups = append(groups, model.ResolutionGroup{
			Width:  key.width,
			Height: key.height,
			Modes:  dedupeRates(members),
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Width != groups[j].Width {
			return groups[i].Width < groups[j].Width
		}
		return groups[i].Height < groups[j].Height
	})
	return groups
}

// dedupeRates sorts members by rate descending in place and drops every
// member whose rounded rate was already taken by a higher one.
func dedupeRates(members []model.RawMode) []model.RawMode {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].RefreshRate > members[j].RefreshRate
	})
	seen := make(map[int64]struct{}, len(members))
	kept := make([]model.RawMode, 0, len(members))
	for _, m := range members {
		rate := roundedRate(m.RefreshRate)
		if _, dup := seen[rate]; dup {
			continue
		}
		seen[rate] = struct{}{}
		kept = append(kept, m)
	}
	return kept
}

// SortModesBestFirst returns a copy of modes ordered for a flat picker:
// widest first, then tallest, then fastest, HiDPI before standard.
func SortModesBestFirst(modes []model.RawMode) []model.RawMode {
	sorted := make([]model.RawMode, len(modes))
	copy(sorted, modes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Width != b.Width {
			return a.Width > b.Width
		}
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		if a.RefreshRate != b.RefreshRate {
			return a.RefreshRate > b.RefreshRate
		}
		return a.IsHiDPI && !b.IsHiDPI
	})
	return sorted
}

// MatchTarget returns the first mode, in the order given, that fits target.
// A zero target rate accepts any rate. The boolean is false when nothing
// fits, which is expected after the display's mode set changed.
func MatchTarget(target model.TargetSpec, modes []model.RawMode) (model.RawMode, bool) {
	for _, m := range modes {
		if m.Width != target.Width || m.Height != target.Height || m.IsHiDPI != target.IsHiDPI {
			continue
		}
		if target.RefreshRate == 0 || withinTolerance(m.RefreshRate, target.RefreshRate) {
			return m, true
		}
	}
	return model.RawMode{}, false
}

// InitialSelection finds where a picker over groups should start so that it
// shows current. It returns false only when there is nothing to select:
// current is nil or groups is empty. When current's resolution was filtered
// out the selection falls back to the lowest group and its first rate.
func InitialSelection(current *model.RawMode, groups []model.ResolutionGroup) (Selection, bool) {
	if current == nil || len(groups) == 0 {
		return Selection{}, false
	}
	for gi, g := range groups {
		if g.Width != current.Width || g.Height != current.Height {
			continue
		}
		for ri, m := range g.Modes {
			if withinTolerance(m.RefreshRate, current.RefreshRate) {
				return Selection{Group: gi, Rate: ri}, true
			}
		}
		return Selection{Group: gi, Rate: 0}, true
	}
	return Selection{Group: 0, Rate: 0}, true
}
