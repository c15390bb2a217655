package core

import (
	"strconv"
	"strings"

	"github.com/hamidzr/displaymode/constant"
	"github.com/hamidzr/displaymode/model"
	"github.com/pkg/errors"
	"github.com/sahilm/fuzzy"
)

// DisplayByID returns the display with id. constant.MainDisplay picks the
// main display, or the first one when none is flagged main.
func DisplayByID(displays []model.Display, id uint32) (model.Display, error) {
	if len(displays) == 0 {
		return model.Display{}, errors.Wrap(model.ErrDisplayNotFound, "no displays online")
	}
	if id == constant.MainDisplay {
		for _, d := range displays {
			if d.IsMain {
				return d, nil
			}
		}
		return displays[0], nil
	}
	for _, d := range displays {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Display{}, errors.Wrapf(model.ErrDisplayNotFound, "display %d", id)
}

// FindDisplay resolves what a user typed to pick a display: empty or "main"
// for the main display, a numeric id, or a fuzzy match on the display name.
func FindDisplay(displays []model.Display, query string) (model.Display, error) {
	query = strings.TrimSpace(query)
	if query == "" || strings.EqualFold(query, "main") {
		return DisplayByID(displays, constant.MainDisplay)
	}
	if id, err := strconv.ParseUint(query, 10, 32); err == nil {
		return DisplayByID(displays, uint32(id))
	}

	names := make([]string, len(displays))
	for i, d := range displays {
		names[i] = d.Name
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return model.Display{}, errors.Wrapf(model.ErrDisplayNotFound, "no display matches %q", query)
	}
	// fuzzy.Find sorts by score; ties keep the enumeration order
	return displays[matches[0].Index], nil
}
