package render

import (
	"fmt"
	"io"

	"github.com/hamidzr/displaymode/model"
)

func displayLabel(id uint32) string {
	if id == 0 {
		return "main"
	}
	return fmt.Sprint(id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Presets writes one row per preset.
func Presets(w io.Writer, presets []model.Preset) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tDISPLAY\tTARGET")
	for _, p := range presets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", shortID(p.ID), p.Name, displayLabel(p.DisplayID), p.Target)
	}
	return tw.Flush()
}

// Shortcuts writes one row per shortcut.
func Shortcuts(w io.Writer, shortcuts []model.Shortcut) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tKEYS\tDISPLAY\tTARGET")
	for _, sc := range shortcuts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", shortID(sc.ID), sc.Keys, displayLabel(sc.DisplayID), sc.Target)
	}
	return tw.Flush()
}
