package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hamidzr/displaymode/core"
	"github.com/hamidzr/displaymode/model"
)

/*
render displays and modes as aligned text
*/

const selectedMarker = "->"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Displays writes one row per display.
func Displays(w io.Writer, displays []model.Display) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tMAIN\tCURRENT\tMODES")
	for _, d := range displays {
		current := "-"
		if d.Current != nil {
			current = d.Current.String()
		}
		main := ""
		if d.IsMain {
			main = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", d.ID, d.Name, main, current, len(d.Modes))
	}
	return tw.Flush()
}

// Modes writes a flat list of modes, marking the one equal to current.
func Modes(w io.Writer, modes []model.RawMode, current *model.RawMode) error {
	tw := newTable(w)
	for i, m := range modes {
		marker := ""
		if current != nil && m.SameShape(*current) {
			marker = selectedMarker
		}
		hidpi := ""
		if m.IsHiDPI {
			hidpi = "HiDPI"
		}
		fmt.Fprintf(tw, "%s\t%d.\t%s\t%s\t%s\n", marker, i+1, m.Resolution(), model.FormatRate(m.RefreshRate), hidpi)
	}
	return tw.Flush()
}

// Groups writes one row per resolution group with its refresh rates. When
// selected is true the row at sel.Group is marked and its rate at sel.Rate is
// bracketed.
func Groups(w io.Writer, groups []model.ResolutionGroup, sel core.Selection, selected bool) error {
	tw := newTable(w)
	for gi, g := range groups {
		marker := ""
		isSelected := selected && gi == sel.Group
		if isSelected {
			marker = selectedMarker
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, g.Resolution(), scaling(g.Modes), rateList(g.Modes, isSelected, sel.Rate))
	}
	return tw.Flush()
}

// scaling labels a group by whether its modes are HiDPI. A group holds both
// kinds when the filter lets them through.
func scaling(modes []model.RawMode) string {
	hidpi := 0
	for _, m := range modes {
		if m.IsHiDPI {
			hidpi++
		}
	}
	switch {
	case hidpi == 0:
		return ""
	case hidpi == len(modes):
		return "HiDPI"
	default:
		return "mixed"
	}
}

func rateList(modes []model.RawMode, selected bool, rate int) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = model.FormatRate(m.RefreshRate)
		if selected && i == rate {
			parts[i] = "[" + parts[i] + "]"
		}
	}
	return strings.Join(parts, " ")
}
