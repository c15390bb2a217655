package model

import "fmt"

// HiDPIFilter restricts which modes take part in grouping.
type HiDPIFilter int

const (
	// FilterAll keeps every mode.
	FilterAll HiDPIFilter = iota
	// FilterHiDPIOnly keeps scaled modes only.
	FilterHiDPIOnly
	// FilterStandardOnly keeps modes that are not scaled.
	FilterStandardOnly
)

var filterNames = map[HiDPIFilter]string{
	FilterAll:          "all",
	FilterHiDPIOnly:    "hidpi",
	FilterStandardOnly: "standard",
}

// FilterFor converts an optional boolean into a filter: nil keeps all modes.
func FilterFor(hiDPI *bool) HiDPIFilter {
	switch {
	case hiDPI == nil:
		return FilterAll
	case *hiDPI:
		return FilterHiDPIOnly
	default:
		return FilterStandardOnly
	}
}

// Keep reports whether a mode passes the filter.
func (f HiDPIFilter) Keep(m RawMode) bool {
	switch f {
	case FilterHiDPIOnly:
		return m.IsHiDPI
	case FilterStandardOnly:
		return !m.IsHiDPI
	default:
		return true
	}
}

// Next returns the filter after f in the order all, hidpi, standard.
func (f HiDPIFilter) Next() HiDPIFilter {
	switch f {
	case FilterAll:
		return FilterHiDPIOnly
	case FilterHiDPIOnly:
		return FilterStandardOnly
	default:
		return FilterAll
	}
}

func (f HiDPIFilter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("HiDPIFilter(%d)", int(f))
}

// ParseHiDPIFilter parses the names used in config files and flags.
// The empty string is treated as "all".
func ParseHiDPIFilter(s string) (HiDPIFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	for f, name := range filterNames {
		if name == s {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown hidpi filter %q, expected one of all, hidpi, standard", s)
}
