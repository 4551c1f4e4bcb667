package query

import (
	"strings"

	"github.com/mager/tracklens/dataset"
)

// Spec selects rows. Artist is an exact match and Search a case-insensitive
// substring of the track name; both are ignored when blank.
type Spec struct {
	YearLow  int    `json:"year_low"`
	YearHigh int    `json:"year_high"`
	Artist   string `json:"artist,omitempty"`
	Search   string `json:"search,omitempty"`
}

// Filter returns the rows of t matching spec. An inverted year range
// yields an empty view.
func Filter(t *dataset.Table, spec Spec) *View {
	return All(t).Filter(spec)
}

// Filter narrows v to the rows matching spec.
func (v *View) Filter(spec Spec) *View {
	t := v.table
	needle := strings.ToLower(strings.TrimSpace(spec.Search))

	rows := make([]int, 0, len(v.rows))
	for _, i := range v.rows {
		y := t.Year(i)
		if y < spec.YearLow || y > spec.YearHigh {
			continue
		}
		if spec.Artist != "" && t.Artist(i) != spec.Artist {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Track(i)), needle) {
			continue
		}
		rows = append(rows, i)
	}
	return v.subset(rows)
}
