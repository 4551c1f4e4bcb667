package query

import "golang.org/x/exp/slices"

// DefaultTopN is the default ranked table length.
const DefaultTopN = 15

// RankedRow is one row of a ranked table.
type RankedRow struct {
	Row    int     `json:"row"`
	Track  string  `json:"track_name"`
	Artist string  `json:"artist_name"`
	Year   int     `json:"year"`
	Value  float64 `json:"value"`
}

// Ranked is the top rows of a view by one column, descending.
type Ranked struct {
	Column string      `json:"column"`
	Rows   []RankedRow `json:"rows"`
	Empty  bool        `json:"empty"`
}

// TopN returns the n rows of v with the largest col, descending. Equal
// values keep their order in v. Rows missing col are not ranked.
func TopN(v *View, col string, n int) (Ranked, error) {
	c, err := v.numeric(col)
	if err != nil {
		return Ranked{}, err
	}
	if n <= 0 {
		n = DefaultTopN
	}

	rows := make([]RankedRow, 0, v.Len())
	for _, i := range v.rows {
		val, ok := c.At(i)
		if !ok {
			continue
		}
		rows = append(rows, RankedRow{
			Row:    i,
			Track:  v.table.Track(i),
			Artist: v.table.Artist(i),
			Year:   v.table.Year(i),
			Value:  val,
		})
	}

	slices.SortStableFunc(rows, func(a, b RankedRow) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		}
		return 0
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return Ranked{Column: col, Rows: rows, Empty: len(rows) == 0}, nil
}
