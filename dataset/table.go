package dataset

import (
	"math"

	"golang.org/x/exp/slices"
)

// Table is the cleaned, validated dataset. It is column oriented and
// immutable once built: every accessor returns copies or single values.
type Table struct {
	artists []string
	tracks  []string
	years   []int
	numeric map[string][]float64

	columns []string
	metrics []string
	yearMin int
	yearMax int
}

// Row is one cleaned track. Values holds numeric columns keyed by name;
// an absent key is a missing value.
type Row struct {
	Artist string
	Track  string
	Year   int
	Values map[string]float64
}

// Column is read-only access to one numeric column. Missing values are NaN.
type Column struct {
	name   string
	values []float64
}

func (c Column) Name() string { return c.name }
func (c Column) Len() int     { return len(c.values) }

// At returns the value at row i and whether it is present.
func (c Column) At(i int) (float64, bool) {
	v := c.values[i]
	return v, !math.IsNaN(v)
}

// Builder accumulates cleaned rows into a Table. Callers guarantee rows
// satisfy the table invariants; the loader is the only production caller.
type Builder struct {
	t     *Table
	built bool
}

// NewBuilder returns a Builder for a table carrying the required columns
// plus the given optional numeric columns. Unknown optional names are ignored.
func NewBuilder(optional []string) *Builder {
	t := &Table{numeric: make(map[string][]float64)}
	numeric := append([]string{}, RequiredNumeric...)
	for _, c := range OptionalNumeric {
		if slices.Contains(optional, c) {
			numeric = append(numeric, c)
		}
	}
	for _, c := range numeric {
		t.numeric[c] = nil
	}

	t.columns = []string{ColArtist, ColTrack, ColYear}
	t.columns = append(t.columns, numeric...)
	for _, m := range metricOrder {
		if _, ok := t.numeric[m]; ok {
			t.metrics = append(t.metrics, m)
		}
	}
	return &Builder{t: t}
}

// Add appends a row.
func (b *Builder) Add(r Row) {
	t := b.t
	t.artists = append(t.artists, r.Artist)
	t.tracks = append(t.tracks, r.Track)
	t.years = append(t.years, r.Year)
	for c := range t.numeric {
		v, ok := r.Values[c]
		if !ok {
			v = math.NaN()
		}
		t.numeric[c] = append(t.numeric[c], v)
	}
	if len(t.years) == 1 || r.Year < t.yearMin {
		t.yearMin = r.Year
	}
	if len(t.years) == 1 || r.Year > t.yearMax {
		t.yearMax = r.Year
	}
}

// Build returns the table. The builder must not be used afterwards.
func (b *Builder) Build() *Table {
	if b.built {
		panic("dataset: Builder reused after Build")
	}
	b.built = true
	return b.t
}

// FromRows builds a table from rows in one call.
func FromRows(optional []string, rows ...Row) *Table {
	b := NewBuilder(optional)
	for _, r := range rows {
		b.Add(r)
	}
	return b.Build()
}

func (t *Table) Len() int { return len(t.years) }

func (t *Table) Artist(i int) string { return t.artists[i] }
func (t *Table) Track(i int) string  { return t.tracks[i] }
func (t *Table) Year(i int) int      { return t.years[i] }

// Has reports whether col is a column of the table.
func (t *Table) Has(col string) bool {
	return slices.Contains(t.columns, col)
}

// Numeric returns the float column col, if the table carries it.
func (t *Table) Numeric(col string) (Column, bool) {
	v, ok := t.numeric[col]
	if !ok {
		return Column{}, false
	}
	return Column{name: col, values: v}, true
}

// Cell returns the value of any column at row i, boxed for serialization.
// The boolean is false for an unknown column or a missing value.
func (t *Table) Cell(col string, i int) (any, bool) {
	switch col {
	case ColArtist:
		return t.artists[i], true
	case ColTrack:
		return t.tracks[i], true
	case ColYear:
		return t.years[i], true
	}
	c, ok := t.Numeric(col)
	if !ok {
		return nil, false
	}
	v, ok := c.At(i)
	if !ok {
		return nil, false
	}
	return v, true
}

// Columns returns the table columns in canonical order.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// Metrics returns the numeric columns usable as a selectable metric, in
// preferred order.
func (t *Table) Metrics() []string { return slices.Clone(t.metrics) }

// YearRange returns the smallest and largest year. Both are zero for an
// empty table.
func (t *Table) YearRange() (lo, hi int) { return t.yearMin, t.yearMax }
