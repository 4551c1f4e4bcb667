package query

import (
	"fmt"

	"github.com/mager/tracklens/dataset"
)

// UnknownColumnError is returned when a query names a column the table
// does not carry (or one that cannot serve the requested role).
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

// View is a row subset of a table: indices into the parent, in table
// order. A View never copies or mutates row data.
type View struct {
	table *dataset.Table
	rows  []int
}

// All returns a view over every row of t.
func All(t *dataset.Table) *View {
	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	return &View{table: t, rows: rows}
}

func (v *View) Len() int              { return len(v.rows) }
func (v *View) Empty() bool           { return len(v.rows) == 0 }
func (v *View) Table() *dataset.Table { return v.table }

// Row returns the table row index of the i-th view row.
func (v *View) Row(i int) int { return v.rows[i] }

// Rows returns a copy of the table row indices.
func (v *View) Rows() []int { return append([]int(nil), v.rows...) }

func (v *View) subset(rows []int) *View {
	return &View{table: v.table, rows: rows}
}

func (v *View) numeric(col string) (dataset.Column, error) {
	c, ok := v.table.Numeric(col)
	if !ok {
		return dataset.Column{}, &UnknownColumnError{Column: col}
	}
	return c, nil
}
