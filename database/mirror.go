package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mager/tracklens/config"
	"github.com/mager/tracklens/dataset"
)

// DefaultTable is the mirror table used when none is configured.
const DefaultTable = "tracklens_tracks"

// Mirror copies the canonical table into Postgres so it can be explored
// with SQL. Each Write drops and recreates the configured table, so it
// must not name a table anything else owns.
type Mirror struct {
	db    *sql.DB
	log   *zap.SugaredLogger
	table string
}

// NewMirror returns a Mirror, or nil when db is nil.
func NewMirror(cfg config.Config, db *sql.DB, log *zap.SugaredLogger) *Mirror {
	if db == nil {
		return nil
	}
	table := cfg.MirrorTable
	if table == "" {
		table = DefaultTable
	}
	return &Mirror{db: db, log: log, table: table}
}

// Table is the name of the mirror table.
func (m *Mirror) Table() string { return m.table }

// Write replaces the mirrored rows with t in one transaction.
func (m *Mirror) Write(ctx context.Context, t *dataset.Table) error {
	cols := t.Columns()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin mirror")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+pq.QuoteIdentifier(m.table)); err != nil {
		return errors.Wrap(err, "drop mirror table")
	}
	if _, err := tx.ExecContext(ctx, CreateTableSQL(m.table, cols)); err != nil {
		return errors.Wrap(err, "create mirror table")
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(m.table, cols...))
	if err != nil {
		return errors.Wrap(err, "prepare copy")
	}
	for i := 0; i < t.Len(); i++ {
		if _, err := stmt.ExecContext(ctx, RowValues(t, cols, i)...); err != nil {
			stmt.Close()
			return errors.Wrapf(err, "copy row %d", i)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return errors.Wrap(err, "flush copy")
	}
	if err := stmt.Close(); err != nil {
		return errors.Wrap(err, "close copy")
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit mirror")
	}

	m.log.Infow("mirrored dataset to postgres", "table", m.table, "rows", t.Len())
	return nil
}

// CreateTableSQL returns the DDL for the mirror table. Required columns
// are NOT NULL.
func CreateTableSQL(table string, cols []string) string {
	required := make(map[string]bool)
	for _, c := range dataset.RequiredColumns {
		required[c] = true
	}

	defs := []string{"id integer GENERATED ALWAYS AS IDENTITY PRIMARY KEY"}
	for _, c := range cols {
		typ := "double precision"
		switch c {
		case dataset.ColArtist, dataset.ColTrack:
			typ = "text"
		case dataset.ColYear:
			typ = "integer"
		}
		def := pq.QuoteIdentifier(c) + " " + typ
		if required[c] {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", pq.QuoteIdentifier(table), strings.Join(defs, ",\n\t"))
}

// RowValues returns row i of t in cols order; missing values are nil.
func RowValues(t *dataset.Table, cols []string, i int) []any {
	out := make([]any, len(cols))
	for j, c := range cols {
		if v, ok := t.Cell(c, i); ok {
			out[j] = v
		}
	}
	return out
}
