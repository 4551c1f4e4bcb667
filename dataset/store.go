package dataset

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LoadFunc produces the canonical table.
type LoadFunc func() (*Table, error)

// Store holds the canonical table for the process lifetime. The first Get
// runs the load; concurrent first callers wait for it. The result, table
// or error, is kept and never retried.
type Store struct {
	load LoadFunc
	log  *zap.SugaredLogger

	once  sync.Once
	done  atomic.Bool
	table *Table
	facts Facts
	err   error
}

// Facts are read-only properties computed once at load time.
type Facts struct {
	Metrics []string `json:"metrics"`
	YearMin int      `json:"year_min"`
	YearMax int      `json:"year_max"`
	Rows    int      `json:"rows"`
}

// NewStore returns a Store that loads with fn on first access.
func NewStore(fn LoadFunc, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{load: fn, log: log}
}

// NewStaticStore returns a Store already holding t.
func NewStaticStore(t *Table) *Store {
	s := NewStore(func() (*Table, error) { return t, nil }, nil)
	s.Get()
	return s
}

// Get returns the table, loading it on first call.
func (s *Store) Get() (*Table, error) {
	s.once.Do(func() {
		defer s.done.Store(true)
		defer func() {
			if r := recover(); r != nil {
				s.table = nil
				s.err = errors.Errorf("dataset load panicked: %v", r)
				s.log.Errorw("dataset load failed", "error", s.err)
			}
		}()
		t, err := s.load()
		if err != nil {
			s.log.Errorw("dataset load failed", "error", err)
			s.err = err
			return
		}
		lo, hi := t.YearRange()
		s.table = t
		s.facts = Facts{Metrics: t.Metrics(), YearMin: lo, YearMax: hi, Rows: t.Len()}
	})
	return s.table, s.err
}

// Facts returns the facts of the loaded table, loading it if needed.
func (s *Store) Facts() (Facts, error) {
	if _, err := s.Get(); err != nil {
		return Facts{}, err
	}
	f := s.facts
	f.Metrics = append([]string(nil), f.Metrics...)
	return f, nil
}

// Loaded reports whether a load has completed successfully. It never
// triggers a load.
func (s *Store) Loaded() bool {
	return s.done.Load() && s.err == nil
}
