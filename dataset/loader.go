package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	csvExt = ".csv"
	gzExt  = ".csv.gz"

	// DefaultPrimaryPattern is the stem of the preferred file name.
	DefaultPrimaryPattern = "spotify*"
)

// Loader discovers, parses and cleans the dataset in Dir.
type Loader struct {
	Dir            string
	PrimaryPattern string
	Log            *zap.SugaredLogger
}

// NewLoader builds a Loader with the default primary pattern.
func NewLoader(dir string, log *zap.SugaredLogger) *Loader {
	return &Loader{Dir: dir, PrimaryPattern: DefaultPrimaryPattern, Log: log}
}

// Discover returns the file Load would read. Candidates are tried in four
// tiers, each sorted lexicographically: primary *.csv, primary *.csv.gz,
// any *.csv, any *.csv.gz.
func (l *Loader) Discover() (string, error) {
	primary := l.PrimaryPattern
	if primary == "" {
		primary = DefaultPrimaryPattern
	}

	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Dir: l.Dir}
		}
		return "", errors.Wrapf(err, "read dataset dir %s", l.Dir)
	}

	tiers := []string{primary + csvExt, primary + gzExt, "*" + csvExt, "*" + gzExt}
	for _, pattern := range tiers {
		var files []string
		for _, e := range entries {
			ok, err := filepath.Match(pattern, e.Name())
			if err != nil {
				return "", errors.Wrapf(err, "bad pattern %q", pattern)
			}
			if !ok {
				continue
			}
			// Stat follows symlinks to regular files.
			if fi, err := os.Stat(filepath.Join(l.Dir, e.Name())); err == nil && fi.Mode().IsRegular() {
				files = append(files, e.Name())
			}
		}
		if len(files) > 0 {
			sort.Strings(files)
			return filepath.Join(l.Dir, files[0]), nil
		}
	}
	return "", &NotFoundError{Dir: l.Dir}
}

// Load reads the discovered file and returns the canonical table.
func (l *Loader) Load() (*Table, error) {
	path, err := l.Discover()
	if err != nil {
		return nil, err
	}

	raw, skipped, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	l.log().Infow("loaded dataset file", "path", path, "rows", len(raw.Rows), "malformed", skipped)

	if err := Validate(raw, RequiredColumns); err != nil {
		return nil, err
	}

	t, dropped := Clean(raw)
	lo, hi := t.YearRange()
	l.log().Infow("cleaned dataset",
		"rows", t.Len(), "dropped", dropped, "metrics", t.Metrics(), "year_min", lo, "year_max", hi)
	if t.Len() == 0 {
		l.log().Warnw("dataset has no rows after cleaning", "path", path)
	}
	return t, nil
}

func (l *Loader) log() *zap.SugaredLogger {
	if l.Log == nil {
		return zap.NewNop().Sugar()
	}
	return l.Log
}

// ReadFile parses a delimited file, decompressing it when it ends in .gz.
// It returns the parsed file and the number of rows the reader rejected.
func ReadFile(path string) (*Raw, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "gzip %s", path)
		}
		defer zr.Close()
		r = zr
	}

	raw, skipped, err := Parse(r)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "parse %s", path)
	}
	raw.Path = path
	return raw, skipped, nil
}

// Parse reads a CSV stream. Rows the reader cannot decode are skipped
// and counted.
func Parse(r io.Reader) (*Raw, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		// No header at all; validation reports every column missing.
		return &Raw{}, 0, nil
	}
	if err != nil {
		return nil, 0, errors.Wrap(err, "read header")
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}

	raw := &Raw{Header: header}
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				skipped++
				continue
			}
			return nil, skipped, errors.Wrap(err, "read row")
		}
		raw.Rows = append(raw.Rows, row)
	}
	return raw, skipped, nil
}

// Clean applies the cleaning pipeline to a validated file: trim text,
// coerce numerics (failures become missing), keep MinYear..MaxYear, drop
// rows missing a required value, truncate year to an integer. It returns
// the table and the number of rows dropped.
func Clean(raw *Raw) (*Table, int) {
	artistIdx := raw.Index(ColArtist)
	trackIdx := raw.Index(ColTrack)
	yearIdx := raw.Index(ColYear)

	numIdx := make(map[string]int)
	var optional []string
	for _, c := range RequiredNumeric {
		numIdx[c] = raw.Index(c)
	}
	for _, c := range OptionalNumeric {
		if i := raw.Index(c); i >= 0 {
			numIdx[c] = i
			optional = append(optional, c)
		}
	}

	b := NewBuilder(optional)
	dropped := 0
	for _, rec := range raw.Rows {
		artist := strings.TrimSpace(cell(rec, artistIdx))
		track := strings.TrimSpace(cell(rec, trackIdx))

		year, ok := coerce(cell(rec, yearIdx))
		if !ok || year < MinYear || year > MaxYear || artist == "" || track == "" {
			dropped++
			continue
		}

		values := make(map[string]float64, len(numIdx))
		complete := true
		for c, i := range numIdx {
			if v, ok := coerce(cell(rec, i)); ok {
				values[c] = v
			}
		}
		for _, c := range RequiredNumeric {
			if _, ok := values[c]; !ok {
				complete = false
				break
			}
		}
		if !complete {
			dropped++
			continue
		}

		b.Add(Row{Artist: artist, Track: track, Year: int(year), Values: values})
	}
	return b.Build(), dropped
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// coerce parses a numeric cell. Empty, unparsable, NaN and infinite
// values are missing.
func coerce(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
