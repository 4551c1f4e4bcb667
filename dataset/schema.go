package dataset

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when the search directory holds no candidate file.
type NotFoundError struct {
	Dir string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no dataset file in %s (expected *.csv or *.csv.gz)", e.Dir)
}

// SchemaError names every required column the source file lacks.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing columns: [%s]", e.Path, strings.Join(e.Missing, ", "))
}

// Raw is a parsed source file before cleaning: a header and string cells.
type Raw struct {
	Path   string
	Header []string
	Rows   [][]string
}

// Index returns the position of col in the header, or -1.
func (r *Raw) Index(col string) int {
	for i, h := range r.Header {
		if h == col {
			return i
		}
	}
	return -1
}

// Validate checks that every required column is present in raw. Missing
// columns are reported in the order they appear in required.
func Validate(raw *Raw, required []string) error {
	var missing []string
	for _, c := range required {
		if raw.Index(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Path: raw.Path, Missing: missing}
	}
	return nil
}
