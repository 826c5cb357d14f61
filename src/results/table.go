// Package results reads the per-instance convergence tables written by the solver.
package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoRows is returned for a table that has a valid header but no data.
var ErrNoRows = errors.New("no data rows")

// Columns names the two columns a convergence table must carry.
type Columns struct {
	Iteration string
	Profit    string
	Delimiter rune
}

// DefaultColumns matches the header the solver writes: "Iteracion,Profit".
func DefaultColumns() Columns {
	return Columns{Iteration: "Iteracion", Profit: "Profit", Delimiter: ','}
}

// MissingColumnError reports a header without one of the required columns.
type MissingColumnError struct {
	Path   string
	Column string
	Header []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in %s (header: %s)", e.Column, e.Path, strings.Join(e.Header, ","))
}

// RowError reports a data cell that is not a number.
type RowError struct {
	Path   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: column %q: invalid number %q", e.Path, e.Line, e.Column, e.Value)
}

func (e *RowError) Unwrap() error { return e.Err }

// Table is one instance's convergence history: Profit[i] is the best profit known at
// Iterations[i].
type Table struct {
	Path       string
	Iterations []float64
	Profits    []float64
}

// Len returns the number of recorded iterations.
func (t *Table) Len() int { return len(t.Iterations) }

// ReadTable loads the convergence table at path.
func ReadTable(path string, cols Columns) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTable(f, path, cols)
}

// ParseTable reads a delimited table from r. name is only used in error messages.
func ParseTable(r io.Reader, name string, cols Columns) (*Table, error) {
	if cols.Delimiter == 0 {
		cols.Delimiter = ','
	}
	cr := csv.NewReader(r)
	cr.Comma = cols.Delimiter
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty file", name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	// column names must match byte for byte; only cells are trimmed
	iterIdx, profitIdx := -1, -1
	for i, h := range header {
		switch h {
		case cols.Iteration:
			iterIdx = i
		case cols.Profit:
			profitIdx = i
		}
	}
	if iterIdx < 0 {
		return nil, &MissingColumnError{Path: name, Column: cols.Iteration, Header: header}
	}
	if profitIdx < 0 {
		return nil, &MissingColumnError{Path: name, Column: cols.Profit, Header: header}
	}

	t := &Table{Path: name}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		line, _ := cr.FieldPos(0)
		x, err := parseCell(rec[iterIdx])
		if err != nil {
			return nil, &RowError{Path: name, Line: line, Column: cols.Iteration, Value: rec[iterIdx], Err: err}
		}
		y, err := parseCell(rec[profitIdx])
		if err != nil {
			return nil, &RowError{Path: name, Line: line, Column: cols.Profit, Value: rec[profitIdx], Err: err}
		}
		t.Iterations = append(t.Iterations, x)
		t.Profits = append(t.Profits, y)
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoRows)
	}
	return t, nil
}

func parseCell(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
