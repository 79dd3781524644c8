// Package tabular holds delimited tables whose schema is only known at run
// time. Columns a job does not touch are carried through unchanged.
package tabular

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = eris.New("tabular: missing column")

// Table is a header plus rows of string cells. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// New creates an empty table with the given header.
func New(header ...string) *Table {
	t := &Table{Header: append([]string(nil), header...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
}

func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of a column.
func (t *Table) Index(col string) (int, bool) {
	i, ok := t.index[col]
	return i, ok
}

func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Require fails with ErrMissingColumn naming every absent column.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return eris.Wrapf(ErrMissingColumn, "%s (have %s)", strings.Join(missing, ", "), strings.Join(t.Header, ", "))
	}
	return nil
}

// Value returns the cell of row i in col, or "" when the column is absent.
func (t *Table) Value(i int, col string) string {
	j, ok := t.index[col]
	if !ok {
		return ""
	}
	return t.Rows[i][j]
}

// Column returns a copy of every cell of col.
func (t *Table) Column(col string) []string {
	j, ok := t.index[col]
	if !ok {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[j]
	}
	return out
}

// AddColumn appends an empty column. Adding an existing column is a no-op.
func (t *Table) AddColumn(col string) {
	if t.Has(col) {
		return
	}
	t.Header = append(t.Header, col)
	t.index[col] = len(t.Header) - 1
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

// Set writes a cell, adding the column first when needed.
func (t *Table) Set(i int, col, value string) {
	t.AddColumn(col)
	t.Rows[i][t.index[col]] = value
}

// Append adds a row, padding or truncating it to the header width.
func (t *Table) Append(row []string) {
	t.Rows = append(t.Rows, fit(row, len(t.Header)))
}

// Filter keeps the rows for which keep returns true and reports how many
// rows were dropped.
func (t *Table) Filter(keep func(i int) bool) int {
	kept := t.Rows[:0:0]
	for i, r := range t.Rows {
		if keep(i) {
			kept = append(kept, r)
		}
	}
	dropped := len(t.Rows) - len(kept)
	t.Rows = kept
	return dropped
}

func fit(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
