package table

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Raw is an untyped table: a header row followed by string cells.
type Raw struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Options controls how a source file is read.
type Options struct {
	// SheetName selects an XLSX sheet by name (case-insensitive).
	SheetName string
	// SheetIndex is the 1-based XLSX sheet used when SheetName is empty.
	SheetIndex int
	// Delimiter for CSV. If 0, ',' is used (tab for .tsv files).
	Delimiter rune
}

// Reader reads one tabular file format.
type Reader interface {
	CanRead(filename string) bool
	Read(path string, opt Options) (*Raw, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported table format")

// ReadFile selects a reader based on filename and returns the raw table.
func ReadFile(path string, opt Options) (*Raw, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(path, opt)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// Width returns the number of header columns.
func (r *Raw) Width() int { return len(r.Header) }

// Cell returns the trimmed cell at row i, column j; short rows read as empty.
func (r *Raw) Cell(i, j int) string {
	row := r.Rows[i]
	if j >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[j])
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

// pad extends row to n cells.
func pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	tmp := make([]string, n)
	copy(tmp, row)
	return tmp
}
