package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/KaramelBytes/microclean/internal/table"
)

// Result is a loaded table plus load metadata.
type Result struct {
	Table *table.Table
	// Latin1Fallback is true when the file was not valid UTF-8 and was
	// decoded as ISO 8859-1 instead.
	Latin1Fallback bool
}

// SniffDelimiter picks a delimiter from the filename. Tab for .tsv,
// comma otherwise.
func SniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// Load reads a delimited file into a Table. Every cell's kind is inferred
// during the parse, so a column may end up holding mixed kinds.
func Load(path string, delim rune) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}

	res := &Result{}
	if !utf8.Valid(data) {
		decoded, derr := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if derr != nil {
			return nil, &MalformedInputError{Path: path, Err: fmt.Errorf("decode latin-1: %w", derr)}
		}
		data = decoded
		res.Latin1Fallback = true
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	// Trimming leading space would swallow tab delimiters of empty fields.
	r.TrimLeadingSpace = delim != '\t'

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &EmptyInputError{Path: path}
		}
		return nil, &MalformedInputError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}
	seen := make(map[string]struct{}, len(header))
	cols := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := seen[name]; dup {
			return nil, &MalformedInputError{Path: path, Err: fmt.Errorf("duplicate column name %q", name)}
		}
		seen[name] = struct{}{}
		cols[i] = name
	}

	t := &table.Table{Columns: cols}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &MalformedInputError{Path: path, Err: fmt.Errorf("read row %d: %w", t.NumRows()+1, err)}
		}
		row := make([]table.Cell, len(rec))
		for j, field := range rec {
			row[j] = table.ParseCell(field)
		}
		t.Rows = append(t.Rows, row)
	}
	if t.NumRows() == 0 {
		return nil, &EmptyInputError{Path: path}
	}
	res.Table = t
	return res, nil
}
