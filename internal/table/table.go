package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the runtime type of a single cell value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Cell is a tagged union over the value kinds a field can parse as.
// Raw keeps the original field text so a cell survives a load/clean/write
// round trip byte-for-byte.
type Cell struct {
	Kind  Kind
	Raw   string
	Int   int64
	Float float64
	Bool  bool
}

// ParseCell infers the kind of a raw field. An empty (or all-whitespace)
// field is null. Inference order: int, float, bool, text.
func ParseCell(raw string) Cell {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Cell{Kind: KindNull}
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return Cell{Kind: KindInt, Raw: v, Int: n}
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return Cell{Kind: KindFloat, Raw: v, Float: f}
	}
	switch strings.ToLower(v) {
	case "true":
		return Cell{Kind: KindBool, Raw: v, Bool: true}
	case "false":
		return Cell{Kind: KindBool, Raw: v, Bool: false}
	}
	return Cell{Kind: KindText, Raw: v}
}

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool { return c.Kind == KindNull }

// Number returns the cell's numeric value. Only int and float cells are
// numeric.
func (c Cell) Number() (float64, bool) {
	switch c.Kind {
	case KindInt:
		return float64(c.Int), true
	case KindFloat:
		return c.Float, true
	default:
		return 0, false
	}
}

// canonical renders the parsed value in a form stable across lexical
// variants of the same value (e.g. "07" and "7").
func (c Cell) canonical() string {
	switch c.Kind {
	case KindNull:
		return ""
	case KindInt:
		return strconv.FormatInt(c.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(c.Bool)
	default:
		return c.Raw
	}
}

// Table is an ordered set of named columns with rows aligned by index.
// All rows have exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

func (t *Table) NumRows() int { return len(t.Rows) }
func (t *Table) NumCols() int { return len(t.Columns) }

// Fingerprint returns a key that is equal for two rows iff every cell
// matches by kind and value. Null matches null. Each cell is encoded as
// kind, value length and value, so cell boundaries stay unambiguous no
// matter what bytes the value holds.
func (t *Table) Fingerprint(row int) string {
	var b strings.Builder
	for _, c := range t.Rows[row] {
		v := c.canonical()
		b.WriteByte(byte(c.Kind))
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}

// Encode renders the table back to delimited text, header first, using
// each cell's original field text.
func (t *Table) Encode(delim rune) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delim
	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, t.NumCols())
	for i, row := range t.Rows {
		for j, c := range row {
			rec[j] = c.Raw
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return buf.Bytes(), nil
}
