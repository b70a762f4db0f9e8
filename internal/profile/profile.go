package profile

import (
	"math"
	"sort"

	"github.com/KaramelBytes/microclean/internal/table"
)

// ColumnCount pairs a column name with a per-column tally.
type ColumnCount struct {
	Name  string
	Count int
}

// MixedColumn lists the distinct value kinds seen in one column, in
// first-seen order.
type MixedColumn struct {
	Name  string
	Kinds []string
}

// Summary holds the five diagnostics computed over one table.
type Summary struct {
	TotalRows int
	TotalCols int

	// Missing lists columns with at least one null cell, in column order.
	Missing []ColumnCount
	// DuplicateCount is the number of rows whose full value tuple already
	// appeared in an earlier row. DuplicateIndices are their original
	// 0-based row indices, ascending.
	DuplicateCount   int
	DuplicateIndices []int
	// Mixed lists columns whose non-null cells hold more than one kind.
	Mixed []MixedColumn
	// Outliers lists numeric columns with IQR outliers and their counts.
	Outliers []ColumnCount

	UniqueRows int
	// WorthyRatio is unique rows over total rows as a percentage, rounded
	// to two decimals.
	WorthyRatio float64
}

// Analyze runs all detectors over t. The table is never mutated.
func Analyze(t *table.Table) *Summary {
	s := &Summary{TotalRows: t.NumRows(), TotalCols: t.NumCols()}
	s.missingCensus(t)
	s.duplicateCensus(t)
	s.mixedTypeCensus(t)
	s.outlierCensus(t)

	s.UniqueRows = s.TotalRows - s.DuplicateCount
	if s.TotalRows > 0 {
		s.WorthyRatio = round2(float64(s.UniqueRows) / float64(s.TotalRows) * 100)
	}
	return s
}

func (s *Summary) missingCensus(t *table.Table) {
	for j, name := range t.Columns {
		n := 0
		for _, row := range t.Rows {
			if row[j].IsNull() {
				n++
			}
		}
		if n > 0 {
			s.Missing = append(s.Missing, ColumnCount{Name: name, Count: n})
		}
	}
}

func (s *Summary) duplicateCensus(t *table.Table) {
	seen := make(map[string]struct{}, t.NumRows())
	for i := range t.Rows {
		key := t.Fingerprint(i)
		if _, ok := seen[key]; ok {
			s.DuplicateCount++
			s.DuplicateIndices = append(s.DuplicateIndices, i)
			continue
		}
		seen[key] = struct{}{}
	}
}

func (s *Summary) mixedTypeCensus(t *table.Table) {
	for j, name := range t.Columns {
		var kinds []string
		present := make(map[table.Kind]struct{}, 4)
		for _, row := range t.Rows {
			c := row[j]
			if c.IsNull() {
				continue
			}
			if _, ok := present[c.Kind]; !ok {
				present[c.Kind] = struct{}{}
				kinds = append(kinds, c.Kind.String())
			}
		}
		if len(kinds) > 1 {
			s.Mixed = append(s.Mixed, MixedColumn{Name: name, Kinds: kinds})
		}
	}
}

func (s *Summary) outlierCensus(t *table.Table) {
	for j, name := range t.Columns {
		vals, ok := numericColumn(t, j)
		if !ok || len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		q1 := quantile(vals, 0.25)
		q3 := quantile(vals, 0.75)
		iqr := q3 - q1
		if iqr <= 0 {
			// A constant column would flag everything; skip it.
			continue
		}
		lo := q1 - 1.5*iqr
		hi := q3 + 1.5*iqr
		n := 0
		for _, v := range vals {
			if v < lo || v > hi {
				n++
			}
		}
		if n > 0 {
			s.Outliers = append(s.Outliers, ColumnCount{Name: name, Count: n})
		}
	}
}

// numericColumn returns the non-null values of column j if every cell in it
// is numeric or null.
func numericColumn(t *table.Table, j int) ([]float64, bool) {
	vals := make([]float64, 0, t.NumRows())
	for _, row := range t.Rows {
		c := row[j]
		if c.IsNull() {
			continue
		}
		v, ok := c.Number()
		if !ok {
			return nil, false
		}
		vals = append(vals, v)
	}
	return vals, true
}

// quantile interpolates linearly between the closest ranks of a sorted
// sample.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
