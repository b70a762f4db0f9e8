// Package clean derives a deduplicated, null-free copy of a table.
package clean

import "github.com/KaramelBytes/microclean/internal/table"

// Clean drops duplicate rows (keeping the first occurrence), then drops any
// row containing a null cell. The result shares no storage with the input
// and depends only on its content and row order.
func Clean(t *table.Table) *table.Table {
	out := &table.Table{Columns: append([]string(nil), t.Columns...)}
	seen := make(map[string]struct{}, t.NumRows())
	for i, row := range t.Rows {
		key := t.Fingerprint(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if hasNull(row) {
			continue
		}
		out.Rows = append(out.Rows, append([]table.Cell(nil), row...))
	}
	return out
}

func hasNull(row []table.Cell) bool {
	for _, c := range row {
		if c.IsNull() {
			return true
		}
	}
	return false
}
