// Package report renders the analysis block and persists the run's
// artifacts.
package report

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/microclean/internal/profile"
	"github.com/KaramelBytes/microclean/internal/table"
	"github.com/KaramelBytes/microclean/internal/utils"
)

const divider = "──────────────────────────────────────────────"

// RunContext carries the per-run state the reporter needs, instead of the
// reporter reading clocks or directories ambiently.
type RunContext struct {
	Now time.Time
	// OutDir is the resolved target directory for both artifacts.
	OutDir    string
	Autoclean bool
	// MaxDuplicateIndices bounds the duplicate index listing; the count
	// stays exact. Zero means the default of 10.
	MaxDuplicateIndices int
	Delimiter           rune
}

// FileInfo identifies the scanned file.
type FileInfo struct {
	Name   string
	SizeKB float64
}

// Report is built once from immutable snapshots of the analysis and never
// mutated after Persist.
type Report struct {
	ctx     RunContext
	File    FileInfo
	Summary *profile.Summary
	Cleaned *table.Table

	// ReportPath is where the report is written. CleanedLine and
	// ReportLine are the status strings rendered in the closing section:
	// a path, "Skipped", or a "Not saved (...)" placeholder.
	ReportPath  string
	ReportLine  string
	CleanedLine string

	// Warnings collects recovered write failures.
	Warnings []string
}

// New builds a report and resolves both artifact paths from the run context.
func New(ctx RunContext, file FileInfo, sum *profile.Summary, cleaned *table.Table) *Report {
	if ctx.MaxDuplicateIndices <= 0 {
		ctx.MaxDuplicateIndices = 10
	}
	if ctx.Delimiter == 0 {
		ctx.Delimiter = ','
	}
	ext := filepath.Ext(file.Name)
	stem := strings.TrimSuffix(file.Name, ext)
	ts := ctx.Now.Format("2006-01-02_15-04-05")

	r := &Report{
		ctx:     ctx,
		File:    file,
		Summary: sum,
		Cleaned: cleaned,
	}
	r.ReportPath = filepath.Join(ctx.OutDir, fmt.Sprintf("clean_report_%s_%s.txt", stem, ts))
	r.ReportLine = r.ReportPath
	switch {
	case !ctx.Autoclean:
		r.CleanedLine = "Skipped"
	case cleaned == nil || cleaned.NumRows() == 0:
		r.CleanedLine = "Not saved (no rows survived cleaning)"
	default:
		r.CleanedLine = filepath.Join(ctx.OutDir, stem+"_cleaned"+ext)
	}
	return r
}

// Persist writes the cleaned table and then the report. Each write is
// atomic and independent; a failure downgrades the corresponding line to a
// placeholder and is recorded as a warning rather than aborting the run.
func (r *Report) Persist() {
	if r.ctx.Autoclean && r.Cleaned != nil && r.Cleaned.NumRows() > 0 {
		if err := r.writeCleaned(); err != nil {
			r.Warnings = append(r.Warnings, fmt.Sprintf("cleaned dataset not saved: %v", err))
			r.CleanedLine = "Not saved (write failed)"
		}
	}
	if err := utils.SafeWriteFile(r.ReportPath, []byte(r.Render())); err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("report not saved: %v", err))
		r.ReportLine = "Not saved (write failed)"
	}
}

func (r *Report) writeCleaned() error {
	data, err := r.Cleaned.Encode(r.ctx.Delimiter)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(r.CleanedLine, data)
}

// Render produces the fixed-layout analysis block. The labels, order and
// spacing are a compatibility contract; do not restyle them.
func (r *Report) Render() string {
	s := r.Summary
	cleanedRows := 0
	if r.Cleaned != nil {
		cleanedRows = r.Cleaned.NumRows()
	}
	lines := []string{
		divider,
		"   MICRO DATA CLEANER – ANALYSIS REPORT",
		divider,
		fmt.Sprintf("File scanned              :  %s", r.File.Name),
		fmt.Sprintf("File size (KB)            :  %.2f", r.File.SizeKB),
		fmt.Sprintf("Total rows                :  %d", s.TotalRows),
		fmt.Sprintf("Total columns              :  %d", s.TotalCols),
		divider,
		fmt.Sprintf("Missing Values            :  %d columns → %s", len(s.Missing), missingList(s.Missing)),
		fmt.Sprintf("Duplicate Entries         :  %d rows (indices: %s)", s.DuplicateCount, indexList(s.DuplicateIndices, r.ctx.MaxDuplicateIndices)),
		fmt.Sprintf("Mixed Data Types          :  %s", mixedList(s.Mixed)),
		fmt.Sprintf("Outliers Detected         :  %s", outlierList(s.Outliers)),
		divider,
		"Effective Data (after cleaning):",
		fmt.Sprintf("   Unique rows retained   :  %d", s.UniqueRows),
		fmt.Sprintf("   Rows after cleaning    :  %d", cleanedRows),
		fmt.Sprintf("   Worthy data ratio      :  %.2f%%", s.WorthyRatio),
		divider,
		fmt.Sprintf("Report saved as           :  %s", r.ReportLine),
		fmt.Sprintf("Cleaned dataset           :  %s", r.CleanedLine),
		divider,
	}
	return strings.Join(lines, "\n") + "\n"
}

func missingList(cols []profile.ColumnCount) string {
	if len(cols) == 0 {
		return "None"
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s (%d)", c.Name, c.Count)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func indexList(indices []int, limit int) string {
	if len(indices) == 0 {
		return "none"
	}
	shown := indices
	truncated := false
	if len(shown) > limit {
		shown = shown[:limit]
		truncated = true
	}
	parts := make([]string, len(shown))
	for i, idx := range shown {
		parts[i] = strconv.Itoa(idx)
	}
	out := strings.Join(parts, ", ")
	if truncated {
		out += ", ..."
	}
	return out
}

func mixedList(cols []profile.MixedColumn) string {
	if len(cols) == 0 {
		return "None"
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s [%s]", c.Name, strings.Join(c.Kinds, ", "))
	}
	return strings.Join(parts, ", ")
}

func outlierList(cols []profile.ColumnCount) string {
	if len(cols) == 0 {
		return "None"
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s (%d)", c.Name, c.Count)
	}
	return strings.Join(parts, ", ")
}
