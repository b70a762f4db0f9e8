package cmd

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/microclean/internal/clean"
	"github.com/KaramelBytes/microclean/internal/loader"
	"github.com/KaramelBytes/microclean/internal/logging"
	"github.com/KaramelBytes/microclean/internal/profile"
	"github.com/KaramelBytes/microclean/internal/report"
	"github.com/KaramelBytes/microclean/internal/utils"
)

var (
	scanOutDir    string
	scanNoClean   bool
	scanDelimiter string
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Analyze a delimited file and report data-quality issues",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := effectiveConfig()

		var path string
		if len(args) == 1 {
			path = strings.TrimSpace(args[0])
		} else {
			// Interactive fallback, same contract as a path argument.
			fmt.Fprint(cmd.OutOrStdout(), "Enter path of CSV file: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read file path: %w", err)
			}
			path = strings.TrimSpace(line)
		}
		if path == "" {
			return fmt.Errorf("no input file given")
		}

		delim, err := resolveDelimiter(path, conf.Delimiter)
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		log := logging.New(debug || conf.Debug).With().
			Str("run_id", runID).
			Str("file", path).
			Logger()

		start := time.Now()
		res, err := loader.Load(path, delim)
		if err != nil {
			return err
		}
		if res.Latin1Fallback {
			log.Debug().Msg("input is not valid UTF-8, decoded as latin-1")
			fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Warning: input is not valid UTF-8; decoded as Latin-1")
		}
		tbl := res.Table
		log.Debug().
			Int("rows", tbl.NumRows()).
			Int("columns", tbl.NumCols()).
			Dur("elapsed", time.Since(start)).
			Msg("table loaded")

		sum := profile.Analyze(tbl)
		log.Debug().
			Int("duplicates", sum.DuplicateCount).
			Int("missing_columns", len(sum.Missing)).
			Int("mixed_columns", len(sum.Mixed)).
			Int("outlier_columns", len(sum.Outliers)).
			Float64("worthy_ratio", sum.WorthyRatio).
			Msg("profile complete")

		cleaned := clean.Clean(tbl)
		log.Debug().Int("rows", cleaned.NumRows()).Msg("cleaned table derived")

		sizeKB, err := utils.FileSizeKB(path)
		if err != nil {
			return err
		}
		outDir := scanOutDir
		if outDir == "" {
			outDir = conf.OutDir
		}
		if outDir == "" {
			outDir = filepath.Dir(path)
		}
		ctx := report.RunContext{
			Now:                 time.Now(),
			OutDir:              outDir,
			Autoclean:           conf.Autoclean && !scanNoClean,
			MaxDuplicateIndices: conf.MaxDuplicateIndices,
			Delimiter:           delim,
		}
		rep := report.New(ctx, report.FileInfo{Name: filepath.Base(path), SizeKB: sizeKB}, sum, cleaned)
		rep.Persist()
		for _, w := range rep.Warnings {
			log.Warn().Msg(w)
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", w)
		}
		fmt.Fprint(cmd.OutOrStdout(), rep.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanOutDir, "out-dir", "o", "", "directory for the report and cleaned dataset (default: the input file's directory)")
	scanCmd.Flags().BoolVar(&scanNoClean, "no-clean", false, "do not write the cleaned dataset")
	scanCmd.Flags().StringVar(&scanDelimiter, "delimiter", "", "field delimiter: ',' | ';' | 'tab' (default: sniff from filename, then config)")
}

// resolveDelimiter picks the field delimiter: explicit flag, then .tsv
// filename sniffing, then the configured default.
func resolveDelimiter(path, configured string) (rune, error) {
	sel := scanDelimiter
	if sel == "" {
		if loader.SniffDelimiter(path) == '\t' {
			return '\t', nil
		}
		sel = configured
	}
	switch sel {
	case "", ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", sel)
	}
}
