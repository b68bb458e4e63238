package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/gamsoft/branchlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// topFilesPerAuthor bounds the per-author file ranking in file output.
const topFilesPerAuthor = 5

// authorFileRow is one flattened row of the per-author file ranking.
type authorFileRow struct {
	AuthorKey   string `json:"author_key"`
	DisplayName string `json:"display_name"`
	Path        string `json:"path"`
	Touches     int    `json:"touches"`
	Additions   int    `json:"additions"`
	Deletions   int    `json:"deletions"`
	Churn       int    `json:"churn"`
	Class       string `json:"class"`
}

// WriteFileResults outputs per-author file rankings, dispatching based on the output format configured.
// File rankings are only populated when commit details were fetched.
func WriteFileResults(analysis *schema.BranchAnalysis, cfg *contract.Config, duration time.Duration) error {
	rows := buildAuthorFileRows(analysis, cfg.ResultLimit)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFileCSV(w, rows)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFileTable(w, analysis, rows, cfg, duration)
		}, "Wrote table")
	}
}

// buildAuthorFileRows flattens each ranked author's top files into rows.
func buildAuthorFileRows(analysis *schema.BranchAnalysis, authorLimit int) []authorFileRow {
	ranked := analysis.RankedAuthors()
	if authorLimit > 0 && len(ranked) > authorLimit {
		ranked = ranked[:authorLimit]
	}

	var rows []authorFileRow
	for _, agg := range ranked {
		for _, touch := range agg.TopFiles(topFilesPerAuthor) {
			rows = append(rows, authorFileRow{
				AuthorKey:   agg.Key,
				DisplayName: agg.DisplayName,
				Path:        touch.Path,
				Touches:     touch.Touches,
				Additions:   touch.Additions,
				Deletions:   touch.Deletions,
				Churn:       touch.Churn(),
				Class:       string(contract.ClassifyFile(touch.Path)),
			})
		}
	}
	return rows
}

// writeFileTable generates and writes the human-readable file ranking.
func writeFileTable(w io.Writer, analysis *schema.BranchAnalysis, rows []authorFileRow, cfg *contract.Config, duration time.Duration) error {
	if len(rows) == 0 {
		if _, err := fmt.Fprintln(w, "No file data collected. Run with --details to fetch per-commit file stats."); err != nil {
			return err
		}
		return writeCaveats(w, analysis.LineageConfirmed, analysis.InputComplete)
	}

	table := tablewriter.NewWriter(w)

	table.Header([]string{"Author", "Path", "Touches", "Added", "Deleted", "Churn", "Class"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxPathWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for _, row := range rows {
		data = append(data, []string{
			row.DisplayName,
			contract.TruncatePath(row.Path, maxPathWidth),
			strconv.Itoa(row.Touches),
			schema.FormatCount(row.Additions),
			schema.FormatCount(row.Deletions),
			schema.FormatCount(row.Churn),
			row.Class,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing top %d files per author on %s\n", topFilesPerAuthor, analysis.Branch); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Cache backend: %s\n",
		duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return writeCaveats(w, analysis.LineageConfirmed, analysis.InputComplete)
}

// writeFileCSV writes the file rankings in CSV format.
func writeFileCSV(w io.Writer, rows []authorFileRow) error {
	header := []string{
		"author_key",
		"display_name",
		"path",
		"touches",
		"additions",
		"deletions",
		"churn",
		"class",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, row := range rows {
			rec := []string{
				row.AuthorKey,
				row.DisplayName,
				row.Path,
				strconv.Itoa(row.Touches),
				strconv.Itoa(row.Additions),
				strconv.Itoa(row.Deletions),
				strconv.Itoa(row.Churn),
				row.Class,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
