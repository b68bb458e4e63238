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

// WriteAuthorResults outputs the per-author attribution, dispatching based on the output format configured.
func WriteAuthorResults(analysis *schema.BranchAnalysis, cfg *contract.Config, duration time.Duration) error {
	model := schema.EnrichAuthors(analysis, cfg.ResultLimit, 0)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorCSV(w, model)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorTable(w, model, cfg, duration)
		}, "Wrote table")
	}
}

// writeAuthorTable generates and writes the human-readable table.
func writeAuthorTable(w io.Writer, model *schema.AuthorsRenderModel, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	table.Header([]string{"Rank", "Author", "Commits", "Added", "Deleted", "Net", "Days", "Last Commit", "Activity"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, a := range model.Authors {
		label := contract.GetPlainLabel(a.Activity)
		if cfg.UseColors {
			label = contract.GetColorLabel(a.Activity)
		}
		lastCommit := ""
		if !a.LastCommit.IsZero() {
			lastCommit = a.LastCommit.Format(contract.DateTimeFormat)
		}
		data = append(data, []string{
			strconv.Itoa(a.Rank),
			a.DisplayName,
			schema.FormatCount(a.Commits),
			schema.FormatCount(a.Additions),
			schema.FormatCount(a.Deletions),
			schema.FormatNet(a.NetLines),
			strconv.Itoa(a.ActiveDays),
			lastCommit,
			label,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing top %d authors over %d exclusive commits (+%d/-%d lines)\n",
		len(model.Authors), model.TotalCommits,
		model.TotalAdditions, model.TotalDeletions); err != nil {
		return err
	}
	if model.SkippedMalformed > 0 || model.UnresolvedAuthors > 0 {
		if _, err := fmt.Fprintf(w, "Skipped %d malformed records, %d commits without a resolvable author\n",
			model.SkippedMalformed, model.UnresolvedAuthors); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Cache backend: %s\n",
		duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return writeCaveats(w, model.LineageConfirmed, model.InputComplete)
}

// writeAuthorCSV writes the attribution results in CSV format.
func writeAuthorCSV(w io.Writer, model *schema.AuthorsRenderModel) error {
	header := []string{
		"rank",
		"key",
		"login",
		"display_name",
		"commits",
		"additions",
		"deletions",
		"net_lines",
		"active_days",
		"first_commit",
		"last_commit",
		"activity",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, a := range model.Authors {
			rec := []string{
				strconv.Itoa(a.Rank),
				a.Key,
				a.Login,
				a.DisplayName,
				strconv.Itoa(a.Commits),
				strconv.Itoa(a.Additions),
				strconv.Itoa(a.Deletions),
				strconv.Itoa(a.NetLines),
				strconv.Itoa(a.ActiveDays),
				formatTime(a.FirstCommit),
				formatTime(a.LastCommit),
				contract.GetPlainLabel(a.Activity),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatTime formats a timestamp for CSV output, leaving zero times blank.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(contract.DateTimeFormat)
}
