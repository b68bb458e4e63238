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

// shortSHALength is the abbreviated commit identifier width used in listings.
const shortSHALength = 8

// WriteCommitResults outputs the branch-exclusive commit listing, dispatching based on the output format configured.
func WriteCommitResults(analysis *schema.BranchAnalysis, cfg *contract.Config, duration time.Duration) error {
	commits := analysis.Exclusive
	if cfg.ResultLimit > 0 && len(commits) > cfg.ResultLimit {
		commits = commits[:cfg.ResultLimit]
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCommitJSON(w, analysis, commits)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCommitCSV(w, commits)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCommitTable(w, analysis, commits, cfg, duration)
		}, "Wrote table")
	}
}

// writeCommitTable generates and writes the human-readable commit listing.
func writeCommitTable(w io.Writer, analysis *schema.BranchAnalysis, commits []schema.CommitRecord, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	table.Header([]string{"Rank", "SHA", "Author", "Date", "Added", "Deleted", "Message"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxMsgWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for i, c := range commits {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			shortSHA(c.SHA),
			displayAuthor(&c),
			c.Timestamp.Format("2006-01-02"),
			schema.FormatCount(c.Additions),
			schema.FormatCount(c.Deletions),
			truncateMessage(c.Message, maxMsgWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d of %d exclusive commits on %s (default: %s)\n",
		len(commits), len(analysis.Exclusive), analysis.Branch, analysis.DefaultBranch); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Cache backend: %s\n",
		duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return writeCaveats(w, analysis.LineageConfirmed, analysis.InputComplete)
}

// writeCommitCSV writes the commit listing in CSV format.
func writeCommitCSV(w io.Writer, commits []schema.CommitRecord) error {
	header := []string{
		"rank",
		"sha",
		"author_login",
		"author_name",
		"timestamp",
		"additions",
		"deletions",
		"message",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, c := range commits {
			rec := []string{
				strconv.Itoa(i + 1),
				c.SHA,
				c.AuthorLogin,
				c.AuthorName,
				c.Timestamp.Format(contract.DateTimeFormat),
				strconv.Itoa(c.Additions),
				strconv.Itoa(c.Deletions),
				c.Message,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCommitJSON writes the commit listing in JSON format.
func writeCommitJSON(w io.Writer, analysis *schema.BranchAnalysis, commits []schema.CommitRecord) error {
	type commitListing struct {
		Owner            string                `json:"owner"`
		Repo             string                `json:"repo"`
		Branch           string                `json:"branch"`
		DefaultBranch    string                `json:"default_branch"`
		Commits          []schema.CommitRecord `json:"commits"`
		TotalExclusive   int                   `json:"total_exclusive"`
		LineageConfirmed bool                  `json:"lineage_confirmed"`
		InputComplete    bool                  `json:"input_complete"`
	}

	return writeJSON(w, commitListing{
		Owner:            analysis.Owner,
		Repo:             analysis.Repo,
		Branch:           analysis.Branch,
		DefaultBranch:    analysis.DefaultBranch,
		Commits:          commits,
		TotalExclusive:   len(analysis.Exclusive),
		LineageConfirmed: analysis.LineageConfirmed,
		InputComplete:    analysis.InputComplete,
	})
}

// shortSHA abbreviates a commit identifier for table display.
func shortSHA(sha string) string {
	if len(sha) > shortSHALength {
		return sha[:shortSHALength]
	}
	return sha
}

// displayAuthor picks the best human-readable author handle for a commit.
func displayAuthor(c *schema.CommitRecord) string {
	if c.AuthorLogin != "" {
		return c.AuthorLogin
	}
	if c.AuthorName != "" {
		return c.AuthorName
	}
	return contract.UnknownValue
}

// truncateMessage trims a commit subject line to the given width with an
// ellipsis suffix.
func truncateMessage(msg string, maxWidth int) string {
	runes := []rune(msg)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return msg
}
