// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/gamsoft/branchlens/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAuthors prints per-author attribution results using the configured output format.
func (ow *OutWriter) WriteAuthors(analysis *schema.BranchAnalysis, cfg *contract.Config, duration time.Duration) error {
	return WriteAuthorResults(analysis, cfg, duration)
}

// WriteCommits prints the branch-exclusive commit listing using the configured output format.
func (ow *OutWriter) WriteCommits(analysis *schema.BranchAnalysis, cfg *contract.Config, duration time.Duration) error {
	return WriteCommitResults(analysis, cfg, duration)
}

// WriteFiles prints per-author file rankings using the configured output format.
func (ow *OutWriter) WriteFiles(analysis *schema.BranchAnalysis, cfg *contract.Config, duration time.Duration) error {
	return WriteFileResults(analysis, cfg, duration)
}

// getMaxTablePathWidth calculates the maximum width for file paths and commit
// messages in table output based on terminal width and table configuration.
func getMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 45 // Rank + Author + Touches/Stats columns with borders/padding

	// Calculate available space for path
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}
