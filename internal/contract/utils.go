package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gamsoft/branchlens/schema"
)

// DateTimeFormat is the timestamp layout used for CSV and table output.
const DateTimeFormat = "2006-01-02 15:04:05"

// Activity label constants.
const (
	ActiveValue  = "Active"  // Committed within the last month
	QuietValue   = "Quiet"   // Committed within the last quarter
	DormantValue = "Dormant" // No commits for over a quarter
	UnknownValue = "Unknown" // No usable commit timestamps
)

// Color variables for console output.
var (
	ActiveColor  = color.New(color.FgGreen, color.Bold) // activeColor marks recent contributors.
	QuietColor   = color.New(color.FgYellow)            // quietColor marks slowing contributors.
	DormantColor = color.New(color.FgRed)               // dormantColor marks departed contributors.
	UnknownColor = color.New(color.FgCyan)              // unknownColor marks unresolvable identities.
)

// GetPlainLabel returns a plain text label for an author's activity level.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(level schema.ActivityLevel) string {
	switch level {
	case schema.ActiveLevel:
		return ActiveValue
	case schema.QuietLevel:
		return QuietValue
	case schema.DormantLevel:
		return DormantValue
	default:
		return UnknownValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(level schema.ActivityLevel) string {
	text := GetPlainLabel(level)

	switch text {
	case ActiveValue:
		return ActiveColor.Sprint(text)
	case QuietValue:
		return QuietColor.Sprint(text)
	case DormantValue:
		return DormantColor.Sprint(text)
	default: // "Unknown"
		return UnknownColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
// Without this check, small maxWidth values could cause slice bounds errors in the truncation calculation.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
