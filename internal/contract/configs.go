package contract

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gamsoft/branchlens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPerPage     = 100
	MaxPerPage         = 100
	DefaultMaxPages    = 10
	MaxMaxPages        = 100
	DefaultRateLimit   = 5
)

// TokenFileName is the local fallback file checked for a GitHub token when
// neither the flag nor the environment provides one.
const TokenFileName = "github_api.txt"

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	Owner  string
	Repo   string
	Branch string // Empty means use the repository default branch
	Token  string // Please use env var as this is plaintext

	PerPage     int
	MaxPages    int
	RateLimit   int // Client-side request rate per second
	Workers     int
	ResultLimit int
	Details     bool // Fetch per-commit diff stats

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoURLStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Branch            string `mapstructure:"branch"`
	Token             string `mapstructure:"token"`
	MaxPages          int    `mapstructure:"max-pages"`
	PerPage           int    `mapstructure:"per-page"`
	RateLimit         int    `mapstructure:"rate-limit"`
	Workers           int    `mapstructure:"workers"`
	Limit             int    `mapstructure:"limit"`
	Details           bool   `mapstructure:"details"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// RepoSlug returns the repository in "owner/repo" form.
func (c *Config) RepoSlug() string {
	return c.Owner + "/" + c.Repo
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRepoURL(cfg, input); err != nil {
		return err
	}
	cfg.Token = ResolveToken(input.Token)
	return nil
}

// ProcessAndValidateBase validates everything except the repository URL.
// The MCP server uses this because it resolves the repository per tool call.
func ProcessAndValidateBase(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	cfg.Token = ResolveToken(input.Token)
	return nil
}

// validateSimpleInputs processes and validates all non-URL related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Details = input.Details
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Pagination Validation ---
	if input.PerPage <= 0 || input.PerPage > MaxPerPage {
		return fmt.Errorf("per-page must be between 1 and %d (received %d)", MaxPerPage, input.PerPage)
	}
	cfg.PerPage = input.PerPage

	if input.MaxPages <= 0 || input.MaxPages > MaxMaxPages {
		return fmt.Errorf("max-pages must be between 1 and %d (received %d)", MaxMaxPages, input.MaxPages)
	}
	cfg.MaxPages = input.MaxPages

	// --- 3. Workers and RateLimit Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.RateLimit <= 0 {
		return fmt.Errorf("rate-limit must be greater than 0 (received %d)", input.RateLimit)
	}
	cfg.RateLimit = input.RateLimit

	// --- 4. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 5. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processRepoURL resolves the positional repository argument and the branch
// override into the final Config fields.
func processRepoURL(cfg *Config, input *ConfigRawInput) error {
	owner, repo, branch, err := ParseRepoURL(input.RepoURLStr)
	if err != nil {
		return err
	}
	cfg.Owner = owner
	cfg.Repo = repo
	cfg.Branch = branch

	// --branch wins over any /tree/<branch> suffix in the URL
	if input.Branch != "" {
		cfg.Branch = input.Branch
	}
	return nil
}

// ParseRepoURL extracts owner, repo and an optional branch from a GitHub URL
// or an "owner/repo" shorthand. Supported forms:
//
//	https://github.com/owner/repo
//	https://github.com/owner/repo/tree/branch/name
//	owner/repo
func ParseRepoURL(raw string) (owner, repo, branch string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", "", fmt.Errorf("repository URL is required (e.g. https://github.com/owner/repo or owner/repo)")
	}

	path := raw
	if strings.Contains(raw, "://") {
		u, parseErr := url.Parse(raw)
		if parseErr != nil {
			return "", "", "", fmt.Errorf("invalid repository URL %q: %w", raw, parseErr)
		}
		if host := strings.ToLower(u.Host); host != "github.com" && host != "www.github.com" {
			return "", "", "", fmt.Errorf("unsupported host %q: only github.com repositories are supported", u.Host)
		}
		path = u.Path
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("cannot extract owner/repo from %q", raw)
	}

	owner = parts[0]
	repo = strings.TrimSuffix(parts[1], ".git")

	// Branch names may contain slashes, so keep everything after /tree/.
	if len(parts) > 3 && parts[2] == "tree" {
		branch = strings.Join(parts[3:], "/")
	}
	return owner, repo, branch, nil
}

// ResolveToken resolves the GitHub API token with the following precedence:
// explicit flag value, GITHUB_TOKEN environment variable, then a local
// github_api.txt file. Returns an empty string when nothing is configured;
// unauthenticated access works with much lower rate limits.
func ResolveToken(explicit string) string {
	if explicit != "" {
		return strings.TrimSpace(explicit)
	}
	if env := os.Getenv("GITHUB_TOKEN"); env != "" {
		return strings.TrimSpace(env)
	}
	if data, err := os.ReadFile(TokenFileName); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
			return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
		}
		cfg.AnalysisDBConnect = input.AnalysisDBConnect
		if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
			return err
		}

		// Validate that cache and analysis use different databases
		if cfg.CacheBackend == cfg.AnalysisBackend && cfg.CacheBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			analysisDBPath := cfg.AnalysisDBConnect
			if analysisDBPath == "" {
				analysisDBPath = GetAnalysisDBFilePath()
			}
			if cacheDBPath == analysisDBPath {
				return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".branchlens_cache.db"
	}
	return filepath.Join(homeDir, ".branchlens_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".branchlens_analysis.db"
	}
	return filepath.Join(homeDir, ".branchlens_analysis.db")
}
