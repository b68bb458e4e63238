package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gamsoft/branchlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		RepoURLStr:   "https://github.com/octocat/hello-world",
		MaxPages:     DefaultMaxPages,
		PerPage:      DefaultPerPage,
		RateLimit:    DefaultRateLimit,
		Workers:      4,
		Limit:        DefaultResultLimit,
		Output:       "text",
		CacheBackend: "sqlite",
		Emoji:        "no",
		Color:        "yes",
	}
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantOwner  string
		wantRepo   string
		wantBranch string
		wantErr    bool
	}{
		{"full url", "https://github.com/octocat/hello-world", "octocat", "hello-world", "", false},
		{"url with branch", "https://github.com/octocat/hello-world/tree/develop", "octocat", "hello-world", "develop", false},
		{"branch with slash", "https://github.com/octocat/hello-world/tree/feature/login", "octocat", "hello-world", "feature/login", false},
		{"shorthand", "octocat/hello-world", "octocat", "hello-world", "", false},
		{"trailing git suffix", "https://github.com/octocat/hello-world.git", "octocat", "hello-world", "", false},
		{"empty", "", "", "", "", true},
		{"owner only", "octocat", "", "", "", true},
		{"wrong host", "https://gitlab.com/octocat/hello-world", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, branch, err := ParseRepoURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantRepo, repo)
			assert.Equal(t, tt.wantBranch, branch)
		})
	}
}

func TestProcessAndValidate(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.RepoURLStr = "https://github.com/octocat/hello-world/tree/develop"

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "octocat", cfg.Owner)
	assert.Equal(t, "hello-world", cfg.Repo)
	assert.Equal(t, "develop", cfg.Branch)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
	assert.False(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateBranchFlagWins(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.RepoURLStr = "https://github.com/octocat/hello-world/tree/develop"
	input.Branch = "release/v2"

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "release/v2", cfg.Branch)
}

func TestProcessAndValidateRejectsBadInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"zero limit", func(i *ConfigRawInput) { i.Limit = 0 }},
		{"excessive limit", func(i *ConfigRawInput) { i.Limit = MaxResultLimit + 1 }},
		{"zero per-page", func(i *ConfigRawInput) { i.PerPage = 0 }},
		{"oversized per-page", func(i *ConfigRawInput) { i.PerPage = MaxPerPage + 1 }},
		{"zero max-pages", func(i *ConfigRawInput) { i.MaxPages = 0 }},
		{"zero workers", func(i *ConfigRawInput) { i.Workers = 0 }},
		{"zero rate-limit", func(i *ConfigRawInput) { i.RateLimit = 0 }},
		{"bad output", func(i *ConfigRawInput) { i.Output = "xml" }},
		{"bad cache backend", func(i *ConfigRawInput) { i.CacheBackend = "redis" }},
		{"mysql without connect", func(i *ConfigRawInput) { i.CacheBackend = "mysql" }},
		{"bad emoji", func(i *ConfigRawInput) { i.Emoji = "maybe" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/branchlens"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost port=5432 dbname=branchlens"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "localhost:3306"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "localhost"))
}

func TestResolveToken(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "env-token")
		assert.Equal(t, "flag-token", ResolveToken("flag-token"))
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", " env-token ")
		assert.Equal(t, "env-token", ResolveToken(""))
	})

	t.Run("file fallback", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, TokenFileName), []byte("file-token\n"), 0o600))
		t.Chdir(dir)
		assert.Equal(t, "file-token", ResolveToken(""))
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Chdir(t.TempDir())
		assert.Equal(t, "", ResolveToken(""))
	})
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Owner: "octocat", Repo: "hello-world", Branch: "main", ResultLimit: 10}
	clone := cfg.Clone()
	clone.Branch = "develop"
	assert.Equal(t, "main", cfg.Branch)
	assert.Equal(t, "octocat/hello-world", cfg.RepoSlug())
}
