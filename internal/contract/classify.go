package contract

import (
	"path"
	"strings"
)

// FileClass buckets file paths by their role in a repository.
type FileClass string

// All file classes supported.
const (
	SourceClass FileClass = "Source Code"
	ConfigClass FileClass = "Configuration"
	DocsClass   FileClass = "Documentation"
	DataClass   FileClass = "Data"
	WebClass    FileClass = "Web Assets"
	TestClass   FileClass = "Testing"
	DepsClass   FileClass = "Dependencies"
	BuildClass  FileClass = "Build/CI"
	OtherClass  FileClass = "Other"
)

// fileNamePatterns match anywhere in the lowercased base name and take
// precedence over extension lookup, so "test_config.py" classifies as Testing.
var fileNamePatterns = []struct {
	class    FileClass
	patterns []string
}{
	{TestClass, []string{"test_", "_test.", ".test.", "spec.", ".spec.", "conftest"}},
	{DepsClass, []string{
		"requirements", "package.json", "pipfile", "cargo.toml",
		"go.mod", "go.sum", "pom.xml", "build.gradle", "gemfile", "poetry.lock",
		"yarn.lock", "package-lock",
	}},
	{BuildClass, []string{
		"dockerfile", "makefile", ".github", "jenkinsfile",
		".gitlab-ci", ".circleci", "tox.ini", "setup.py", "setup.cfg",
		"pyproject.toml",
	}},
}

// fileClassExtensions maps lowercased extensions to a class.
var fileClassExtensions = map[string]FileClass{}

func init() {
	register := func(class FileClass, exts ...string) {
		for _, ext := range exts {
			fileClassExtensions[ext] = class
		}
	}
	register(SourceClass,
		".py", ".js", ".ts", ".jsx", ".tsx", ".java", ".go", ".rs",
		".c", ".cpp", ".h", ".cs", ".rb", ".php", ".swift", ".kt",
		".scala", ".r", ".m", ".vue", ".svelte")
	register(ConfigClass,
		".json", ".yaml", ".yml", ".toml", ".ini", ".cfg", ".conf",
		".env", ".properties", ".xml")
	register(DocsClass, ".md", ".rst", ".txt", ".doc", ".pdf", ".adoc")
	register(DataClass, ".csv", ".sql", ".db", ".sqlite", ".parquet", ".jsonl")
	register(WebClass,
		".html", ".css", ".scss", ".less", ".svg", ".png", ".jpg",
		".jpeg", ".gif", ".ico", ".woff", ".woff2", ".ttf")
}

// ClassifyFile assigns a file path to a class by base-name pattern first,
// then extension, falling back to Other.
func ClassifyFile(filePath string) FileClass {
	name := strings.ToLower(path.Base(filePath))

	for _, entry := range fileNamePatterns {
		for _, pattern := range entry.patterns {
			if strings.Contains(name, pattern) {
				return entry.class
			}
		}
	}

	if ext := path.Ext(name); ext != "" {
		if class, ok := fileClassExtensions[ext]; ok {
			return class
		}
	}
	return OtherClass
}
