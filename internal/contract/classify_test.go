package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		path string
		want FileClass
	}{
		{"core/filter.go", SourceClass},
		{"app/main.py", SourceClass},
		{"config/settings.yaml", ConfigClass},
		{"README.md", DocsClass},
		{"data/export.parquet", DataClass},
		{"assets/logo.svg", WebClass},
		{"core/filter_test.go", TestClass},
		{"tests/test_filter.py", TestClass},
		{"go.mod", DepsClass},
		{"package.json", DepsClass},
		{"Dockerfile", BuildClass},
		{"Makefile", BuildClass},
		{"LICENSE", OtherClass},
		{"bin/tool", OtherClass},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFile(tt.path))
		})
	}
}
