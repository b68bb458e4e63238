package contract

import (
	"testing"

	"github.com/gamsoft/branchlens/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, ActiveValue, GetPlainLabel(schema.ActiveLevel))
	assert.Equal(t, QuietValue, GetPlainLabel(schema.QuietLevel))
	assert.Equal(t, DormantValue, GetPlainLabel(schema.DormantLevel))
	assert.Equal(t, UnknownValue, GetPlainLabel(schema.UnknownLevel))
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		want     string
	}{
		{"short path unchanged", "core/filter.go", 50, "core/filter.go"},
		{"long path truncated", "internal/outwriter/output_authors.go", 20, "...output_authors.go"},
		{"tiny width unchanged", "core/filter.go", 3, "core/filter.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncatePath(tt.path, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "YES", "true", "1"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
