package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/config"
)

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"text", config.FormatText, false},
		{"JSON", config.FormatJSON, false},
		{" json ", config.FormatJSON, false},
		{"", config.FormatText, false},
		{"Table", config.FormatTable, false},
		{"summary", config.FormatSummary, false},
		{"sarif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := config.ParseOutputFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLineEnding(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]string{"": "\n", "lf": "\n", "cr": "\r", "crlf": "\r\n"} {
		got, err := config.ParseLineEnding(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, string(got), name)
	}

	_, err := config.ParseLineEnding("nl")
	require.Error(t, err)
}
