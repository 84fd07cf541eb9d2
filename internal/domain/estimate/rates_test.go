package estimate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRates(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  string
		want    Rates
		wantErr bool
	}{
		{
			name:   "yaml overrides",
			data:   "cement: 450\nsteel: 75.5\n",
			format: "yaml",
			want:   Rates{Cement: 450, Steel: 75.5, Sand: 50, Bricks: 10, Labor: 800},
		},
		{
			name:   "toml overrides",
			data:   "labor = 950\naggregate = 35\n",
			format: "toml",
			want:   Rates{Cement: 400, Steel: 70, Sand: 50, Aggregate: 35, Bricks: 10, Labor: 950},
		},
		{
			name:   "empty file keeps defaults",
			data:   "",
			format: "toml",
			want:   DefaultRates(),
		},
		{
			name:   "yml extension",
			data:   "bricks: 12\n",
			format: "yml",
			want:   Rates{Cement: 400, Steel: 70, Sand: 50, Bricks: 12, Labor: 800},
		},
		{
			name:    "negative rate",
			data:    "bricks: -1\n",
			format:  "yaml",
			wantErr: true,
		},
		{
			name:    "malformed toml",
			data:    "labor = = 1",
			format:  "toml",
			wantErr: true,
		},
		{
			name:    "unknown format",
			data:    "{}",
			format:  "ini",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRates([]byte(tt.data), tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRatesNegativeIsInvalidRates(t *testing.T) {
	_, err := ParseRates([]byte("labor: -5\n"), "yaml")
	assert.ErrorIs(t, err, ErrInvalidRates)
}

func TestLoadRates(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "rates.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("sand: 60\n"), 0o644))
	rates, err := LoadRates(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 60.0, rates.Sand)

	tomlPath := filepath.Join(dir, "rates.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("sand = 65\n"), 0o644))
	rates, err = LoadRates(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, 65.0, rates.Sand)

	_, err = LoadRates(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
