package recommend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := EmptyConfig()
	assert.Equal(t, 50000, cfg.GetSampleRowLimit())
	assert.Equal(t, 0.1, cfg.GetConfidenceFloor())
	assert.Equal(t, 12, cfg.GetBarMaxCategories())
	assert.Equal(t, 6, cfg.GetPieMaxCategories())
	assert.Equal(t, 0.35, cfg.GetHistogramBaseline())
	assert.Equal(t, 10.0, cfg.GetBoxSpreadRatio())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPartialConfig(t *testing.T) {
	path := writeConfig(t, `{"confidence_floor": 0.25, "bar_max_categories": 8}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.GetConfidenceFloor())
	assert.Equal(t, 8, cfg.GetBarMaxCategories())
	// Omitted fields keep defaults.
	assert.Equal(t, 6, cfg.GetPieMaxCategories())
	assert.Equal(t, 50000, cfg.GetSampleRowLimit())
}

func TestLoadRejectsNonJSONExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := writeConfig(t, `{"confidence_floor": `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty is valid", Config{}, false},
		{"floor in range", Config{ConfidenceFloor: floatPtr(0.5)}, false},
		{"floor too high", Config{ConfidenceFloor: floatPtr(1.5)}, true},
		{"floor negative", Config{ConfidenceFloor: floatPtr(-0.1)}, true},
		{"baseline too high", Config{HistogramBaseline: floatPtr(2)}, true},
		{"zero sample limit", Config{SampleRowLimit: intPtr(0)}, true},
		{"zero bar categories", Config{BarMaxCategories: intPtr(0)}, true},
		{"zero pie categories", Config{PieMaxCategories: intPtr(0)}, true},
		{"negative spread ratio", Config{BoxSpreadRatio: floatPtr(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
