package recommend

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the engine thresholds. Fields are pointers so a partial
// JSON file only overrides what it names; the Get* methods supply the
// defaults. The schema matches the /api/config endpoint.
type Config struct {
	// Profiling params
	SampleRowLimit *int `json:"sample_row_limit,omitempty"`

	// Rule thresholds
	ConfidenceFloor   *float64 `json:"confidence_floor,omitempty"`
	BarMaxCategories  *int     `json:"bar_max_categories,omitempty"`
	PieMaxCategories  *int     `json:"pie_max_categories,omitempty"`
	HistogramBaseline *float64 `json:"histogram_baseline,omitempty"`
	BoxSpreadRatio    *float64 `json:"box_spread_ratio,omitempty"`
}

// EmptyConfig returns a Config with all fields unset, so every Get*
// accessor reports its default.
func EmptyConfig() *Config {
	return &Config{}
}

// LoadConfig loads a Config from a JSON file. Omitted fields keep
// their defaults, so partial configs are safe.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if c.ConfidenceFloor != nil {
		if *c.ConfidenceFloor < 0 || *c.ConfidenceFloor > 1 {
			return fmt.Errorf("confidence_floor must be between 0 and 1, got %f", *c.ConfidenceFloor)
		}
	}
	if c.HistogramBaseline != nil {
		if *c.HistogramBaseline < 0 || *c.HistogramBaseline > 1 {
			return fmt.Errorf("histogram_baseline must be between 0 and 1, got %f", *c.HistogramBaseline)
		}
	}
	if c.SampleRowLimit != nil && *c.SampleRowLimit < 1 {
		return fmt.Errorf("sample_row_limit must be positive, got %d", *c.SampleRowLimit)
	}
	if c.BarMaxCategories != nil && *c.BarMaxCategories < 1 {
		return fmt.Errorf("bar_max_categories must be positive, got %d", *c.BarMaxCategories)
	}
	if c.PieMaxCategories != nil && *c.PieMaxCategories < 1 {
		return fmt.Errorf("pie_max_categories must be positive, got %d", *c.PieMaxCategories)
	}
	if c.BoxSpreadRatio != nil && *c.BoxSpreadRatio <= 0 {
		return fmt.Errorf("box_spread_ratio must be positive, got %f", *c.BoxSpreadRatio)
	}
	return nil
}

// GetSampleRowLimit returns the profiling row-sample limit or the default.
func (c *Config) GetSampleRowLimit() int {
	if c.SampleRowLimit == nil {
		return 50000
	}
	return *c.SampleRowLimit
}

// GetConfidenceFloor returns the minimum confidence kept in a batch.
func (c *Config) GetConfidenceFloor() float64 {
	if c.ConfidenceFloor == nil {
		return 0.1
	}
	return *c.ConfidenceFloor
}

// GetBarMaxCategories returns the largest distinct count a categorical
// column may have and still yield a bar chart.
func (c *Config) GetBarMaxCategories() int {
	if c.BarMaxCategories == nil {
		return 12
	}
	return *c.BarMaxCategories
}

// GetPieMaxCategories returns the largest distinct count a categorical
// column may have and still yield a pie chart.
func (c *Config) GetPieMaxCategories() int {
	if c.PieMaxCategories == nil {
		return 6
	}
	return *c.PieMaxCategories
}

// GetHistogramBaseline returns the fixed confidence of the histogram
// fallback recommendation.
func (c *Config) GetHistogramBaseline() float64 {
	if c.HistogramBaseline == nil {
		return 0.35
	}
	return *c.HistogramBaseline
}

// GetBoxSpreadRatio returns the (max-min)/distinct threshold above
// which a numeric column is offered a box chart.
func (c *Config) GetBoxSpreadRatio() float64 {
	if c.BoxSpreadRatio == nil {
		return 10.0
	}
	return *c.BoxSpreadRatio
}
