package cleaning

import (
	"fmt"
	"io"
	"strings"

	"dataprep/domain/core"
	"dataprep/internal/quality"

	"gopkg.in/yaml.v3"
)

// Policy selects how nulls are handled
type Policy string

const (
	PolicyDrop   Policy = "drop"
	PolicyMean   Policy = "mean"
	PolicyMedian Policy = "median"
)

// ParsePolicy validates a missing-value policy name
func ParsePolicy(raw string) (Policy, error) {
	switch p := Policy(strings.TrimSpace(raw)); p {
	case PolicyDrop, PolicyMean, PolicyMedian:
		return p, nil
	default:
		return "", core.NewInvalidPolicyError(raw)
	}
}

// Config holds the cleaning options
type Config struct {
	HandleMissing    Policy         `json:"handle_missing" yaml:"handle_missing"`
	RemoveDuplicates bool           `json:"remove_duplicates" yaml:"remove_duplicates"`
	RemoveOutliers   bool           `json:"remove_outliers" yaml:"remove_outliers"`
	OutlierColumn    string         `json:"outlier_column" yaml:"outlier_column"`
	OutlierMethod    quality.Method `json:"outlier_method" yaml:"outlier_method"`
}

// DefaultConfig drops incomplete rows and duplicates and keeps outliers
func DefaultConfig() Config {
	return Config{
		HandleMissing:    PolicyDrop,
		RemoveDuplicates: true,
		RemoveOutliers:   false,
		OutlierColumn:    "",
		OutlierMethod:    quality.MethodZScore,
	}
}

// Validate checks the options before any data is touched. Outlier removal
// without a target column is an error rather than a no-op.
func (c Config) Validate() error {
	if _, err := ParsePolicy(string(c.HandleMissing)); err != nil {
		return err
	}
	if !c.RemoveOutliers {
		return nil
	}
	if _, err := quality.ParseMethod(string(c.OutlierMethod)); err != nil {
		return err
	}
	if strings.TrimSpace(c.OutlierColumn) == "" {
		return core.NewColumnNotFoundError(c.OutlierColumn)
	}
	return nil
}

// DecodeConfig reads a YAML cleaning config. Keys left out keep their
// default value; unknown keys are rejected.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, fmt.Errorf("failed to decode cleaning config: %w", err)
	}
	return cfg, cfg.Validate()
}
