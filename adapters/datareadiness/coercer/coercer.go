package coercer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"dataprep/domain/dataset"
)

// TypeCoercer handles deterministic conversion of raw cell text into typed values
type TypeCoercer struct {
	config CoercionConfig
	nulls  map[string]struct{}
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	NullTokens       []string `json:"null_tokens"`       // Cell texts read as null
	ParseBooleans    bool     `json:"parse_booleans"`    // Recognise True/False cells
	ParseTimestamps  bool     `json:"parse_timestamps"`  // Recognise date and datetime cells
	TimestampFormats []string `json:"timestamp_formats"` // Layouts tried in order
}

// DefaultCoercionConfig returns the rules spreadsheet users expect: the usual
// NA spellings are null, True/False are booleans, ISO-like dates are timestamps.
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NullTokens: []string{
			"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
			"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
			"n/a", "nan", "null",
		},
		ParseBooleans:   true,
		ParseTimestamps: true,
		TimestampFormats: []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"01/02/2006",
			"2006/01/02",
			"02-Jan-2006",
			"01-02-06",
		},
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	nulls := make(map[string]struct{}, len(config.NullTokens))
	for _, token := range config.NullTokens {
		nulls[token] = struct{}{}
	}
	return &TypeCoercer{config: config, nulls: nulls}
}

// IsNull reports whether the raw text denotes a missing value
func (c *TypeCoercer) IsNull(raw string) bool {
	_, ok := c.nulls[strings.TrimSpace(raw)]
	return ok
}

// CoerceValue converts raw cell text to a typed value. Numbers win over
// booleans and timestamps; anything else is kept as text.
func (c *TypeCoercer) CoerceValue(raw string) dataset.Value {
	text := strings.TrimSpace(raw)
	if c.IsNull(text) {
		return dataset.NewMissingValue()
	}

	if n, ok := c.tryParseNumeric(text); ok {
		return dataset.NewNumericValue(text, n)
	}

	if c.config.ParseBooleans {
		if b, ok := c.tryParseBoolean(text); ok {
			return dataset.NewBooleanValue(text, b)
		}
	}

	if c.config.ParseTimestamps {
		if t, ok := c.tryParseTimestamp(text); ok {
			return dataset.NewTimestampValue(text, t)
		}
	}

	return dataset.NewStringValue(text)
}

// CoerceRow converts a row of raw texts
func (c *TypeCoercer) CoerceRow(raw []string) []dataset.Value {
	row := make([]dataset.Value, len(raw))
	for j, cell := range raw {
		row[j] = c.CoerceValue(cell)
	}
	return row
}

// ParseFlag parses a request flag. It is more lenient than cell parsing and
// accepts the usual yes/no and on/off spellings.
func (c *TypeCoercer) ParseFlag(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, nil
	case "false", "0", "no", "n", "off", "f":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value '%s'", raw)
}

// tryParseNumeric accepts plain decimal and scientific notation. Infinities
// and NaN are rejected so every numeric cell is finite.
func (c *TypeCoercer) tryParseNumeric(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") || strings.Contains(text, "_") {
		return 0, false
	}

	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// tryParseBoolean recognises the spellings spreadsheets write for booleans
func (c *TypeCoercer) tryParseBoolean(text string) (bool, bool) {
	switch text {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	}
	return false, false
}

// tryParseTimestamp attempts the configured layouts in order
func (c *TypeCoercer) tryParseTimestamp(text string) (time.Time, bool) {
	for _, format := range c.config.TimestampFormats {
		if t, err := time.Parse(format, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
