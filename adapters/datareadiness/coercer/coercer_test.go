package coercer

import (
	"testing"
	"time"

	"dataprep/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceValue(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		raw  string
		want dataset.ValueType
	}{
		{"", dataset.ValueTypeMissing},
		{"  NA ", dataset.ValueTypeMissing},
		{"#N/A", dataset.ValueTypeMissing},
		{"null", dataset.ValueTypeMissing},
		{"42", dataset.ValueTypeNumeric},
		{"-1.5e3", dataset.ValueTypeNumeric},
		{" 7 ", dataset.ValueTypeNumeric},
		{"inf", dataset.ValueTypeString},
		{"0x1F", dataset.ValueTypeString},
		{"1_000", dataset.ValueTypeString},
		{"True", dataset.ValueTypeBoolean},
		{"FALSE", dataset.ValueTypeBoolean},
		{"yes", dataset.ValueTypeString},
		{"2024-03-01", dataset.ValueTypeTimestamp},
		{"2024-03-01 12:30:00", dataset.ValueTypeTimestamp},
		{"hello", dataset.ValueTypeString},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, c.CoerceValue(tt.raw).Type)
		})
	}
}

func TestCoerceValue_KeepsRawText(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	v := c.CoerceValue("1.50")
	assert.Equal(t, 1.5, v.Num)
	assert.Equal(t, "1.50", v.Raw)

	ts := c.CoerceValue("2024-03-01")
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ts.Time)
}

func TestCoerceValue_DisabledRules(t *testing.T) {
	config := DefaultCoercionConfig()
	config.ParseBooleans = false
	config.ParseTimestamps = false
	c := NewTypeCoercer(config)

	assert.Equal(t, dataset.ValueTypeString, c.CoerceValue("True").Type)
	assert.Equal(t, dataset.ValueTypeString, c.CoerceValue("2024-03-01").Type)
}

func TestParseFlag(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	for _, raw := range []string{"true", "TRUE", "1", "yes", "on"} {
		b, err := c.ParseFlag(raw)
		require.NoError(t, err, raw)
		assert.True(t, b, raw)
	}
	for _, raw := range []string{"false", "0", "No", "off"} {
		b, err := c.ParseFlag(raw)
		require.NoError(t, err, raw)
		assert.False(t, b, raw)
	}

	_, err := c.ParseFlag("perhaps")
	assert.Error(t, err)
}
