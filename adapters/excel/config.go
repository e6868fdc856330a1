package excel

import (
	"dataprep/adapters/datareadiness/coercer"
)

// ReaderConfig holds configuration for decoding uploads
type ReaderConfig struct {
	SheetName      string                 `json:"sheet_name"` // Empty reads the first sheet
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
}

// DefaultReaderConfig returns sensible defaults for upload decoding
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}
