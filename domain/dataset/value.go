package dataset

import (
	"strconv"
	"time"
)

// ValueType defines the storage type for a single cell
type ValueType string

const (
	ValueTypeMissing   ValueType = "missing"
	ValueTypeNumeric   ValueType = "numeric"
	ValueTypeString    ValueType = "string"
	ValueTypeBoolean   ValueType = "boolean"
	ValueTypeTimestamp ValueType = "timestamp"
)

// Value represents a typed cell. Raw keeps the original text so exports
// reproduce what was uploaded.
type Value struct {
	Type ValueType
	Raw  string
	Num  float64
	Bool bool
	Time time.Time
}

// NewMissingValue creates a null cell
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing}
}

// NewNumericValue creates a numeric cell. An empty raw text is rendered from n.
func NewNumericValue(raw string, n float64) Value {
	if raw == "" {
		raw = strconv.FormatFloat(n, 'f', -1, 64)
	}
	return Value{Type: ValueTypeNumeric, Raw: raw, Num: n}
}

// NewStringValue creates a text cell; empty text is a null
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeString, Raw: s}
}

// NewBooleanValue creates a boolean cell
func NewBooleanValue(raw string, b bool) Value {
	if raw == "" {
		raw = strconv.FormatBool(b)
	}
	return Value{Type: ValueTypeBoolean, Raw: raw, Bool: b}
}

// NewTimestampValue creates a datetime cell
func NewTimestampValue(raw string, t time.Time) Value {
	if raw == "" {
		raw = t.Format(time.RFC3339)
	}
	return Value{Type: ValueTypeTimestamp, Raw: raw, Time: t}
}

// IsMissing reports whether the cell is null
func (v Value) IsMissing() bool {
	return v.Type == ValueTypeMissing
}

// IsNumeric reports whether the cell holds a real number
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumeric
}

// Key returns the identity used for equality of cells. Numbers compare by
// value so "1" and "1.0" collapse to the same key.
func (v Value) Key() string {
	switch v.Type {
	case ValueTypeMissing:
		return "\x00"
	case ValueTypeNumeric:
		return "n:" + strconv.FormatFloat(v.Num, 'g', -1, 64)
	case ValueTypeBoolean:
		return "b:" + strconv.FormatBool(v.Bool)
	case ValueTypeTimestamp:
		return "t:" + v.Time.UTC().Format(time.RFC3339Nano)
	default:
		return "s:" + v.Raw
	}
}

// String returns the text written to exports; nulls are empty
func (v Value) String() string {
	if v.IsMissing() {
		return ""
	}
	return v.Raw
}

// Interface returns the JSON-friendly representation of the cell
func (v Value) Interface() interface{} {
	switch v.Type {
	case ValueTypeMissing:
		return nil
	case ValueTypeNumeric:
		return v.Num
	case ValueTypeBoolean:
		return v.Bool
	case ValueTypeTimestamp:
		return v.Time.Format(time.RFC3339)
	default:
		return v.Raw
	}
}
