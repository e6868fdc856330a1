package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := New([]string{"n", "s"}, [][]Value{
		{NewNumericValue("1", 1), NewStringValue("a")},
		{NewNumericValue("2.0", 2), NewMissingValue()},
		{NewNumericValue("1.0", 1), NewStringValue("a")},
		{NewNumericValue("3", 3)},
	})
	require.NoError(t, err)
	return ds
}

func TestKindOf(t *testing.T) {
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		values []Value
		want   Kind
	}{
		{"numbers with nulls", []Value{NewNumericValue("1", 1), NewMissingValue()}, KindNumeric},
		{"all null", []Value{NewMissingValue(), NewMissingValue()}, KindNumeric},
		{"booleans", []Value{NewBooleanValue("True", true), NewBooleanValue("False", false)}, KindBoolean},
		{"timestamps", []Value{NewTimestampValue("2024-01-02", ts)}, KindDatetime},
		{"mixed", []Value{NewNumericValue("1", 1), NewStringValue("x")}, KindCategorical},
		{"numbers and booleans", []Value{NewNumericValue("1", 1), NewBooleanValue("True", true)}, KindCategorical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.values))
		})
	}
}

func TestNew_PadsShortRowsAndRejectsLongOnes(t *testing.T) {
	ds := sample(t)
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 2, ds.Width())

	s, ok := ds.Column("s")
	require.True(t, ok)
	assert.True(t, s.Values[3].IsMissing())
	assert.Equal(t, 2, s.NullCount())

	_, err := New([]string{"a"}, [][]Value{{NewStringValue("x"), NewStringValue("y")}})
	assert.Error(t, err)

	_, err = FromColumns([]*Column{{Name: "a"}, {Name: "a"}})
	assert.Error(t, err)
}

func TestRowKey_NumbersCompareByValue(t *testing.T) {
	ds := sample(t)
	assert.Equal(t, ds.RowKey(0), ds.RowKey(2))
	assert.NotEqual(t, ds.RowKey(0), ds.RowKey(1))
	assert.True(t, ds.HasNull(1))
	assert.False(t, ds.HasNull(0))
}

func TestFilter_KeepsRowOrdinals(t *testing.T) {
	ds := sample(t)

	kept := ds.Filter(func(pos int) bool { return !ds.HasNull(pos) })
	assert.Equal(t, []int{0, 2}, kept.Index())
	assert.Equal(t, 2, kept.RowID(1))

	again := kept.Filter(func(pos int) bool { return pos == 1 })
	assert.Equal(t, []int{2}, again.Index())

	// The source is untouched
	assert.Equal(t, 4, ds.Len())
}

func TestWithColumn_ReturnsCopy(t *testing.T) {
	ds := sample(t)

	replaced, err := ds.WithColumn(&Column{Name: "s", Values: []Value{
		NewStringValue("w"), NewStringValue("x"), NewStringValue("y"), NewStringValue("z"),
	}})
	require.NoError(t, err)

	s, _ := replaced.Column("s")
	assert.Equal(t, "x", s.Values[1].Raw)
	orig, _ := ds.Column("s")
	assert.True(t, orig.Values[1].IsMissing())

	_, err = ds.WithColumn(&Column{Name: "nope", Values: make([]Value, 4)})
	assert.Error(t, err)
	_, err = ds.WithColumn(&Column{Name: "s", Values: make([]Value, 1)})
	assert.Error(t, err)
}

func TestHeadAndRecords(t *testing.T) {
	ds := sample(t)

	head := ds.Head(2)
	assert.Equal(t, []map[string]interface{}{
		{"n": 1.0, "s": "a"},
		{"n": 2.0, "s": nil},
	}, head.Records())

	assert.Equal(t, 4, ds.Head(10).Len())
	assert.Equal(t, 0, ds.Head(-1).Len())
}

func TestColumnFloats(t *testing.T) {
	ds := sample(t)
	n, _ := ds.Column("n")

	data, positions := n.Floats()
	assert.Equal(t, []float64{1, 2, 1, 3}, data)
	assert.Equal(t, []int{0, 1, 2, 3}, positions)

	s, _ := ds.Column("s")
	values, positions := s.NonNull()
	assert.Len(t, values, 2)
	assert.Equal(t, []int{0, 2}, positions)
}

func TestValue_StringAndInterface(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "", NewMissingValue().String())
	assert.Nil(t, NewMissingValue().Interface())
	assert.True(t, NewStringValue("").IsMissing())
	assert.Equal(t, "2.5", NewNumericValue("", 2.5).Raw)
	assert.Equal(t, "2024-01-02T03:04:05Z", NewTimestampValue("", ts).Interface())
	assert.Equal(t, true, NewBooleanValue("TRUE", true).Interface())
	assert.Equal(t, "TRUE", NewBooleanValue("TRUE", true).String())
}
