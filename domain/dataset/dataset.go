package dataset

import (
	"fmt"
	"strings"
)

// Kind is the semantic type of a column. It is derived from the values and
// never stored.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindBoolean     Kind = "boolean"
	KindDatetime    Kind = "datetime"
)

// KindOf classifies a sequence of cells. A column without any non-null cell
// is numeric, the same way an empty spreadsheet column reads as floats.
func KindOf(values []Value) Kind {
	var numeric, boolean, timestamp, present int
	for _, v := range values {
		switch v.Type {
		case ValueTypeMissing:
			continue
		case ValueTypeNumeric:
			numeric++
		case ValueTypeBoolean:
			boolean++
		case ValueTypeTimestamp:
			timestamp++
		}
		present++
	}

	switch {
	case numeric == present:
		return KindNumeric
	case boolean == present:
		return KindBoolean
	case timestamp == present:
		return KindDatetime
	default:
		return KindCategorical
	}
}

// Column is a named sequence of cells
type Column struct {
	Name   string
	Values []Value
}

// Kind returns the derived semantic type of the column
func (c *Column) Kind() Kind {
	return KindOf(c.Values)
}

// NullCount returns the number of null cells
func (c *Column) NullCount() int {
	count := 0
	for _, v := range c.Values {
		if v.IsMissing() {
			count++
		}
	}
	return count
}

// NonNull returns the non-null cells together with their row positions
func (c *Column) NonNull() ([]Value, []int) {
	values := make([]Value, 0, len(c.Values))
	positions := make([]int, 0, len(c.Values))
	for i, v := range c.Values {
		if !v.IsMissing() {
			values = append(values, v)
			positions = append(positions, i)
		}
	}
	return values, positions
}

// Floats returns the non-null numeric cells together with their row positions
func (c *Column) Floats() ([]float64, []int) {
	data := make([]float64, 0, len(c.Values))
	positions := make([]int, 0, len(c.Values))
	for i, v := range c.Values {
		if v.IsNumeric() {
			data = append(data, v.Num)
			positions = append(positions, i)
		}
	}
	return data, positions
}

func (c *Column) clone() *Column {
	values := make([]Value, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Values: values}
}

// Dataset is an in-memory table. Every column has the same length and each
// row carries the ordinal it had when the table was loaded.
//
// Datasets are treated as immutable: Filter, WithColumn and Clone return new
// tables and never touch the receiver.
type Dataset struct {
	columns []*Column
	index   []int
	lookup  map[string]int
}

// New builds a dataset from column names and rows of cells. Rows shorter than
// the header are padded with nulls.
func New(names []string, rows [][]Value) (*Dataset, error) {
	columns := make([]*Column, len(names))
	for j, name := range names {
		columns[j] = &Column{Name: name, Values: make([]Value, len(rows))}
	}

	for i, row := range rows {
		if len(row) > len(names) {
			return nil, fmt.Errorf("row %d has %d cells but the header has %d", i, len(row), len(names))
		}
		for j := range names {
			if j < len(row) {
				columns[j].Values[i] = row[j]
			} else {
				columns[j].Values[i] = NewMissingValue()
			}
		}
	}

	return FromColumns(columns)
}

// FromColumns builds a dataset from prepared columns of equal length
func FromColumns(columns []*Column) (*Dataset, error) {
	length := 0
	if len(columns) > 0 {
		length = len(columns[0].Values)
	}

	lookup := make(map[string]int, len(columns))
	for j, col := range columns {
		if len(col.Values) != length {
			return nil, fmt.Errorf("column '%s' has %d rows, expected %d", col.Name, len(col.Values), length)
		}
		if _, dup := lookup[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name '%s'", col.Name)
		}
		lookup[col.Name] = j
	}

	index := make([]int, length)
	for i := range index {
		index[i] = i
	}

	return &Dataset{columns: columns, index: index, lookup: lookup}, nil
}

// Len returns the row count
func (d *Dataset) Len() int {
	return len(d.index)
}

// Width returns the column count
func (d *Dataset) Width() int {
	return len(d.columns)
}

// Names returns the column names in order
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for j, col := range d.columns {
		names[j] = col.Name
	}
	return names
}

// Columns returns the columns in order. Callers must not modify them.
func (d *Dataset) Columns() []*Column {
	return d.columns
}

// Column looks up a column by name
func (d *Dataset) Column(name string) (*Column, bool) {
	j, ok := d.lookup[name]
	if !ok {
		return nil, false
	}
	return d.columns[j], true
}

// HasColumn reports whether the dataset has a column with the given name
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.lookup[name]
	return ok
}

// Index returns the original row ordinals of the current rows
func (d *Dataset) Index() []int {
	index := make([]int, len(d.index))
	copy(index, d.index)
	return index
}

// RowID returns the original ordinal of the row at position pos
func (d *Dataset) RowID(pos int) int {
	return d.index[pos]
}

// Row returns the cells of the row at position pos
func (d *Dataset) Row(pos int) []Value {
	row := make([]Value, len(d.columns))
	for j, col := range d.columns {
		row[j] = col.Values[pos]
	}
	return row
}

// RowKey returns the identity of a full row, used for duplicate detection
func (d *Dataset) RowKey(pos int) string {
	var b strings.Builder
	for j, col := range d.columns {
		if j > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(col.Values[pos].Key())
	}
	return b.String()
}

// HasNull reports whether the row at position pos has a null in any column
func (d *Dataset) HasNull(pos int) bool {
	for _, col := range d.columns {
		if col.Values[pos].IsMissing() {
			return true
		}
	}
	return false
}

// Filter returns a new dataset with the rows for which keep returns true.
// Row ordinals of the kept rows are preserved.
func (d *Dataset) Filter(keep func(pos int) bool) *Dataset {
	positions := make([]int, 0, len(d.index))
	for pos := range d.index {
		if keep(pos) {
			positions = append(positions, pos)
		}
	}
	return d.take(positions)
}

// Head returns the first n rows
func (d *Dataset) Head(n int) *Dataset {
	if n > d.Len() {
		n = d.Len()
	}
	if n < 0 {
		n = 0
	}
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	return d.take(positions)
}

func (d *Dataset) take(positions []int) *Dataset {
	columns := make([]*Column, len(d.columns))
	for j, col := range d.columns {
		values := make([]Value, len(positions))
		for i, pos := range positions {
			values[i] = col.Values[pos]
		}
		columns[j] = &Column{Name: col.Name, Values: values}
	}

	index := make([]int, len(positions))
	for i, pos := range positions {
		index[i] = d.index[pos]
	}

	return &Dataset{columns: columns, index: index, lookup: d.copyLookup()}
}

// WithColumn returns a new dataset where the column of the same name is
// replaced by col
func (d *Dataset) WithColumn(col *Column) (*Dataset, error) {
	j, ok := d.lookup[col.Name]
	if !ok {
		return nil, fmt.Errorf("column '%s' not found", col.Name)
	}
	if len(col.Values) != d.Len() {
		return nil, fmt.Errorf("column '%s' has %d rows, expected %d", col.Name, len(col.Values), d.Len())
	}

	out := d.Clone()
	out.columns[j] = col.clone()
	return out, nil
}

// Clone returns a deep copy of the dataset
func (d *Dataset) Clone() *Dataset {
	columns := make([]*Column, len(d.columns))
	for j, col := range d.columns {
		columns[j] = col.clone()
	}
	return &Dataset{columns: columns, index: d.Index(), lookup: d.copyLookup()}
}

func (d *Dataset) copyLookup() map[string]int {
	lookup := make(map[string]int, len(d.lookup))
	for k, v := range d.lookup {
		lookup[k] = v
	}
	return lookup
}

// Records returns the rows as maps from column name to JSON-friendly cell value
func (d *Dataset) Records() []map[string]interface{} {
	records := make([]map[string]interface{}, d.Len())
	for pos := range records {
		record := make(map[string]interface{}, len(d.columns))
		for _, col := range d.columns {
			record[col.Name] = col.Values[pos].Interface()
		}
		records[pos] = record
	}
	return records
}
