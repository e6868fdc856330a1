package profiling

import (
	"sort"
	"strings"

	"dataprep/domain/dataset"
)

// TopValueCount is the number of entries kept in a frequency table
const TopValueCount = 10

// labelTimeLayout renders datetime cells in frequency tables
const labelTimeLayout = "2006-01-02 15:04:05"

type frequency struct {
	label string
	value dataset.Value
	count int
}

// summarizeCategorical builds frequency statistics over the non-null cells of
// a column of the given kind
func summarizeCategorical(values []dataset.Value, kind dataset.Kind) *CategoricalSummary {
	summary := &CategoricalSummary{
		Type:        string(dataset.KindCategorical),
		Count:       len(values),
		ValueCounts: ValueCounts{},
	}

	freqs := countFrequencies(values, kind)
	summary.UniqueValues = len(freqs)
	if len(freqs) == 0 {
		return summary
	}

	ranked := make([]*frequency, len(freqs))
	copy(ranked, freqs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})

	top := ranked
	if len(top) > TopValueCount {
		top = top[:TopValueCount]
	}
	for _, f := range top {
		summary.ValueCounts = append(summary.ValueCounts, ValueCount{Value: f.label, Count: f.count})
	}

	mode := ranked[0]
	for _, f := range ranked[1:] {
		if f.count != mode.count {
			break
		}
		if lessValue(f.value, mode.value, kind) {
			mode = f
		}
	}
	summary.MostCommon = modeValue(mode.value, kind)
	summary.ModeFrequency = mode.count
	return summary
}

// countFrequencies groups cells by identity in order of first appearance
func countFrequencies(values []dataset.Value, kind dataset.Kind) []*frequency {
	byKey := make(map[string]*frequency)
	var ordered []*frequency
	for _, v := range values {
		key := identity(v, kind)
		if f, ok := byKey[key]; ok {
			f.count++
			continue
		}
		f := &frequency{label: label(v, kind), value: v, count: 1}
		byKey[key] = f
		ordered = append(ordered, f)
	}
	return ordered
}

// identity compares booleans and datetimes by value and everything else by its text
func identity(v dataset.Value, kind dataset.Kind) string {
	switch kind {
	case dataset.KindBoolean, dataset.KindDatetime:
		return v.Key()
	default:
		return v.Raw
	}
}

func label(v dataset.Value, kind dataset.Kind) string {
	switch kind {
	case dataset.KindBoolean:
		if v.Bool {
			return "True"
		}
		return "False"
	case dataset.KindDatetime:
		return v.Time.Format(labelTimeLayout)
	default:
		return v.Raw
	}
}

func lessValue(a, b dataset.Value, kind dataset.Kind) bool {
	switch kind {
	case dataset.KindBoolean:
		return !a.Bool && b.Bool
	case dataset.KindDatetime:
		return a.Time.Before(b.Time)
	default:
		return strings.Compare(a.Raw, b.Raw) < 0
	}
}

func modeValue(v dataset.Value, kind dataset.Kind) interface{} {
	switch kind {
	case dataset.KindBoolean:
		return v.Bool
	case dataset.KindDatetime:
		return v.Time.Format(labelTimeLayout)
	default:
		return v.Raw
	}
}
