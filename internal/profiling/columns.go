package profiling

import (
	"math"
	"strings"

	"dataprep/domain/dataset"
)

const sampleValueCount = 3

// DescribeColumns summarises the type and fill of every column for upload previews
func DescribeColumns(ds *dataset.Dataset) ColumnInfos {
	infos := ColumnInfos{
		Names: ds.Names(),
		Info:  make(map[string]ColumnInfo, ds.Width()),
	}

	for _, col := range ds.Columns() {
		values, _ := col.NonNull()
		kind := col.Kind()
		nulls := col.NullCount()

		colType, dtype := describeKind(kind, values, nulls)

		unique := make(map[string]struct{}, len(values))
		for _, v := range values {
			unique[identity(v, kind)] = struct{}{}
		}

		samples := make([]interface{}, 0, sampleValueCount)
		for _, v := range values {
			if len(samples) == sampleValueCount {
				break
			}
			samples = append(samples, v.Interface())
		}

		infos.Info[col.Name] = ColumnInfo{
			Type:         colType,
			Dtype:        dtype,
			NonNullCount: len(values),
			NullCount:    nulls,
			UniqueCount:  len(unique),
			SampleValues: samples,
		}
	}

	return infos
}

// describeKind maps a column kind to the reported type and storage dtype.
// Integers with a null and booleans with a null widen the same way a
// dataframe column would.
func describeKind(kind dataset.Kind, values []dataset.Value, nulls int) (string, string) {
	switch kind {
	case dataset.KindNumeric:
		if nulls == 0 && len(values) > 0 && allIntegral(values) {
			return string(dataset.KindNumeric), "int64"
		}
		return string(dataset.KindNumeric), "float64"
	case dataset.KindBoolean:
		if nulls == 0 {
			return string(dataset.KindBoolean), "bool"
		}
		return string(dataset.KindCategorical), "object"
	case dataset.KindDatetime:
		return string(dataset.KindDatetime), "datetime64[ns]"
	default:
		return string(dataset.KindCategorical), "object"
	}
}

func allIntegral(values []dataset.Value) bool {
	for _, v := range values {
		if v.Num != math.Trunc(v.Num) || math.Abs(v.Num) > 1<<53 || strings.ContainsAny(v.Raw, ".eE") {
			return false
		}
	}
	return true
}
