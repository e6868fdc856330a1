package quality

import "dataprep/domain/dataset"

// DuplicateReport summarises repeated rows
type DuplicateReport struct {
	TotalDuplicates     int     `json:"total_duplicates" yaml:"total_duplicates"`
	TotalRows           int     `json:"total_rows" yaml:"total_rows"`
	DuplicatePercentage float64 `json:"duplicate_percentage" yaml:"duplicate_percentage"`
	DuplicateIndices    []int   `json:"duplicate_indices" yaml:"duplicate_indices"`
}

// DetectDuplicates counts rows that repeat an earlier row. The index list
// holds every row of a repeated group, first occurrences included.
func DetectDuplicates(ds *dataset.Dataset) *DuplicateReport {
	report := &DuplicateReport{
		TotalRows:        ds.Len(),
		DuplicateIndices: []int{},
	}

	keys := make([]string, ds.Len())
	groups := make(map[string]int, ds.Len())
	for pos := range keys {
		keys[pos] = ds.RowKey(pos)
		if groups[keys[pos]] > 0 {
			report.TotalDuplicates++
		}
		groups[keys[pos]]++
	}

	for pos, key := range keys {
		if len(report.DuplicateIndices) == MaxReportedIndices {
			break
		}
		if groups[key] > 1 {
			report.DuplicateIndices = append(report.DuplicateIndices, ds.RowID(pos))
		}
	}

	report.DuplicatePercentage = percentage(report.TotalDuplicates, ds.Len())
	return report
}

// FirstOccurrences returns a predicate keeping the first row of every
// duplicate group
func FirstOccurrences(ds *dataset.Dataset) func(pos int) bool {
	seen := make(map[string]struct{}, ds.Len())
	keep := make([]bool, ds.Len())
	for pos := range keep {
		key := ds.RowKey(pos)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			keep[pos] = true
		}
	}
	return func(pos int) bool { return keep[pos] }
}
