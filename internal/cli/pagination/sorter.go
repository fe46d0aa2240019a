package pagination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/metalca/internal/engine"
)

// Sort fields understood by BatchItemSorter.
const (
	FieldName         = "name"
	FieldMaterial     = "material"
	FieldScore        = "score"
	FieldCO2e         = "co2e"
	FieldCO2Reduction = "co2_reduction"
)

// BatchItemSorter orders batch results. Failed items always sort last,
// whatever the order.
type BatchItemSorter struct {
	validFields map[string]bool
}

// NewBatchItemSorter creates a BatchItemSorter.
func NewBatchItemSorter() *BatchItemSorter {
	return &BatchItemSorter{
		validFields: map[string]bool{
			FieldName:         true,
			FieldMaterial:     true,
			FieldScore:        true,
			FieldCO2e:         true,
			FieldCO2Reduction: true,
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *BatchItemSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *BatchItemSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a sorted copy of items. An unknown field is an error; an
// empty field returns items unchanged.
func (s *BatchItemSorter) Sort(items []engine.BatchItem, field, order string) ([]engine.BatchItem, error) {
	if field == "" {
		return items, nil
	}
	if !s.IsValidField(field) {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
	}

	sorted := make([]engine.BatchItem, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Assessment, sorted[j].Assessment
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		if order == SortOrderDesc {
			a, b = b, a
		}
		switch field {
		case FieldName:
			return a.Name < b.Name
		case FieldMaterial:
			return a.Report.MaterialKey < b.Report.MaterialKey
		case FieldScore:
			return a.Report.CircularityScore < b.Report.CircularityScore
		case FieldCO2e:
			return a.Report.Primary.CO2e < b.Report.Primary.CO2e
		case FieldCO2Reduction:
			return a.Report.Reductions.CO2 < b.Report.Reductions.CO2
		default:
			return false
		}
	})
	return sorted, nil
}
