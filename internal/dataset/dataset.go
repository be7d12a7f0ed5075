package dataset

import (
	"slices"

	"indicadores/pkg/contracts/domain"
)

// Dataset is an ordered, immutable sequence of normalized records.
type Dataset struct {
	records  []domain.Record
	failures []CoercionFailure
}

// New builds a Dataset from already-normalized records. The slice is copied.
func New(records []domain.Record) *Dataset {
	return &Dataset{records: slices.Clone(records)}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of the records in file order.
func (d *Dataset) Records() []domain.Record {
	if d == nil {
		return nil
	}
	return slices.Clone(d.records)
}

// All iterates the records in order without copying the backing slice.
func (d *Dataset) All(yield func(int, domain.Record) bool) {
	if d == nil {
		return
	}
	for i, r := range d.records {
		if !yield(i, r) {
			return
		}
	}
}

// CoercionFailures returns how many non-empty numeric cells became missing.
func (d *Dataset) CoercionFailures() int {
	if d == nil {
		return 0
	}
	return len(d.failures)
}

// Failures returns the individual coercion failures.
func (d *Dataset) Failures() []CoercionFailure {
	if d == nil {
		return nil
	}
	return slices.Clone(d.failures)
}

// Filter keeps the records whose developer is in selected, preserving order.
// An empty selection returns the dataset unchanged. Records with a missing
// developer never match a non-empty selection.
func (d *Dataset) Filter(selected []string) *Dataset {
	if len(selected) == 0 || d == nil {
		return d
	}

	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		set[s] = struct{}{}
	}

	out := &Dataset{failures: d.failures}
	for _, r := range d.records {
		if !r.HasDeveloper() {
			continue
		}
		if _, ok := set[r.Developer]; ok {
			out.records = append(out.records, r)
		}
	}
	return out
}

// Developers returns the distinct non-missing developers in ascending order.
func (d *Dataset) Developers() []string {
	if d == nil {
		return []string{}
	}

	seen := make(map[string]struct{})
	devs := []string{}
	for _, r := range d.records {
		if !r.HasDeveloper() {
			continue
		}
		if _, ok := seen[r.Developer]; ok {
			continue
		}
		seen[r.Developer] = struct{}{}
		devs = append(devs, r.Developer)
	}
	slices.Sort(devs)
	return devs
}
