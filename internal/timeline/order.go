package timeline

import "slices"

func compareSamples(a, b Sample) int {
	return a.Time.Compare(b.Time)
}

// IsSorted reports whether samples are in non-decreasing time order.
func IsSorted(samples []Sample) bool {
	return slices.IsSortedFunc(samples, compareSamples)
}

// SortSamples returns a copy of samples stably sorted by time. Samples
// sharing a timestamp keep their relative order.
func SortSamples(samples []Sample) []Sample {
	out := slices.Clone(samples)
	slices.SortStableFunc(out, compareSamples)
	return out
}
