package listing

import "sort"

// SortKey selects the ordering applied to a property list.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortAreaDesc  SortKey = "area_desc"
)

// ParseSortKey maps a raw value to a sort key, falling back to default for
// anything unrecognized.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortPriceAsc, SortPriceDesc, SortAreaDesc:
		return SortKey(raw)
	default:
		return SortDefault
	}
}

// Order returns a new slice ordered by the given key. The input is never
// mutated, the sort is stable, and SortDefault preserves input order. A
// missing built area sorts as 0 under SortAreaDesc.
func Order(props []*Property, key SortKey) []*Property {
	out := make([]*Property, len(props))
	copy(out, props)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortAreaDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Area() > out[j].Area() })
	}

	return out
}
