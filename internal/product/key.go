package product

import (
	"slices"
	"strings"
)

const keySeparator = "-"

// ComparisonKey identifies a multi-product comparison: member identifiers
// sorted lexicographically and joined with "-".
type ComparisonKey string

// Comparison keys for every subset of two or more products.
const (
	KeyDesaliteEdnect         ComparisonKey = "desalite-ednect"
	KeyEdnectTransTrack       ComparisonKey = "ednect-transtrack"
	KeyDesaliteTransTrack     ComparisonKey = "desalite-transtrack"
	KeyEdnectIceBox           ComparisonKey = "ednect-icebox"
	KeyDesaliteIceBox         ComparisonKey = "desalite-icebox"
	KeyIceBoxTransTrack       ComparisonKey = "icebox-transtrack"
	KeyDesaliteEdnectTrans    ComparisonKey = "desalite-ednect-transtrack"
	KeyEdnectIceBoxTransTrack ComparisonKey = "ednect-icebox-transtrack"
	KeyDesaliteEdnectIceBox   ComparisonKey = "desalite-ednect-icebox"
	KeyDesaliteIceBoxTrans    ComparisonKey = "desalite-icebox-transtrack"
	KeyAllProducts            ComparisonKey = "desalite-ednect-icebox-transtrack"
)

// ComparisonKeys returns every supported multi-product key: all pairs, all
// triples and the full set.
func ComparisonKeys() []ComparisonKey {
	return []ComparisonKey{
		KeyDesaliteEdnect,
		KeyEdnectTransTrack,
		KeyDesaliteTransTrack,
		KeyEdnectIceBox,
		KeyDesaliteIceBox,
		KeyIceBoxTransTrack,
		KeyDesaliteEdnectTrans,
		KeyEdnectIceBoxTransTrack,
		KeyDesaliteEdnectIceBox,
		KeyDesaliteIceBoxTrans,
		KeyAllProducts,
	}
}

// ParseComparisonKey splits a key back into a mention set. It fails when any
// part is unknown, repeated, or the parts are not in sorted order.
func ParseComparisonKey(key string) (MentionSet, bool) {
	parts := strings.Split(key, keySeparator)
	if len(parts) < 2 || !slices.IsSorted(parts) {
		return MentionSet{}, false
	}
	var s MentionSet
	for _, part := range parts {
		id := ID(part)
		if !id.Valid() || s.Has(id) {
			return MentionSet{}, false
		}
		s = s.With(id)
	}
	return s, true
}

func (k ComparisonKey) String() string {
	return string(k)
}
