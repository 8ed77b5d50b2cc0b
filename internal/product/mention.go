package product

import (
	"slices"
	"strings"
)

// MentionSet is the set of products found in one utterance.
// The zero value is the empty set.
type MentionSet struct {
	bits uint8
}

// NewMentionSet builds a set from ids, ignoring unknown values and duplicates.
func NewMentionSet(ids ...ID) MentionSet {
	var s MentionSet
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

// With returns a copy of s that also contains id.
func (s MentionSet) With(id ID) MentionSet {
	if i := id.index(); i >= 0 {
		s.bits |= 1 << i
	}
	return s
}

// Has reports whether id is in the set.
func (s MentionSet) Has(id ID) bool {
	i := id.index()
	return i >= 0 && s.bits&(1<<i) != 0
}

// Len returns the number of products in the set.
func (s MentionSet) Len() int {
	n := 0
	for b := s.bits; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// Empty reports whether no product was mentioned.
func (s MentionSet) Empty() bool {
	return s.bits == 0
}

// Equal reports whether s and other hold the same products.
func (s MentionSet) Equal(other MentionSet) bool {
	return s.bits == other.bits
}

// IDs returns the members in detection priority order.
func (s MentionSet) IDs() []ID {
	out := make([]ID, 0, s.Len())
	for i, p := range canonical {
		if s.bits&(1<<i) != 0 {
			out = append(out, p.ID)
		}
	}
	return out
}

// DisplayNames returns the members' display names in detection priority order.
func (s MentionSet) DisplayNames() []string {
	ids := s.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.DisplayName()
	}
	return out
}

// Single returns the only member when the set has exactly one product.
func (s MentionSet) Single() (ID, bool) {
	if s.Len() != 1 {
		return "", false
	}
	return s.IDs()[0], true
}

// Key returns the comparison key of the set.
func (s MentionSet) Key() ComparisonKey {
	ids := s.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	slices.Sort(parts)
	return ComparisonKey(strings.Join(parts, keySeparator))
}

// DetectMentions collects every product whose canonical token occurs in the
// normalized text. Matching is plain substring containment without word
// boundaries, so a token inside a longer word still counts.
func DetectMentions(normalized string) MentionSet {
	var s MentionSet
	for _, p := range canonical {
		if strings.Contains(normalized, string(p.ID)) {
			s = s.With(p.ID)
		}
	}
	return s
}

// FirstMention returns the first product, in detection priority order, whose
// token occurs in the normalized text. Unlike DetectMentions it stops at the
// first hit, so at most one product is reported even when several appear.
func FirstMention(normalized string) (ID, bool) {
	for _, p := range canonical {
		if strings.Contains(normalized, string(p.ID)) {
			return p.ID, true
		}
	}
	return "", false
}
