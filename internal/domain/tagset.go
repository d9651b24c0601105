package domain

import (
	"sort"
	"strings"
)

// TagSet holds the normalized tags of one image. The zero value is an
// empty, usable set. Order is irrelevant; Sorted gives the canonical
// ordering used for output and CSV serialization.
type TagSet struct {
	tags map[string]struct{}
}

// NewTagSet builds a set from the given tags, normalizing each and
// dropping any that normalize to empty.
func NewTagSet(tags ...string) TagSet {
	var s TagSet
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// NormalizeTag trims surrounding whitespace and lowercases a tag.
// Hierarchical chain tags keep their internal slashes; any other
// separator handling happens at tokenization time.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Add inserts a tag after normalization. Empty tags are ignored.
func (s *TagSet) Add(tag string) {
	norm := NormalizeTag(tag)
	if norm == "" {
		return
	}
	if s.tags == nil {
		s.tags = make(map[string]struct{})
	}
	s.tags[norm] = struct{}{}
}

// Remove deletes a tag if present.
func (s *TagSet) Remove(tag string) {
	delete(s.tags, NormalizeTag(tag))
}

// Has reports whether the set contains the tag.
func (s TagSet) Has(tag string) bool {
	_, ok := s.tags[NormalizeTag(tag)]
	return ok
}

// Len returns the number of tags in the set.
func (s TagSet) Len() int {
	return len(s.tags)
}

// IsEmpty reports whether the set has no tags.
func (s TagSet) IsEmpty() bool {
	return len(s.tags) == 0
}

// Sorted returns the tags in lexicographic order. Repeated calls on an
// unchanged set return identical slices, which keeps exports diffable.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s.tags))
	for t := range s.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set containing the tags of both sets.
func (s TagSet) Union(other TagSet) TagSet {
	out := NewTagSet()
	for t := range s.tags {
		out.Add(t)
	}
	for t := range other.tags {
		out.Add(t)
	}
	return out
}

// Difference returns the tags of s that are not in other.
func (s TagSet) Difference(other TagSet) TagSet {
	out := NewTagSet()
	for t := range s.tags {
		if !other.Has(t) {
			out.Add(t)
		}
	}
	return out
}

// Clone returns an independent copy of the set.
func (s TagSet) Clone() TagSet {
	return NewTagSet(s.Sorted()...)
}

// Equal reports whether both sets hold exactly the same tags.
func (s TagSet) Equal(other TagSet) bool {
	if len(s.tags) != len(other.tags) {
		return false
	}
	for t := range s.tags {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// Joined returns the sorted tags joined by commas, the form used in
// the CSV interchange format.
func (s TagSet) Joined() string {
	return strings.Join(s.Sorted(), ",")
}

// SplitTagField parses a comma-joined tag field back into a set,
// skipping blank entries.
func SplitTagField(field string) TagSet {
	s := NewTagSet()
	for _, t := range strings.Split(field, ",") {
		s.Add(t)
	}
	return s
}
