package domain

import (
	"reflect"
	"testing"
)

func TestTagSetNormalization(t *testing.T) {
	s := NewTagSet("  Dog ", "PARK", "dog", "", "   ")

	want := []string{"dog", "park"}
	if got := s.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
	if !s.Has("DOG") {
		t.Error("Has should match case-insensitively via normalization")
	}
}

func TestTagSetSortedIsDeterministic(t *testing.T) {
	s := NewTagSet("c", "a", "b")
	first := s.Joined()
	for i := 0; i < 5; i++ {
		if got := s.Joined(); got != first {
			t.Fatalf("Joined() unstable: %q vs %q", got, first)
		}
	}
	if first != "a,b,c" {
		t.Errorf("Joined() = %q, want %q", first, "a,b,c")
	}
}

func TestTagSetSetOps(t *testing.T) {
	a := NewTagSet("x", "y")
	b := NewTagSet("y", "z")

	if got := a.Union(b).Sorted(); !reflect.DeepEqual(got, []string{"x", "y", "z"}) {
		t.Errorf("Union = %v", got)
	}
	if got := a.Difference(b).Sorted(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("Difference = %v", got)
	}

	c := a.Clone()
	c.Add("w")
	if a.Has("w") {
		t.Error("Clone must not share storage with the original")
	}
}

func TestSplitTagFieldRoundTrip(t *testing.T) {
	s := NewTagSet("ireland", "travel/ireland", "20230317")
	back := SplitTagField(s.Joined())
	if !back.Equal(s) {
		t.Errorf("round trip lost tags: %v vs %v", back.Sorted(), s.Sorted())
	}

	if got := SplitTagField("a, ,b,,c").Sorted(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("SplitTagField = %v", got)
	}
}
