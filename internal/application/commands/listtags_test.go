package commands

import (
	"context"
	"testing"

	"imgtag/internal/domain"
)

func TestParseTagSort(t *testing.T) {
	tests := []struct {
		input   string
		want    TagSort
		wantErr bool
	}{
		{input: "", want: TagSortAlpha},
		{input: "alpha", want: TagSortAlpha},
		{input: "count", want: TagSortCount},
		{input: "size", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTagSort(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestListTagsCommand_Execute(t *testing.T) {
	index := newFakeIndex()
	index.counts = []domain.TagCount{
		{Tag: "coast", Count: 2},
		{Tag: "dog", Count: 5},
		{Tag: "ireland", Count: 2},
	}

	cmd := NewListTagsCommand(index, "/photos")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !index.synced {
		t.Error("index must be synced before querying")
	}
	if index.opened != "/photos" {
		t.Errorf("index opened with wrong root: %q", index.opened)
	}
	if result.Total != 3 {
		t.Errorf("expected 3 distinct tags, got %d", result.Total)
	}
	if result.Counts[0].Tag != "coast" {
		t.Errorf("alpha order expected by default, got %v", result.Counts)
	}
}

func TestListTagsCommand_Execute_CountOrder(t *testing.T) {
	index := newFakeIndex()
	index.counts = []domain.TagCount{
		{Tag: "coast", Count: 2},
		{Tag: "dog", Count: 5},
		{Tag: "ireland", Count: 2},
	}

	cmd := NewListTagsCommand(index, "/photos")
	cmd.Sort = TagSortCount
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"dog", "coast", "ireland"} // count desc, ties alpha
	for i, tc := range result.Counts {
		if tc.Tag != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], tc.Tag)
		}
	}
}

func TestSearchCommand_Execute(t *testing.T) {
	index := newFakeIndex()
	index.byTag["dog"] = []string{"a/dog.jpg", "b/pup.jpg"}

	cmd := NewSearchCommand(index, "/photos", "dog")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !index.synced {
		t.Error("index must be synced before querying")
	}
	if len(result.Paths) != 2 {
		t.Errorf("expected 2 matches, got %v", result.Paths)
	}
}

func TestSearchCommand_Validate(t *testing.T) {
	cmd := NewSearchCommand(newFakeIndex(), "/photos", "   ")
	if err := cmd.Validate(); err == nil {
		t.Error("blank tag should fail validation")
	}
}
