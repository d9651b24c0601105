package domain

import (
	"reflect"
	"testing"
)

func TestTokenizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		opts TokenizeOptions
		want []string
	}{
		{
			name: "hierarchical chain",
			path: "a/b/c/photo.jpg",
			want: []string{"a", "b", "c", "a/b", "a/b/c"},
		},
		{
			name: "single folder",
			path: "Ireland/photo.jpg",
			want: []string{"ireland"},
		},
		{
			name: "root level image without filename tagging",
			path: "photo.jpg",
			want: nil,
		},
		{
			name: "root level image with filename tagging",
			path: "sunset-beach.jpg",
			opts: TokenizeOptions{FromFilename: true},
			want: []string{"sunset", "beach"},
		},
		{
			name: "max depth truncates segments and chain",
			path: "a/b/c/photo.jpg",
			opts: TokenizeOptions{MaxDepth: 2},
			want: []string{"a", "b", "a/b"},
		},
		{
			name: "segments are lowercased",
			path: "Travel/Ireland/photo.jpg",
			want: []string{"travel", "ireland", "travel/ireland"},
		},
		{
			name: "blank segments skipped",
			path: "a//  /b/photo.jpg",
			want: []string{"a", "b", "a/b"},
		},
		{
			name: "short filename tokens dropped",
			path: "x/IMG_01_dog.jpg",
			opts: TokenizeOptions{FromFilename: true},
			want: []string{"x", "img", "dog"},
		},
		{
			name: "ballyvooney cove scenario",
			path: "Ireland/20230317-BallyvooneyCove_ROW5905528136_UHD.jpg",
			opts: TokenizeOptions{FromFilename: true},
			want: []string{"ireland", "20230317", "ballyvooneycove", "row5905528136", "uhd"},
		},
		{
			name: "duplicate segment and filename token collapse",
			path: "dog/dog-park.jpg",
			opts: TokenizeOptions{FromFilename: true},
			want: []string{"dog", "park"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizePath(tt.path, tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenizePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestTokenizePathIdempotent(t *testing.T) {
	paths := []string{
		"a/b/c/photo.jpg",
		"Ireland/20230317-BallyvooneyCove_ROW5905528136_UHD.jpg",
		"photo.jpg",
	}
	opts := TokenizeOptions{FromFilename: true, MaxDepth: 3}

	for _, p := range paths {
		first := TokenizePath(p, opts)
		second := TokenizePath(p, opts)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("TokenizePath(%q) not idempotent: %v vs %v", p, first, second)
		}
	}
}

func TestTokenizePathChainProperty(t *testing.T) {
	got := TokenizePath("a/b/c/photo.jpg", TokenizeOptions{})

	chains := map[string]bool{}
	for _, tag := range got {
		if len(tag) > 1 || tag == "a" {
			chains[tag] = true
		}
	}

	for _, want := range []string{"a", "a/b", "a/b/c"} {
		if !chains[want] {
			t.Errorf("expected chain tag %q in %v", want, got)
		}
	}
	for _, forbidden := range []string{"b/c", "a/c", "c/b"} {
		if chains[forbidden] {
			t.Errorf("unexpected chain combination %q in %v", forbidden, got)
		}
	}
}
