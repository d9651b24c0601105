package commands

import (
	"context"
	"strings"
	"testing"

	"imgtag/internal/domain"
)

func TestCollectCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		dest    string
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid",
			root: "/photos",
			dest: "/out",
		},
		{
			name:    "empty root",
			root:    "",
			dest:    "/out",
			wantErr: true,
			errMsg:  "root directory is required",
		},
		{
			name:    "empty dest",
			root:    "/photos",
			dest:    " ",
			wantErr: true,
			errMsg:  "destination directory is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CollectCommand{Root: tt.root, Dest: tt.dest}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCollectCommand_Execute(t *testing.T) {
	scanner := &fakeScanner{assets: []*domain.ImageAsset{
		asset("/photos", "Ireland/cove.jpg"),
		asset("/photos", "Wales/cove.jpg"),
		asset("/photos", "dog.jpg"),
	}}

	tests := []struct {
		name       string
		list       string
		policy     domain.DuplicatePolicy
		wantCopies int
		wantMiss   int
		wantAmbig  int
	}{
		{
			name:       "unique name copies once",
			list:       "dog.jpg\n",
			policy:     domain.DuplicateFirst,
			wantCopies: 1,
		},
		{
			name:       "first policy picks one of the duplicates",
			list:       "cove.jpg\n",
			policy:     domain.DuplicateFirst,
			wantCopies: 1,
		},
		{
			name:       "all policy stages every duplicate",
			list:       "cove.jpg\n",
			policy:     domain.DuplicateAll,
			wantCopies: 2,
		},
		{
			name:      "skip policy records the group",
			list:      "cove.jpg\n",
			policy:    domain.DuplicateSkip,
			wantAmbig: 1,
		},
		{
			name:       "missing name is a warning not a drop",
			list:       "dog.jpg\nnope.jpg\n",
			policy:     domain.DuplicateFirst,
			wantCopies: 1,
			wantMiss:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newFakeFiles()
			cmd := NewCollectCommand(scanner, files, "/photos", "/out", strings.NewReader(tt.list))
			cmd.Duplicates = tt.policy

			result, err := cmd.Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(files.copied) != tt.wantCopies {
				t.Errorf("expected %d copies, got %v", tt.wantCopies, files.copied)
			}
			if len(result.Plan.Missing) != tt.wantMiss {
				t.Errorf("expected %d missing, got %v", tt.wantMiss, result.Plan.Missing)
			}
			if len(result.Plan.Ambiguous) != tt.wantAmbig {
				t.Errorf("expected %d ambiguous, got %v", tt.wantAmbig, result.Plan.Ambiguous)
			}
		})
	}
}

func TestCollectCommand_Execute_DuplicateDestinationsSuffixed(t *testing.T) {
	scanner := &fakeScanner{assets: []*domain.ImageAsset{
		asset("/photos", "Ireland/cove.jpg"),
		asset("/photos", "Wales/cove.jpg"),
	}}
	files := newFakeFiles()

	cmd := NewCollectCommand(scanner, files, "/photos", "/out", strings.NewReader("cove.jpg\n"))
	cmd.Duplicates = domain.DuplicateAll

	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := files.copied["/out/cove.jpg"]; !ok {
		t.Errorf("first duplicate should keep its name, got %v", files.copied)
	}
	if _, ok := files.copied["/out/cove_1.jpg"]; !ok {
		t.Errorf("second duplicate should be suffixed, got %v", files.copied)
	}
}

func TestCollectCommand_Execute_LinkAndDryRun(t *testing.T) {
	scanner := &fakeScanner{assets: []*domain.ImageAsset{
		asset("/photos", "dog.jpg"),
	}}

	t.Run("link", func(t *testing.T) {
		files := newFakeFiles()
		cmd := NewCollectCommand(scanner, files, "/photos", "/out", strings.NewReader("dog.jpg\n"))
		cmd.Link = true

		if _, err := cmd.Execute(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files.linked) != 1 || len(files.copied) != 0 {
			t.Errorf("expected 1 link and 0 copies, got %v / %v", files.linked, files.copied)
		}
	})

	t.Run("dry run", func(t *testing.T) {
		files := newFakeFiles()
		cmd := NewCollectCommand(scanner, files, "/photos", "/out", strings.NewReader("dog.jpg\n"))
		cmd.DryRun = true

		result, err := cmd.Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files.copied) != 0 || len(files.linked) != 0 {
			t.Error("dry run must not touch the filesystem")
		}
		if !contains(result.Message, "Would collect") {
			t.Errorf("expected dry-run message, got %q", result.Message)
		}
	})
}
