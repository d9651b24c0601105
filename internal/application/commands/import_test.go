package commands

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"imgtag/internal/application"
	"imgtag/internal/domain"
	"imgtag/internal/interchange"
)

func TestExportImport_RoundTrip(t *testing.T) {
	// A backup restored with overwrite must reproduce the exported
	// state exactly, even onto files that drifted in between.
	source := newFakeStore()
	source.tags["/photos/a.jpg"] = domain.NewTagSet("ireland", "coast")
	source.tags["/photos/b.jpg"] = domain.NewTagSet("dog")
	scanner := &fakeScanner{assets: []*domain.ImageAsset{
		asset("/photos", "a.jpg"),
		asset("/photos", "b.jpg"),
	}}

	var backup bytes.Buffer
	export := NewExportCommand(scanner, source, "/photos", &backup)
	if _, err := export.Execute(context.Background()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	target := newFakeStore()
	target.tags["/photos/a.jpg"] = domain.NewTagSet("drifted")

	imp := NewImportCommand(target, "/photos", &backup)
	imp.Policy = domain.PolicyOverwrite
	imp.Exists = func(string) bool { return true }

	result, err := imp.Execute(context.Background())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Summary.HasErrors() {
		t.Fatalf("unexpected row errors: %v", result.Summary.Items())
	}

	for path, want := range source.tags {
		got := target.tags[path]
		if !got.Equal(want) {
			t.Errorf("%s: expected %v after restore, got %v", path, want.Sorted(), got)
		}
	}
}

func TestExportCommand_DeterministicOutput(t *testing.T) {
	store := newFakeStore()
	store.tags["/photos/a.jpg"] = domain.NewTagSet("zebra", "ant")
	scanner := &fakeScanner{assets: []*domain.ImageAsset{
		asset("/photos", "a.jpg"),
	}}

	var first, second bytes.Buffer
	if _, err := NewExportCommand(scanner, store, "/photos", &first).Execute(context.Background()); err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	if _, err := NewExportCommand(scanner, store, "/photos", &second).Execute(context.Background()); err != nil {
		t.Fatalf("second export failed: %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("exports of unchanged state differ:\n%s\n%s", first.String(), second.String())
	}
	if !contains(first.String(), "ant,zebra") {
		t.Errorf("tag list should be sorted, got %q", first.String())
	}
}

func TestExportCommand_UnreadableFileSurfacesInSummary(t *testing.T) {
	store := newFakeStore()
	store.tags["/photos/good.jpg"] = domain.NewTagSet("dog")
	store.readErr["/photos/bad.jpg"] = errors.New("corrupt")
	scanner := &fakeScanner{assets: []*domain.ImageAsset{
		asset("/photos", "bad.jpg"),
		asset("/photos", "good.jpg"),
	}}

	var out bytes.Buffer
	result, err := NewExportCommand(scanner, store, "/photos", &out).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ImagesExported != 1 {
		t.Errorf("expected 1 exported image, got %d", result.ImagesExported)
	}
	_, _, _, errs := result.Summary.Counts()
	if errs != 1 {
		t.Errorf("unreadable file must be recorded, got %v", result.Summary.Items())
	}
	if !contains(result.Message, "1 unreadable") {
		t.Errorf("message should count unreadable files, got %q", result.Message)
	}
	if contains(out.String(), "bad.jpg") {
		t.Errorf("unreadable file must not produce a CSV row, got %q", out.String())
	}
}

func TestImportCommand_InvalidFileBlocksUnlessForced(t *testing.T) {
	// Row two has the wrong shape, which makes the whole file INVALID.
	csv := "filepath,tags\na.jpg,ireland\nb.jpg,dog,extra-field\n"

	imp := NewImportCommand(newFakeStore(), "/photos", strings.NewReader(csv))
	imp.Exists = func(string) bool { return true }

	_, err := imp.Execute(context.Background())
	if !errors.Is(err, application.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	target := newFakeStore()
	forced := NewImportCommand(target, "/photos", strings.NewReader(csv))
	forced.Exists = func(string) bool { return true }
	forced.Force = true

	result, err := forced.Execute(context.Background())
	if err != nil {
		t.Fatalf("forced import should proceed: %v", err)
	}
	if got := target.tags["/photos/a.jpg"]; !got.Has("ireland") {
		t.Errorf("valid rows should still import under --force, got %v", got)
	}
	if result.Report.Status() != interchange.StatusInvalid {
		t.Errorf("report should stay INVALID, got %v", result.Report.Status())
	}
}

func TestImportCommand_UnresolvedRowsAreSkippedAsWarnings(t *testing.T) {
	csv := "filepath,tags\na.jpg,ireland\ngone.jpg,dog\n"

	target := newFakeStore()
	imp := NewImportCommand(target, "/photos", strings.NewReader(csv))
	imp.Exists = func(path string) bool { return strings.HasSuffix(path, "a.jpg") }

	result, err := imp.Execute(context.Background())
	if err != nil {
		t.Fatalf("unresolved paths must not fail the import: %v", err)
	}

	ok, _, warnings, errs := result.Summary.Counts()
	if ok != 1 || warnings != 1 || errs != 0 {
		t.Errorf("expected 1 ok / 1 warning / 0 errors, got %d/%d/%d", ok, warnings, errs)
	}
	if result.Report.Status() != interchange.StatusValidWithWarnings {
		t.Errorf("expected VALID_WITH_WARNINGS, got %v", result.Report.Status())
	}
	if _, written := target.tags["/photos/gone.jpg"]; written {
		t.Error("unresolved row must not be written")
	}
}

func TestImportCommand_DryRunWritesNothing(t *testing.T) {
	csv := "filepath,tags\na.jpg,ireland\n"

	target := newFakeStore()
	imp := NewImportCommand(target, "/photos", strings.NewReader(csv))
	imp.Exists = func(string) bool { return true }
	imp.DryRun = true

	result, err := imp.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.writes != 0 {
		t.Errorf("dry run must not write, got %d writes", target.writes)
	}
	if !contains(result.Message, "Would import") {
		t.Errorf("expected dry-run message, got %q", result.Message)
	}
}

func TestImportCommand_AddOnlySkipsTaggedFiles(t *testing.T) {
	csv := "filepath,tags\na.jpg,new\nb.jpg,new\n"

	target := newFakeStore()
	target.tags["/photos/a.jpg"] = domain.NewTagSet("existing")

	imp := NewImportCommand(target, "/photos", strings.NewReader(csv))
	imp.Policy = domain.PolicyAddOnly
	imp.Exists = func(string) bool { return true }

	if _, err := imp.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := target.tags["/photos/a.jpg"]; !got.Equal(domain.NewTagSet("existing")) {
		t.Errorf("add-only must not touch already tagged files, got %v", got.Sorted())
	}
	if got := target.tags["/photos/b.jpg"]; !got.Has("new") {
		t.Errorf("add-only should tag the untagged file, got %v", got)
	}
}

func TestValidateCSVCommand_ReportsRelativeResolution(t *testing.T) {
	csv := "filepath,tags\nIreland/cove.jpg,ireland\n/abs/shot.jpg,studio\n"

	cmd := NewValidateCSVCommand("/photos", strings.NewReader(csv))
	cmd.Exists = func(path string) bool {
		return path == "/photos/Ireland/cove.jpg" || path == "/abs/shot.jpg"
	}

	report, resolved, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status() != interchange.StatusValid {
		t.Errorf("expected VALID, got %v", report.Status())
	}
	if resolved[0] != "/photos/Ireland/cove.jpg" {
		t.Errorf("relative path not joined to root: %q", resolved[0])
	}
	if resolved[1] != "/abs/shot.jpg" {
		t.Errorf("absolute path should pass through: %q", resolved[1])
	}
}
