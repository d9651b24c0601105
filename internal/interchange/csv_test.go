package interchange

import (
	"bytes"
	"strings"
	"testing"

	"imgtag/internal/domain"
)

func TestEncodeIsDeterministic(t *testing.T) {
	records := []Record{
		{Path: "Ireland/cove.jpg", Tags: domain.NewTagSet("travel", "ireland", "coast")},
		{Path: "b.png", Tags: domain.NewTagSet()},
	}

	var first, second bytes.Buffer
	if err := Encode(&first, records); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := Encode(&second, records); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if first.String() != second.String() {
		t.Error("repeated exports of unchanged state must be byte-identical")
	}
	if !strings.HasPrefix(first.String(), "filepath,tags\n") {
		t.Errorf("missing header: %q", first.String())
	}
	if !strings.Contains(first.String(), `"coast,ireland,travel"`) {
		t.Errorf("tag list should be sorted and quoted: %q", first.String())
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	records := []Record{
		{Path: "a/x.jpg", Tags: domain.NewTagSet("dog", "park")},
		{Path: "y.jpg", Tags: domain.NewTagSet("cat")},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		t.Fatalf("encode: %v", err)
	}

	report, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Status() != StatusValid {
		t.Errorf("status = %v, want VALID", report.Status())
	}
	if len(report.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(report.Records))
	}
	for i, rec := range report.Records {
		if !rec.Tags.Equal(records[i].Tags) {
			t.Errorf("record %d tags = %v, want %v", i, rec.Tags.Sorted(), records[i].Tags.Sorted())
		}
	}
}

func TestDecodeHeaderValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"wrong header", "path,labels\na.jpg,dog\n"},
		{"missing column", "filepath\na.jpg\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("expected a decode error")
			}
		})
	}
}

func TestDecodeMalformedRowsDoNotAbort(t *testing.T) {
	input := "filepath,tags\n" +
		"good.jpg,dog\n" +
		",missing path\n" +
		"also-good.jpg,\"cat,dog\"\n"

	report, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Records) != 2 {
		t.Errorf("got %d surviving records, want 2", len(report.Records))
	}
	if report.Status() != StatusInvalid {
		t.Errorf("status = %v, want INVALID", report.Status())
	}
	if _, errs := report.Counts(); errs != 1 {
		t.Errorf("got %d errors, want 1", errs)
	}
}

func TestResolvePathsUnresolvedIsWarning(t *testing.T) {
	input := "filepath,tags\nexists.jpg,dog\nmissing.jpg,cat\n"
	report, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	resolved := report.ResolvePaths(func(p string) (string, bool) {
		if p == "exists.jpg" {
			return "/root/exists.jpg", true
		}
		return "", false
	})

	if len(resolved) != 1 {
		t.Errorf("got %d resolved records, want 1", len(resolved))
	}
	if report.Status() != StatusValidWithWarnings {
		t.Errorf("status = %v, want VALID_WITH_WARNINGS", report.Status())
	}
}

func TestReadNameList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "plain list",
			input: "a.jpg\n\nb.png\n# comment\n",
			want:  []string{"a.jpg", "b.png"},
		},
		{
			name:  "csv with filename column",
			input: "filename,note\na.jpg,keep\nb.png,\n",
			want:  []string{"a.jpg", "b.png"},
		},
		{
			name:  "single filename header",
			input: "filename\nc.webp\n",
			want:  []string{"c.webp"},
		},
		{
			name:    "csv without filename column",
			input:   "path,note\na.jpg,x\n",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "\n\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadNameList(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
