// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/groundwork/econ-digest/pkg/types"
)

func TestBuiltinIsValid(t *testing.T) {
	if err := Validate(Builtin()); err != nil {
		t.Fatalf("Validate(Builtin()) = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	valid := types.Source{ID: "a", Label: "A", Endpoint: "https://example.org/feed", Parser: types.ParserRSS}

	tests := []struct {
		name    string
		sources []types.Source
		wantErr bool
	}{
		{"valid single source", []types.Source{valid}, false},
		{"empty registry", nil, true},
		{"missing id", []types.Source{{Endpoint: "https://example.org", Parser: types.ParserRSS}}, true},
		{"duplicate id", []types.Source{valid, valid}, true},
		{"relative endpoint", []types.Source{{ID: "b", Endpoint: "/feed", Parser: types.ParserRSS}}, true},
		{"ftp endpoint", []types.Source{{ID: "b", Endpoint: "ftp://example.org/feed", Parser: types.ParserRSS}}, true},
		{"unknown parser", []types.Source{{ID: "b", Endpoint: "https://example.org", Parser: "soap"}}, true},
		{"ssrn parser accepted", []types.Source{{ID: "b", Endpoint: "https://example.org", Parser: types.ParserSSRN}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.sources)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	sources := []types.Source{
		{ID: "first"}, {ID: "second"}, {ID: "third"},
	}
	if got := Position(sources, "second"); got != 1 {
		t.Errorf("Position(second) = %d, want 1", got)
	}
	// Unknown ids sort after all registered sources.
	if got := Position(sources, "missing"); got != 3 {
		t.Errorf("Position(missing) = %d, want 3", got)
	}
}

func TestLookup(t *testing.T) {
	sources := Builtin()
	src, ok := Lookup(sources, "epi")
	if !ok {
		t.Fatal("Lookup(epi) not found")
	}
	if src.Label != "EPI" {
		t.Errorf("Label = %q, want EPI", src.Label)
	}
	if _, ok := Lookup(sources, "nope"); ok {
		t.Error("Lookup(nope) found, want miss")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - id: econ-letters
    label: Economics Letters
    endpoint: https://example.org/feed.xml
  - id: ssrn
    endpoint: https://papers.example.org/browse
    parser: ssrn
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("len(sources) = %d, want 2", len(sources))
	}
	// Parser kind defaults to rss, label defaults to id.
	if sources[0].Parser != types.ParserRSS {
		t.Errorf("sources[0].Parser = %q, want rss", sources[0].Parser)
	}
	if sources[1].Label != "ssrn" {
		t.Errorf("sources[1].Label = %q, want ssrn", sources[1].Label)
	}
	if sources[1].Parser != types.ParserSSRN {
		t.Errorf("sources[1].Parser = %q, want ssrn", sources[1].Parser)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"empty sources", "sources: []\n"},
		{"bad yaml", "sources: [\n"},
		{"invalid endpoint", "sources:\n  - id: a\n    endpoint: not-a-url\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("LoadFile() = nil error, want error")
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile(missing) = nil error, want error")
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	in := []types.Source{
		{ID: "a", Label: "A", Endpoint: "https://example.org/a", Parser: types.ParserRSS, FocusTags: []string{"labor"}},
		{ID: "b", Label: "B", Endpoint: "https://example.org/b", Parser: types.ParserSSRN},
	}
	if err := WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	out, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "b" {
		t.Errorf("round-trip order lost: %+v", out)
	}
	if len(out[0].FocusTags) != 1 || out[0].FocusTags[0] != "labor" {
		t.Errorf("round-trip tags lost: %+v", out[0].FocusTags)
	}
}
