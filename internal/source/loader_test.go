package source_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-shaker/internal/source"
)

func TestLoadEntryInlineDescription(t *testing.T) {
	fsys := fstest.MapFS{
		"1/metadata.json": &fstest.MapFile{Data: []byte(`{
			"number": "1",
			"difficulty": 2,
			"data": [
				{"lang": "en", "name": "Intro", "desc": "Inline body"},
				{"lang": "ca", "name": "Introducció", "desc": "Cos en línia"}
			]
		}`)},
	}

	loader := source.NewLoader(fsys, source.LoaderConfig{Languages: []string{"en"}})
	record, err := loader.LoadEntry(context.Background(), "1")
	if err != nil {
		t.Fatalf("load entry: %v", err)
	}
	if record == nil {
		t.Fatal("load entry returned nil record")
	}
	if record.Ordinal != "1" || record.Title != "Intro" || record.Slug != "intro" {
		t.Errorf("record = %+v", record)
	}
	if record.Parent != nil {
		t.Errorf("parent = %v, want nil", record.Parent)
	}
	if record.Ancestor != 1 {
		t.Errorf("ancestor = %d, want 1", record.Ancestor)
	}
	if record.Difficulty == nil || *record.Difficulty != 2 {
		t.Errorf("difficulty = %v, want 2", record.Difficulty)
	}
	if record.Content != "Inline body" {
		t.Errorf("content = %q", record.Content)
	}
}

func TestLoadEntryTheoryFileFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"1.1/metadata.json": &fstest.MapFile{Data: []byte(`{
			"number": "1.1",
			"parent": "1",
			"data": [{"lang": "en", "name": "Linear Equations"}]
		}`)},
		"1.1/theory/en.md": &fstest.MapFile{Data: []byte("Theory body.\n")},
	}

	loader := source.NewLoader(fsys, source.LoaderConfig{Languages: []string{"en"}})
	record, err := loader.LoadEntry(context.Background(), "1.1")
	if err != nil {
		t.Fatalf("load entry: %v", err)
	}
	if record.Content != "Theory body.\n" {
		t.Errorf("content = %q, want theory file body", record.Content)
	}
	if record.Parent == nil || *record.Parent != "1" {
		t.Errorf("parent = %v, want 1", record.Parent)
	}
}

func TestLoadEntryLanguageChain(t *testing.T) {
	fsys := fstest.MapFS{
		"2/metadata.json": &fstest.MapFile{Data: []byte(`{
			"number": "2",
			"data": [{"lang": "ca", "name": "Avançat", "desc": "Cos"}]
		}`)},
	}

	// "en" has no entry, the chain falls through to "ca".
	loader := source.NewLoader(fsys, source.LoaderConfig{Languages: []string{"en", "ca"}})
	record, err := loader.LoadEntry(context.Background(), "2")
	if err != nil {
		t.Fatalf("load entry: %v", err)
	}
	if record == nil {
		t.Fatal("expected fallback record, got nil")
	}
	if record.Title != "Avançat" || record.Content != "Cos" {
		t.Errorf("record = %+v", record)
	}
}

func TestLoadEntrySkipsMissingLanguage(t *testing.T) {
	fsys := fstest.MapFS{
		"2/metadata.json": &fstest.MapFile{Data: []byte(`{
			"number": "2",
			"data": [{"lang": "ca", "name": "Avançat", "desc": "Cos"}]
		}`)},
	}

	loader := source.NewLoader(fsys, source.LoaderConfig{Languages: []string{"en"}})
	record, err := loader.LoadEntry(context.Background(), "2")
	if err != nil {
		t.Fatalf("load entry: %v", err)
	}
	if record != nil {
		t.Fatalf("expected skip, got %+v", record)
	}
}

func TestLoadAllExcludesNonUnits(t *testing.T) {
	fsys := fstest.MapFS{
		"1/metadata.json": &fstest.MapFile{Data: []byte(`{
			"number": "1",
			"data": [{"lang": "en", "name": "Intro", "desc": "Body"}]
		}`)},
		"2/metadata.json": &fstest.MapFile{Data: []byte(`{
			"number": "2",
			"data": [{"lang": "en", "name": "Advanced", "desc": "Body"}]
		}`)},
		"assets/logo.svg": &fstest.MapFile{Data: []byte("<svg/>")},
		"temario.md":      &fstest.MapFile{Data: []byte("# Temario")},
	}

	loader := source.NewLoader(fsys, source.LoaderConfig{Languages: []string{"en"}})
	records, err := loader.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("loaded %d records, want 2", len(records))
	}
}

func TestLoadEntryMalformedMetadata(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{name: "missing number", data: `{"data": [{"lang": "en", "name": "X"}]}`},
		{name: "bad ordinal", data: `{"number": "1.a", "data": [{"lang": "en", "name": "X"}]}`},
		{name: "negative segment", data: `{"number": "1.-2", "data": [{"lang": "en", "name": "X"}]}`},
		{name: "not json", data: `{"number": `},
		{name: "item without name", data: `{"number": "1", "data": [{"lang": "en"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"1/metadata.json": &fstest.MapFile{Data: []byte(tc.data)},
			}
			loader := source.NewLoader(fsys, source.LoaderConfig{Languages: []string{"en"}})
			_, err := loader.LoadEntry(context.Background(), "1")
			if !errors.Is(err, source.ErrMetadataInvalid) {
				t.Fatalf("expected ErrMetadataInvalid, got %v", err)
			}
		})
	}
}

func TestParseMetadata(t *testing.T) {
	meta, err := source.ParseMetadata([]byte(`{
		"number": "3.1.4",
		"parent": "3.1",
		"difficulty": 5,
		"data": [{"lang": "es", "name": "Círculos"}]
	}`))
	if err != nil {
		t.Fatalf("parse metadata: %v", err)
	}
	if meta.Number != "3.1.4" {
		t.Errorf("number = %q", meta.Number)
	}
	if meta.Parent == nil || *meta.Parent != "3.1" {
		t.Errorf("parent = %v", meta.Parent)
	}
	if item, ok := meta.Item("es"); !ok || item.Name != "Círculos" {
		t.Errorf("item(es) = %+v, %v", item, ok)
	}
	if _, ok := meta.Item("en"); ok {
		t.Error("item(en) should be absent")
	}
}
