package config

import (
	"strings"
	"testing"
)

func TestParseTolerance(t *testing.T) {
	var (
		schema = SchemaMap{
			"Log": {
				"Enabled": Boolean,
				"Level":   Integer,
			},
		}
		text = strings.Join([]string{
			"[Log]",
			"Enabled = yes",
			"Level = 5",
			"Level = 6", // duplicate single-valued -> error
			"Bogus = 1", // unrecognized -> error
			"not a line", // malformed -> error
		}, "\r\n")
	)

	data, err := parseDecoded(strings.NewReader(text), schema)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !data.HasErrors() {
		t.Fatalf("expected errors")
	}

	if len(data.Errors()) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(data.Errors()), data.Errors())
	}

	enabled, ok := data.Bool("Log", "Enabled")
	if !ok || !enabled {
		t.Fatalf("Log.Enabled = %v, %v", enabled, ok)
	}

	level, ok := data.Int("Log", "Level")
	if !ok || level != 5 {
		t.Fatalf("Log.Level = %v, %v, want 5", level, ok)
	}
}

func TestMissingFileIsNotAnError(t *testing.T) {
	data, err := Read("/nonexistent/path/xidi.ini", SchemaMap{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if data.HasErrors() {
		t.Fatalf("expected no errors for empty config")
	}
}

func TestMultiValuePreservesOrderAndDedups(t *testing.T) {
	var (
		schema = SchemaMap{"CustomMappers": {"Blueprint": StringMultiValue}}
		text   = "[CustomMappers]\nBlueprint = a\nBlueprint = b\nBlueprint = a\n"
	)

	data, err := parseDecoded(strings.NewReader(text), schema)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got := data.Strings("CustomMappers", "Blueprint"); len(got) != 3 {
		t.Fatalf("Strings = %v, want 3 entries", got)
	}

	if got := data.StringSet("CustomMappers", "Blueprint"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("StringSet = %v, want [a b]", got)
	}
}
