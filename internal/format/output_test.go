package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteJSONCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": "ok"}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"data\":\"ok\"}\n" {
		t.Fatalf("out = %q", got)
	}
}

func TestWriteJSONPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": "ok"}, "", true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"data\": \"ok\"") {
		t.Fatalf("out = %q", buf.String())
	}
}

func TestWriteTableAligns(t *testing.T) {
	var buf bytes.Buffer
	tbl := Table{
		Header: []string{"#", "NAME"},
		Rows:   [][]string{{"1", "Hot drinks"}, {"2", "Desserts"}},
	}
	if err := Write(&buf, tbl, "table", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "NAME") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Hot drinks") {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestWriteTableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": "ok"}, "table", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "\"data\": \"ok\"") {
		t.Fatalf("out = %q", buf.String())
	}
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "x", "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
