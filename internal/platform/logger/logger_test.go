package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONIncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "petcare", Output: &buf})

	l.With(map[string]any{"pet_id": "p1"}).Info("report built", map[string]any{"sections": 3, "": "dropped"})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one json line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "report built" || entry["app"] != "petcare" || entry["pet_id"] != "p1" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry[""]; ok {
		t.Fatalf("empty keys must be dropped: %v", entry)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatLogfmt, Output: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestParse(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("nope") != Info {
		t.Fatalf("unexpected level parsing")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected format parsing")
	}
}
