package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestMarkdown_Envelope(t *testing.T) {
	at := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)
	out := Markdown("## 1. PROPERTY ISSUE SUMMARY\nThe terrace leaks.", at)

	if !strings.HasPrefix(out, "# Detailed Diagnostic Report (DDR)") {
		t.Errorf("missing title header: %q", out)
	}
	if !strings.Contains(out, "**Generated on:** 15 March 2024, 02:30 PM") {
		t.Errorf("missing generated-on line: %q", out)
	}
	if !strings.Contains(out, "The terrace leaks.") {
		t.Error("narrative body missing")
	}
	if !strings.Contains(out, "verify critical findings with on-site professionals") {
		t.Error("disclaimer footer missing")
	}
}

func TestDefaultPath(t *testing.T) {
	at := time.Date(2024, time.March, 15, 14, 30, 5, 0, time.UTC)
	got := DefaultPath("output", at)
	want := filepath.Join("output", "DDR_Report_20240315_143005.md")
	if got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}

func TestSave_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "nested", "out.md")
	if err := Save("report body", path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "report body" {
		t.Errorf("saved content = %q", data)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("# Title\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(html, "<h1") {
		t.Errorf("heading not rendered: %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("bold not rendered: %q", html)
	}
}
