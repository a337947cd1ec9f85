// Package output renders and persists finished DDR reports.
package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
)

const disclaimer = "*This report was generated using an AI-assisted diagnostic system. " +
	"All observations are based on data extracted from the provided inspection documents. " +
	"Please verify critical findings with on-site professionals before proceeding with remediation work.*"

// Markdown wraps the narrative text in the standard report envelope.
func Markdown(narrative string, generatedAt time.Time) string {
	return fmt.Sprintf(`# Detailed Diagnostic Report (DDR)

**Generated on:** %s
**System:** AI-Powered DDR Generator

---

%s

---

%s
`, generatedAt.Format("02 January 2006, 03:04 PM"), narrative, disclaimer)
}

// Save writes a report to path, creating parent directories as needed.
func Save(content, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// DefaultPath builds a timestamped report filename under dir.
func DefaultPath(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("DDR_Report_%s.md", t.Format("20060102_150405")))
}

// RenderHTML converts a markdown report to HTML for browser preview.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
