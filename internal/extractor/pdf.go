package extractor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor reads PDFs with the Go library first. Pages whose plain-text
// stream comes back empty are retried row-wise, which recovers table-heavy
// layouts as "cell | cell" lines. If the library cannot read the file at all
// it falls back to the pdftotext binary when available.
type PDFExtractor struct {
	FallbackPdftotext bool
}

func (p *PDFExtractor) Extract(r io.Reader, filename string) (string, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "ddr-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	pages, err := readPDFPages(tmpPath)
	if (err != nil || !anyText(pages)) && p.FallbackPdftotext {
		if text, ferr := runPdftotext(tmpPath); ferr == nil {
			pages = strings.Split(text, "\f")
			err = nil
		}
	}
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return checkUsable(pageMarked(pages), filename)
}

func readPDFPages(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			text = rowText(page)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// rowText extracts a page row by row, joining the words of each row with
// " | " so table cells stay distinguishable downstream.
func rowText(page pdflib.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, row := range rows {
		var cells []string
		for _, word := range row.Content {
			if s := strings.TrimSpace(word.S); s != "" {
				cells = append(cells, s)
			}
		}
		if len(cells) > 0 {
			b.WriteString(strings.Join(cells, " | "))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func runPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

func anyText(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return false
}
