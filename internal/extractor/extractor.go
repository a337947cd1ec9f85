// Package extractor turns source documents into raw page-marked text for the
// structuring engine. This is the only layer allowed to fail: a missing file
// or a document that yields almost no usable text is reported as a typed
// error, while everything downstream degrades instead of failing.
package extractor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// minUsableChars is the threshold below which extraction is considered to
// have failed outright.
const minUsableChars = 20

// NotFoundError reports a document path that does not resolve.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.Path)
}

// UnextractableError reports a document that produced fewer than
// minUsableChars of text after all strategies were exhausted.
type UnextractableError struct {
	Name string
}

func (e *UnextractableError) Error() string {
	return fmt.Sprintf("no text could be extracted from: %s", e.Name)
}

// Extractor converts raw document bytes into page-marked text.
type Extractor interface {
	Extract(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".html": true,
	".htm":  true,
	".txt":  true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ExtractFile reads a document from disk and extracts its text.
func ExtractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Path: path}
		}
		return "", fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	ex, err := ForFile(path)
	if err != nil {
		return "", err
	}
	return ex.Extract(f, filepath.Base(path))
}

// pageMarked joins per-page texts under "[Page N]" markers, skipping pages
// that carried no text. The markers are what the thermal structurer splits
// on, so their exact shape is load-bearing.
func pageMarked(pages []string) string {
	var parts []string
	for i, p := range pages {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[Page %d]\n%s", i+1, p))
	}
	return strings.Join(parts, "\n\n")
}

// checkUsable enforces the minimum-text guard shared by all extractors.
func checkUsable(text, name string) (string, error) {
	if len(strings.TrimSpace(text)) < minUsableChars {
		return "", &UnextractableError{Name: name}
	}
	return text, nil
}
