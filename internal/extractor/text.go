package extractor

import (
	"io"
	"strings"
)

// TextExtractor handles plain text files, treating form feeds as page breaks.
type TextExtractor struct{}

func (p *TextExtractor) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return checkUsable(pageMarked(strings.Split(string(data), "\f")), filename)
}
