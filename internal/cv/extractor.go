// Package cv turns uploaded resume documents into plain text suitable for
// structuring.
package cv

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrDocumentParse marks an upload whose bytes could not be read as a
// supported document.
var ErrDocumentParse = errors.New("document could not be parsed")

var pdfMagic = []byte("%PDF-")

// ExtractText returns the text content of an uploaded document. PDFs are
// detected by magic bytes or a .pdf filename; anything else is treated as
// plain UTF-8 text.
func ExtractText(filename string, data []byte) (string, error) {
	if bytes.HasPrefix(data, pdfMagic) || strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return extractPDF(data)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8 text", ErrDocumentParse)
	}
	return string(data), nil
}

func extractPDF(data []byte) (text string, err error) {
	// The reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrDocumentParse, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrDocumentParse, i, err)
		}

		var lines []string
		for _, row := range rows {
			var words []string
			for _, word := range row.Content {
				if s := strings.TrimSpace(word.S); s != "" {
					words = append(words, s)
				}
			}
			if len(words) > 0 {
				lines = append(lines, strings.Join(words, " "))
			}
		}
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}

	return strings.Join(pages, "\n"), nil
}
