package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrImagePDF is returned when a PDF yields too little text to be a real
// text-layer statement. Scanned/image statements are rejected outright;
// there is no OCR path.
var ErrImagePDF = errors.New("document appears to be a scanned image (no extractable text layer)")

// minTextLength is the cutoff below which an extracted PDF is treated
// as image-only.
const minTextLength = 100

// Load extracts the full text of a statement document. PDF files go
// through page-by-page text extraction; anything else (CSV exports) is
// returned as-is. The returned string is the concatenation of all pages in
// reading order; continuation-line stitching downstream depends on that
// order being preserved.
func Load(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".pdf" || bytes.HasPrefix(data, []byte("%PDF")) {
		return ExtractPDF(data)
	}
	return string(data), nil
}

// ExtractPDF pulls the text layer out of a PDF buffer, page by page in
// page order. Returns ErrImagePDF when the text layer is missing or too
// thin to parse.
func ExtractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf decode failed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	pages := extractByRow(r, numPages)
	if !hasUsableText(pages) {
		// Row extraction misses PDFs whose text objects carry explicit
		// coordinates; rebuild rows from the raw content stream.
		pages = extractByContent(r, numPages)
	}

	combined := strings.Join(pages, "\n")
	if len(strings.TrimSpace(combined)) < minTextLength {
		return "", ErrImagePDF
	}
	return combined, nil
}

func hasUsableText(pages []string) bool {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n >= minTextLength
}

// extractByRow uses the library's row grouping. Best layout preservation
// when it works.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByContent reconstructs rows from positioned text objects: group
// by rounded Y, sort rows top-to-bottom, sort items left-to-right, and
// widen large X gaps into column separators.
func extractByContent(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type textItem struct {
			x float64
			s string
		}
		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		// PDF Y runs bottom-to-top.
		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool {
				return items[a].x < items[b].x
			})

			var parts []string
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					parts = append(parts, "  ")
				}
				parts = append(parts, item.s)
				prevX = item.x
			}
			line := strings.TrimSpace(strings.Join(parts, ""))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}
