package pdf

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/dockroute/ordersheet/internal/extract"
)

const (
	// defaultPageHeight is the US Letter height in points, used when a page
	// carries no usable MediaBox.
	defaultPageHeight = 792.0

	// wordGapFactor is the fraction of the font size the horizontal gap
	// between two character runs must exceed to start a new word.
	wordGapFactor = 0.3

	// baselineTolerance is the vertical drift allowed between character
	// runs of the same word.
	baselineTolerance = 2.0
)

// Reader converts report files into extraction pages: per-page flattened
// text plus the positioned word list, in a top-down coordinate system.
type Reader struct {
	maxFileSize int64
}

// NewReader creates a new report reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
	}
}

// ReadPages opens a report file and returns one extraction page per PDF
// page. A page whose content cannot be read yields an empty page rather
// than failing the document.
func (r *Reader) ReadPages(path string) ([]extract.Page, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.Size() > r.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pages := make([]extract.Page, 0, pdfReader.NumPage())
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Word assembly below may still succeed for this page.
			text = ""
		}

		height := pageHeight(page)
		words := assembleWords(page.Content().Text, height)

		pages = append(pages, extract.Page{
			Number: pageNum,
			Text:   text,
			Words:  words,
		})
	}

	return pages, nil
}

// pageHeight reads the page's MediaBox height, falling back to US Letter.
func pageHeight(page pdf.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Kind() != pdf.Array || box.Len() < 4 {
		return defaultPageHeight
	}
	height := box.Index(3).Float64() - box.Index(1).Float64()
	if height <= 0 {
		return defaultPageHeight
	}
	return height
}

// assembleWords merges the renderer's character runs into whole words and
// flips them into the top-down coordinates the extraction core expects. Runs
// sharing a baseline are joined while the horizontal gap between them stays
// below a fraction of the font size.
func assembleWords(texts []pdf.Text, height float64) []extract.Word {
	runs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		runs = append(runs, t)
	}
	if len(runs) == 0 {
		return nil
	}

	// Reading order: top of the page first (PDF y grows upward), then
	// left to right.
	sort.SliceStable(runs, func(i, j int) bool {
		if abs(runs[i].Y-runs[j].Y) > baselineTolerance {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})

	var words []extract.Word
	var cur strings.Builder
	var left, right, baseline, fontSize float64

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		bottom := height - baseline
		words = append(words, extract.Word{
			Text:   cur.String(),
			Left:   left,
			Right:  right,
			Top:    bottom - fontSize,
			Bottom: bottom,
		})
		cur.Reset()
	}

	for _, t := range runs {
		gap := wordGapFactor * t.FontSize
		if gap < 1 {
			gap = 1
		}
		sameWord := cur.Len() > 0 &&
			abs(t.Y-baseline) <= baselineTolerance &&
			t.X-right <= gap &&
			t.X-right > -1 // Overlapping runs restart a word.
		if !sameWord {
			flush()
			left = t.X
			baseline = t.Y
			fontSize = t.FontSize
		}
		cur.WriteString(strings.TrimRight(t.S, "\n"))
		right = t.X + t.W
		if t.FontSize > fontSize {
			fontSize = t.FontSize
		}
	}
	flush()

	return words
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
