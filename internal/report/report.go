// Package report lays advisory text out as a paginated PDF.
package report

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/Brownie44l1/agricare-api/internal/labels"
	"github.com/Brownie44l1/agricare-api/internal/sanitize"
	"github.com/go-pdf/fpdf"
)

const (
	DefaultTitle = "AgriCare AI - Crop Health Report"
	fontFamily   = "Helvetica"
	lineHeight   = 5.0
)

type LineKind int

const (
	Skip LineKind = iota
	Heading
	Bullet
	Paragraph
)

func (k LineKind) String() string {
	switch k {
	case Heading:
		return "heading"
	case Bullet:
		return "bullet"
	case Paragraph:
		return "paragraph"
	default:
		return "skip"
	}
}

// Classify trims line and decides how it is rendered. The returned text is
// what ends up on the page.
func Classify(line string) (LineKind, string) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return Skip, ""
	case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
		text := strings.Trim(line, "* ")
		if text == "" {
			return Skip, ""
		}
		return Heading, text
	case strings.HasPrefix(line, "* "):
		return Bullet, "  - " + strings.TrimLeft(line, "* ")
	default:
		return Paragraph, line
	}
}

type Options struct {
	// Title is drawn centred at the top of every page.
	Title string
	// Compress enables stream compression in the PDF output.
	Compress bool
}

type Renderer struct {
	opts Options
}

func NewRenderer(opts Options) *Renderer {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	return &Renderer{opts: opts}
}

// Render produces a PDF for disease and its report text. Lines that fail to
// render are logged and skipped.
func (r *Renderer) Render(disease, text string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.opts.Compress)
	pdf.SetTitle(r.opts.Title, false)
	pdf.SetCreator("AgriCare AI", false)

	title := sanitize.Text(r.opts.Title)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	name := sanitize.Text(labels.Humanize(disease))
	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, "Identified Disease: "+name, "", 1, "C", false, 0, "")
	pdf.Ln(10)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render title: %w", err)
	}

	for _, line := range strings.Split(sanitize.Text(text), "\n") {
		kind, content := Classify(line)
		if kind == Skip {
			continue
		}
		if err := renderLine(pdf, kind, content); err != nil {
			log.Printf("Error processing line: %.50q - %v", content, err)
			pdf.ClearError()
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLine writes one classified line.
var drawLine = func(pdf *fpdf.Fpdf, kind LineKind, text string) {
	switch kind {
	case Heading:
		pdf.SetFont(fontFamily, "B", 12)
		pdf.Ln(5)
		pdf.MultiCell(0, lineHeight, text, "", "L", false)
		pdf.Ln(2)
	default:
		pdf.SetFont(fontFamily, "", 11)
		pdf.MultiCell(0, lineHeight, text, "", "L", false)
	}
}

// renderLine draws one line and reports a panic or the document's error state.
func renderLine(pdf *fpdf.Fpdf, kind LineKind, text string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	drawLine(pdf, kind, text)
	return pdf.Error()
}
