package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/vzahanych/trip-planner-app/internal/config"
)

const (
	pdfFont       = "Helvetica"
	pdfMargin     = 15.0
	lineHeightPt  = 1.4
	ptToMM        = 0.3528
	defaultSizePt = 11.0
)

// Core PDF fonts only cover cp1252; these runes have no glyph there.
var pdfSubstitutions = strings.NewReplacer(
	"₹", "Rs.",
	"\t", "    ",
)

// PDFExporter lays the plan out as a single flow of paragraphs on A4 pages,
// one paragraph per input line, in one normal text style.
type PDFExporter struct {
	title    string
	fontSize float64
	compress bool
	now      func() time.Time
}

func NewPDFExporter(cfg config.ExportConfig) *PDFExporter {
	size := cfg.FontSize
	if size <= 0 {
		size = defaultSizePt
	}
	return &PDFExporter{
		title:    cfg.Title,
		fontSize: size,
		compress: cfg.Compress,
		now:      time.Now,
	}
}

func (e *PDFExporter) ContentType() string { return "application/pdf" }

func (e *PDFExporter) Extension() string { return "pdf" }

func (e *PDFExporter) Export(text string) (out []byte, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrExport, r)
		}
	}()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(e.now())
	pdf.SetModificationDate(e.now())
	if e.title != "" {
		pdf.SetTitle(e.title, true)
	}
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	pdf.SetFont(pdfFont, "", e.fontSize)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	lineHeight := e.fontSize * lineHeightPt * ptToMM

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(lineHeight)
			continue
		}
		pdf.MultiCell(0, lineHeight, tr(pdfSubstitutions.Replace(line)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	return buf.Bytes(), nil
}
