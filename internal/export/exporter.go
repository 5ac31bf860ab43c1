package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vzahanych/trip-planner-app/internal/config"
)

var (
	ErrExport        = errors.New("export failed")
	ErrEmptyText     = errors.New("nothing to export: text is empty")
	ErrUnknownFormat = errors.New("unknown export format")
)

// Exporter renders plan text into a downloadable document.
type Exporter interface {
	Export(text string) ([]byte, error)
	ContentType() string
	Extension() string
}

// Formats lists the supported export formats.
var Formats = []string{"pdf", "txt"}

// For returns the exporter for format ("pdf" or "txt").
func For(format string, cfg config.ExportConfig) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "pdf":
		return NewPDFExporter(cfg), nil
	case "txt", "text":
		return TextExporter{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Filename is the download name for an exported travel plan.
func Filename(e Exporter) string {
	return "travel_plan." + e.Extension()
}
