package export

import "strings"

// TextExporter produces the plan as UTF-8 plain text.
type TextExporter struct{}

func (TextExporter) Export(text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	return []byte(text), nil
}

func (TextExporter) ContentType() string { return "text/plain; charset=utf-8" }

func (TextExporter) Extension() string { return "txt" }
