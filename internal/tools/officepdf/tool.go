package officepdf

import (
	"lovepdf/internal/converter"
	"lovepdf/internal/preflight"
)

func init() {
	converter.Register(&Tool{})
}

// Tool converts Word documents into PDF via /word_to_pdf.
type Tool struct{}

func (t *Tool) Name() string { return "officepdf" }

func (t *Tool) Title() string { return "Word to PDF" }

func (t *Tool) PageURL() string { return "https://www.ilovepdf.com/word_to_pdf" }

func (t *Tool) InputExts() []string { return []string{".doc", ".docx"} }

func (t *Tool) OutputExt() string { return ".pdf" }

func (t *Tool) Preflight(path string) (*preflight.Report, error) {
	return preflight.CheckFile(path, t.InputExts())
}
