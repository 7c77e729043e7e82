package pdfword

import (
	"lovepdf/internal/converter"
	"lovepdf/internal/preflight"
)

func init() {
	converter.Register(&Tool{})
}

// Tool converts PDF documents into editable Word files via /pdf_to_word.
type Tool struct{}

func (t *Tool) Name() string { return "pdfword" }

func (t *Tool) Title() string { return "PDF to Word" }

func (t *Tool) PageURL() string { return "https://www.ilovepdf.com/pdf_to_word" }

func (t *Tool) InputExts() []string { return []string{".pdf"} }

func (t *Tool) OutputExt() string { return ".docx" }

func (t *Tool) Preflight(path string) (*preflight.Report, error) {
	report, err := preflight.CheckFile(path, t.InputExts())
	if err != nil {
		return nil, err
	}
	pages, err := preflight.CheckPDF(path)
	if err != nil {
		return nil, err
	}
	report.Pages = pages
	return report, nil
}
