package compress

import (
	"lovepdf/internal/converter"
	"lovepdf/internal/preflight"
)

func init() {
	converter.Register(&Tool{})
}

// Tool shrinks PDF documents via /compress_pdf.
type Tool struct{}

func (t *Tool) Name() string { return "compress" }

func (t *Tool) Title() string { return "Compress PDF" }

func (t *Tool) PageURL() string { return "https://www.ilovepdf.com/compress_pdf" }

func (t *Tool) InputExts() []string { return []string{".pdf"} }

func (t *Tool) OutputExt() string { return ".pdf" }

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
