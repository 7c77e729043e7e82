// Package preflight validates input documents before they are uploaded,
// so an invalid file fails fast instead of wasting a browser round trip.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Report describes a validated input file.
type Report struct {
	Path  string
	Size  int64
	Pages int // 0 when unknown (non-PDF input)
}

// CheckFile verifies that path points to a regular, non-empty, readable file
// whose extension is one of exts.
func CheckFile(path string, exts []string) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !contains(exts, ext) {
		return nil, fmt.Errorf("unsupported file extension %q, expected one of %s", ext, strings.Join(exts, ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	f.Close()

	return &Report{Path: path, Size: info.Size()}, nil
}

// CheckPDF validates the PDF structure and rejects encrypted documents.
// It returns the page count.
func CheckPDF(path string) (int, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF: %w", err)
	}
	if ctx.Encrypt != nil {
		return 0, fmt.Errorf("PDF is encrypted: %s", path)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, fmt.Errorf("invalid PDF: %w", err)
	}
	return ctx.PageCount, nil
}

func contains(exts []string, ext string) bool {
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
