package preflight

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMinimalPDF writes a one-page PDF with a correct xref table.
func writeMinimalPDF(t *testing.T, path string) {
	t.Helper()

	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestCheckFileMissing(t *testing.T) {
	_, err := CheckFile(filepath.Join(t.TempDir(), "nope.pdf"), []string{".pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestCheckFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := CheckFile(path, []string{".pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestCheckFileWrongExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	_, err := CheckFile(path, []string{".pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestCheckFileDirectory(t *testing.T) {
	_, err := CheckFile(t.TempDir(), []string{".pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a regular file")
}

func TestCheckFileExtensionCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SCAN.PDF")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-"), 0o644))

	report, err := CheckFile(path, []string{".pdf"})
	require.NoError(t, err)
	assert.Equal(t, path, report.Path)
	assert.Equal(t, int64(5), report.Size)
	assert.Zero(t, report.Pages)
}

func TestCheckPDFValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one-page.pdf")
	writeMinimalPDF(t, path)

	pages, err := CheckPDF(path)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestCheckPDFGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	_, err := CheckPDF(path)
	require.Error(t, err)
}
