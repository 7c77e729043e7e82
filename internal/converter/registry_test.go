package converter_test

import (
	"testing"

	"lovepdf/internal/converter"
	_ "lovepdf/internal/tools/compress"
	_ "lovepdf/internal/tools/officepdf"
	_ "lovepdf/internal/tools/pdfword"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsRegistered(t *testing.T) {
	assert.Equal(t, []string{"compress", "officepdf", "pdfword"}, converter.Names())
}

func TestGetCaseInsensitive(t *testing.T) {
	tool, ok := converter.Get("PDFWord")
	require.True(t, ok)
	assert.Equal(t, "pdfword", tool.Name())
}

func TestGetUnknown(t *testing.T) {
	_, ok := converter.Get("ocr")
	assert.False(t, ok)
}

func TestToolMetadata(t *testing.T) {
	tool, ok := converter.Get("pdfword")
	require.True(t, ok)

	assert.Equal(t, "PDF to Word", tool.Title())
	assert.Equal(t, "https://www.ilovepdf.com/pdf_to_word", tool.PageURL())
	assert.Equal(t, []string{".pdf"}, tool.InputExts())
	assert.Equal(t, ".docx", tool.OutputExt())

	office, ok := converter.Get("officepdf")
	require.True(t, ok)
	assert.Equal(t, []string{".doc", ".docx"}, office.InputExts())
	assert.Equal(t, ".pdf", office.OutputExt())
}
