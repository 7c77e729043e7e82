package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContent struct{}

func (fakeContent) ToText() (string, error)     { return "text", nil }
func (fakeContent) ToMarkdown() (string, error) { return "# markdown", nil }
func (fakeContent) ToJSON() ([]byte, error)     { return []byte(`{"a":1}`), nil }

func TestFormat(t *testing.T) {
	for format, want := range map[string]string{
		"text":     "text",
		"markdown": "# markdown",
		"json":     `{"a":1}`,
	} {
		got, err := Format(fakeContent{}, format)
		require.NoError(t, err, format)
		assert.Equal(t, want, got)
	}
}

func TestFormatUnsupported(t *testing.T) {
	_, err := Format(fakeContent{}, "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
