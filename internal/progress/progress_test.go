package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporterPlain(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, true)

	r.Step("uploading %s", "report.pdf")
	r.Done("saved %s", "report.docx")
	r.Fail("download timed out")

	out := buf.String()
	assert.Contains(t, out, "... uploading report.pdf\n")
	assert.Contains(t, out, "ok: saved report.docx\n")
	assert.Contains(t, out, "error: download timed out\n")
}

func TestNilReporterIsSilent(t *testing.T) {
	var r *Reporter
	// Must not panic.
	r.Step("ignored")
	r.Done("ignored")
	r.Fail("ignored")
}
