package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleJob(tool string) Job {
	return Job{
		Tool:        tool,
		InputPath:   "/tmp/report.pdf",
		InputBytes:  2048,
		OutputPath:  "/tmp/report.docx",
		OutputBytes: 4096,
		Status:      StatusOK,
		StartedAt:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		DurationMS:  12000,
	}
}

func TestRecordAndList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id, err := store.Record(ctx, sampleJob("pdfword"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	failed := sampleJob("compress")
	failed.Status = StatusFailed
	failed.Error = "download timed out after 2m0s"
	failed.OutputPath = ""
	_, err = store.Record(ctx, failed)
	require.NoError(t, err)

	jobs, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	// Newest first.
	assert.Equal(t, "compress", jobs[0].Tool)
	assert.Equal(t, StatusFailed, jobs[0].Status)
	assert.Equal(t, "download timed out after 2m0s", jobs[0].Error)

	assert.Equal(t, "pdfword", jobs[1].Tool)
	assert.Equal(t, StatusOK, jobs[1].Status)
	assert.Equal(t, int64(2048), jobs[1].InputBytes)
	assert.True(t, jobs[1].StartedAt.Equal(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)))
}

func TestListLimit(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, sampleJob("pdfword"))
		require.NoError(t, err)
	}

	jobs, err := store.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
	assert.Equal(t, int64(5), jobs[0].ID)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestExportYAML(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, sampleJob("pdfword"))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, store.Export(ctx, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var jobs []Job
	require.NoError(t, yaml.Unmarshal(data, &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "pdfword", jobs[0].Tool)
}

func TestExportJSON(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, sampleJob("officepdf"))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, store.Export(ctx, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var jobs []Job
	require.NoError(t, json.Unmarshal(data, &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "officepdf", jobs[0].Tool)
}

func TestExportUnsupportedFormat(t *testing.T) {
	store := testStore(t)

	err := store.Export(context.Background(), filepath.Join(t.TempDir(), "jobs.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestListingToText(t *testing.T) {
	job := sampleJob("pdfword")
	job.ID = 7

	out, err := NewListing([]Job{job}).ToText()
	require.NoError(t, err)
	assert.Contains(t, out, "#7")
	assert.Contains(t, out, "/tmp/report.pdf -> /tmp/report.docx")
}

func TestListingEmpty(t *testing.T) {
	out, err := NewListing(nil).ToText()
	require.NoError(t, err)
	assert.Contains(t, out, "no jobs recorded")

	data, err := NewListing(nil).ToJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestListingToMarkdown(t *testing.T) {
	job := sampleJob("compress")
	job.ID = 1

	out, err := NewListing([]Job{job}).ToMarkdown()
	require.NoError(t, err)
	assert.Contains(t, out, "| ID | Started | Tool | Status | Input | Output | Duration |")
	assert.Contains(t, out, "compress")
	assert.Contains(t, out, "12s")
}
