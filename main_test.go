package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	oldFormat, oldTimeout, oldDownload, oldDir := outputFormat, timeout, downloadTimeout, downloadDir
	t.Cleanup(func() {
		outputFormat, timeout, downloadTimeout, downloadDir = oldFormat, oldTimeout, oldDownload, oldDir
	})
	outputFormat = "text"
	timeout = 60 * time.Second
	downloadTimeout = 120 * time.Second
	downloadDir = ""
}

func TestValidateFlags(t *testing.T) {
	resetFlags(t)
	require.NoError(t, validateFlags())
}

func TestValidateFlagsBadFormat(t *testing.T) {
	resetFlags(t)
	outputFormat = "csv"

	err := validateFlags()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestValidateFlagsBadTimeout(t *testing.T) {
	resetFlags(t)
	timeout = 0

	err := validateFlags()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout must be positive")
}

func TestValidateFlagsBadDownloadTimeout(t *testing.T) {
	resetFlags(t)
	downloadTimeout = -time.Second

	err := validateFlags()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download timeout must be positive")
}

func TestResolveDownloadDirFlagWins(t *testing.T) {
	resetFlags(t)
	downloadDir = "/tmp/out"

	dir, err := resolveDownloadDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", dir)
}

func TestResolveDownloadDirDefault(t *testing.T) {
	resetFlags(t)

	dir, err := resolveDownloadDir()
	require.NoError(t, err)
	assert.Contains(t, dir, "Downloads")
}

func TestLocalToolListRendersBuiltins(t *testing.T) {
	out, err := localToolList().ToText()
	require.NoError(t, err)
	assert.Contains(t, out, "pdfword")
	assert.Contains(t, out, "https://www.ilovepdf.com/pdf_to_word")
	assert.Contains(t, out, ".doc/.docx -> .pdf")
}
