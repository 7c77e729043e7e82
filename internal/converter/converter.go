package converter

import (
	"time"

	"lovepdf/internal/preflight"
)

// Tool describes one iLovePDF tool page and the files it accepts.
type Tool interface {
	Name() string
	Title() string
	PageURL() string
	InputExts() []string
	OutputExt() string
	// Preflight validates the input file before anything is uploaded.
	Preflight(path string) (*preflight.Report, error)
}

// Options carries per-run settings shared by all tools.
type Options struct {
	DownloadDir     string        // where the browser saves the result
	OutputPath      string        // optional final path, result is renamed to it
	Timeout         time.Duration // per-step wait for page elements and processing
	DownloadTimeout time.Duration // wait for the download to finish on disk
	ShowUI          bool          // disable headless mode
	ProxyURL        string
	Force           bool // allow replacing an existing output file
}
