// Package session drives one conversion through an iLovePDF tool page:
// upload the input, start the task, then wait for the download to land.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"lovepdf/internal/browser"
	"lovepdf/internal/converter"
	"lovepdf/internal/progress"
	"lovepdf/internal/receipt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

const (
	// Selectors observed on iLovePDF tool pages. The file input is hidden
	// but accepts files; the process/download selectors list the variants
	// the site uses across tools.
	cookieAcceptSelector  = "#c-p-bn"
	fileInputSelector     = `input[type="file"]`
	processButtonSelector = "#processTask, button[type='submit'], .process__btn"
	downloadLinkSelector  = "a.downloader__btn, #downloadFile, .download__btn, a[href*='download']"

	cookieBannerWait = 5 * time.Second
	userAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Session runs conversions, reporting each step to a progress.Reporter.
type Session struct {
	reporter *progress.Reporter
}

// New creates a Session. reporter may be nil to silence step output.
func New(reporter *progress.Reporter) *Session {
	return &Session{reporter: reporter}
}

// Convert uploads inputPath to the tool's page, starts the server-side task,
// waits for the result to finish downloading and returns a receipt.
func (s *Session) Convert(ctx context.Context, tool converter.Tool, inputPath string, opts converter.Options) (*receipt.Receipt, error) {
	started := time.Now()

	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input path: %w", err)
	}

	s.reporter.Step("validating %s", abs)
	report, err := tool.Preflight(abs)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.DownloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	s.reporter.Step("opening %s", tool.PageURL())
	b, err := browser.New(browser.Config{
		ProxyURL:    opts.ProxyURL,
		Headless:    !opts.ShowUI,
		DownloadDir: opts.DownloadDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}
	defer b.Close()

	page, err := b.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent})
	_, _ = page.EvalOnNewDocument(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`)

	if err := page.Timeout(opts.Timeout).Navigate(tool.PageURL()); err != nil {
		return nil, fmt.Errorf("failed to navigate: %w", err)
	}
	if err := page.Timeout(opts.Timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to wait for page load: %w", err)
	}

	dismissCookieBanner(page)

	s.reporter.Step("uploading %s", filepath.Base(abs))
	input, err := page.Timeout(opts.Timeout).Element(fileInputSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to find file input: %w", err)
	}
	if err := input.SetFiles([]string{abs}); err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	s.reporter.Step("starting conversion")
	process, err := page.Timeout(opts.Timeout).Element(processButtonSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to find process button: %w", err)
	}
	if err := process.WaitVisible(); err != nil {
		return nil, fmt.Errorf("failed to wait for process button: %w", err)
	}
	if err := process.WaitEnabled(); err != nil {
		return nil, fmt.Errorf("failed to wait for process button: %w", err)
	}
	if err := process.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, fmt.Errorf("failed to click process button: %w", err)
	}

	s.reporter.Step("waiting for the server to finish")
	download, err := page.Timeout(opts.Timeout).Element(downloadLinkSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to find download link: %w", err)
	}
	if err := download.WaitVisible(); err != nil {
		return nil, fmt.Errorf("failed to wait for download link: %w", err)
	}

	before, err := snapshot(opts.DownloadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read download directory: %w", err)
	}

	s.reporter.Step("downloading the result")
	if err := download.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, fmt.Errorf("failed to click download link: %w", err)
	}

	downloaded, err := waitForDownload(ctx, opts.DownloadDir, tool.OutputExt(), before, opts.DownloadTimeout)
	if err != nil {
		return nil, err
	}

	final, err := moveToOutput(downloaded, opts.OutputPath, opts.Force)
	if err != nil {
		return nil, err
	}

	outInfo, err := os.Stat(final)
	if err != nil {
		return nil, fmt.Errorf("failed to stat output file: %w", err)
	}

	slog.Debug("conversion finished",
		"tool", tool.Name(),
		"input", abs,
		"output", final,
		"duration", time.Since(started))

	return &receipt.Receipt{
		Tool:        tool.Name(),
		ToolTitle:   tool.Title(),
		PageURL:     tool.PageURL(),
		InputPath:   abs,
		InputBytes:  report.Size,
		Pages:       report.Pages,
		OutputPath:  final,
		OutputBytes: outInfo.Size(),
		StartedAt:   started,
		Duration:    time.Since(started),
	}, nil
}

// dismissCookieBanner clicks the cookie accept button when present.
// The banner does not always appear, so its absence is not an error.
func dismissCookieBanner(page *rod.Page) {
	el, err := page.Timeout(cookieBannerWait).Element(cookieAcceptSelector)
	if err != nil {
		slog.Debug("no cookie banner found")
		return
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		slog.Debug("failed to click cookie banner", "error", err)
		return
	}
	slog.Debug("cookie banner accepted")
}
