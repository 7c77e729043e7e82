package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Chrome writes in-flight downloads to a *.crdownload file and renames it
// once complete, so the directory is watched instead of the browser.
const crdownloadSuffix = ".crdownload"

// pollInterval is how often the download directory is re-read.
// Overridden in tests.
var pollInterval = time.Second

// snapshot lists the file names currently present in dir.
func snapshot(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}
	return names, nil
}

// waitForDownload polls dir until a file with ext that was not in before
// appears and no download is still in flight. It returns the finished
// file's path.
func waitForDownload(ctx context.Context, dir, ext string, before map[string]bool, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("download canceled: %w", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", fmt.Errorf("failed to read download directory: %w", err)
		}

		inFlight := false
		found := ""
		for _, e := range entries {
			name := e.Name()
			if strings.HasSuffix(name, crdownloadSuffix) {
				inFlight = true
				continue
			}
			if before[name] {
				continue
			}
			if strings.EqualFold(filepath.Ext(name), ext) {
				found = name
			}
		}

		if !inFlight && found != "" {
			return filepath.Join(dir, found), nil
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("download timed out after %s", timeout)
		}
		time.Sleep(pollInterval)
	}
}

// moveToOutput renames the downloaded file to outputPath. An existing target
// is never replaced silently: without force a numbered variant is used
// instead. An empty outputPath keeps the file where the browser saved it.
func moveToOutput(downloaded, outputPath string, force bool) (string, error) {
	if outputPath == "" {
		return downloaded, nil
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if !force {
		outputPath = uniquePath(outputPath)
	}

	if err := os.Rename(downloaded, outputPath); err != nil {
		// Rename fails across filesystems, fall back to copying.
		if cerr := copyFile(downloaded, outputPath); cerr != nil {
			return "", fmt.Errorf("failed to move output file: %w", cerr)
		}
		os.Remove(downloaded)
	}
	return outputPath, nil
}

// uniquePath returns path itself when free, otherwise the first
// "name (n).ext" variant that does not exist yet.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
