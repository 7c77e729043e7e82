package receipt

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Receipt summarizes one finished conversion job.
type Receipt struct {
	Tool        string
	ToolTitle   string
	PageURL     string
	InputPath   string
	InputBytes  int64
	Pages       int // 0 when unknown (non-PDF input)
	OutputPath  string
	OutputBytes int64
	StartedAt   time.Time
	Duration    time.Duration
}

func (r *Receipt) ToText() (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s -> %s\n", r.ToolTitle, r.InputPath, r.OutputPath))
	sb.WriteString(fmt.Sprintf("  input:    %s", formatBytes(r.InputBytes)))
	if r.Pages > 0 {
		sb.WriteString(fmt.Sprintf(" (%d pages)", r.Pages))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  output:   %s\n", formatBytes(r.OutputBytes)))
	sb.WriteString(fmt.Sprintf("  duration: %s\n", r.Duration.Round(time.Millisecond)))
	return sb.String(), nil
}

func (r *Receipt) ToMarkdown() (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", r.ToolTitle))
	sb.WriteString(fmt.Sprintf("Converted via [%s](%s)\n\n", r.Tool, r.PageURL))
	sb.WriteString("| | |\n| --- | --- |\n")
	sb.WriteString(fmt.Sprintf("| Input | `%s` (%s) |\n", r.InputPath, formatBytes(r.InputBytes)))
	if r.Pages > 0 {
		sb.WriteString(fmt.Sprintf("| Pages | %d |\n", r.Pages))
	}
	sb.WriteString(fmt.Sprintf("| Output | `%s` (%s) |\n", r.OutputPath, formatBytes(r.OutputBytes)))
	sb.WriteString(fmt.Sprintf("| Started | %s |\n", r.StartedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", r.Duration.Round(time.Millisecond)))
	return sb.String(), nil
}

func (r *Receipt) ToJSON() ([]byte, error) {
	type jsonReceipt struct {
		Tool        string    `json:"tool"`
		ToolTitle   string    `json:"tool_title"`
		PageURL     string    `json:"page_url"`
		InputPath   string    `json:"input_path"`
		InputBytes  int64     `json:"input_bytes"`
		Pages       int       `json:"pages,omitempty"`
		OutputPath  string    `json:"output_path"`
		OutputBytes int64     `json:"output_bytes"`
		StartedAt   time.Time `json:"started_at"`
		DurationMS  int64     `json:"duration_ms"`
	}
	return json.Marshal(jsonReceipt{
		Tool:        r.Tool,
		ToolTitle:   r.ToolTitle,
		PageURL:     r.PageURL,
		InputPath:   r.InputPath,
		InputBytes:  r.InputBytes,
		Pages:       r.Pages,
		OutputPath:  r.OutputPath,
		OutputBytes: r.OutputBytes,
		StartedAt:   r.StartedAt,
		DurationMS:  r.Duration.Milliseconds(),
	})
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
