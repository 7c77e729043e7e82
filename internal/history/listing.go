package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Listing wraps a slice of jobs for the output formatter.
type Listing struct {
	jobs []Job
}

// NewListing creates a Listing over jobs.
func NewListing(jobs []Job) *Listing {
	return &Listing{jobs: jobs}
}

func (l *Listing) ToText() (string, error) {
	if len(l.jobs) == 0 {
		return "no jobs recorded\n", nil
	}
	var sb strings.Builder
	for _, j := range l.jobs {
		sb.WriteString(fmt.Sprintf("#%d  %s  %s  %s\n", j.ID, j.StartedAt.Local().Format("2006-01-02 15:04:05"), j.Tool, j.Status))
		sb.WriteString(fmt.Sprintf("    %s", j.InputPath))
		if j.OutputPath != "" {
			sb.WriteString(" -> " + j.OutputPath)
		}
		sb.WriteString("\n")
		if j.Error != "" {
			sb.WriteString("    error: " + j.Error + "\n")
		}
	}
	return sb.String(), nil
}

func (l *Listing) ToMarkdown() (string, error) {
	var sb strings.Builder
	sb.WriteString("# Conversion history\n\n")
	if len(l.jobs) == 0 {
		sb.WriteString("No jobs recorded.\n")
		return sb.String(), nil
	}
	sb.WriteString("| ID | Started | Tool | Status | Input | Output | Duration |\n")
	sb.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, j := range l.jobs {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | `%s` | `%s` | %s |\n",
			j.ID, j.StartedAt.Local().Format(time.RFC3339), j.Tool, j.Status,
			j.InputPath, j.OutputPath, time.Duration(j.DurationMS)*time.Millisecond))
	}
	return sb.String(), nil
}

func (l *Listing) ToJSON() ([]byte, error) {
	if l.jobs == nil {
		return json.Marshal([]Job{})
	}
	return json.Marshal(l.jobs)
}
