package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lovepdf/internal/browser"
	"lovepdf/internal/catalog"
	"lovepdf/internal/converter"
	"lovepdf/internal/formatter"

	"github.com/spf13/cobra"
)

var (
	toolsRemote  bool
	toolsFormat  string
	toolsTimeout time.Duration
	toolsProxy   string
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List available conversion tools",
	Long: `Tools lists the conversion tools this CLI can drive. With --remote it
renders the live iLovePDF home page instead and lists every tool the
site currently offers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var content formatter.Content

		if toolsRemote {
			cat, err := catalog.Fetch(context.Background(), browser.Config{
				ProxyURL: toolsProxy,
				Headless: true,
			}, toolsTimeout)
			if err != nil {
				return fmt.Errorf("failed to fetch tool catalog: %w", err)
			}
			content = cat
		} else {
			content = localToolList()
		}

		out, err := formatter.Format(content, toolsFormat)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		fmt.Print(out)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	toolsCmd.Flags().BoolVar(&toolsRemote, "remote", false, "list tools from the live site instead of the built-ins")
	toolsCmd.Flags().StringVarP(&toolsFormat, "format", "f", "text", "output format (text, markdown, json)")
	toolsCmd.Flags().DurationVarP(&toolsTimeout, "timeout", "t", 30*time.Second, "timeout for fetching the remote catalog")
	toolsCmd.Flags().StringVarP(&toolsProxy, "proxy", "p", "", "proxy URL for fetching the remote catalog")

	rootCmd.AddCommand(toolsCmd)
}

// toolList renders the built-in tool registry.
type toolList struct {
	tools []converter.Tool
}

func localToolList() *toolList {
	names := converter.Names()
	tools := make([]converter.Tool, 0, len(names))
	for _, name := range names {
		if t, ok := converter.Get(name); ok {
			tools = append(tools, t)
		}
	}
	return &toolList{tools: tools}
}

func (l *toolList) ToText() (string, error) {
	var sb strings.Builder
	for _, t := range l.tools {
		sb.WriteString(fmt.Sprintf("%-10s %s (%s -> %s)\n", t.Name(), t.Title(),
			strings.Join(t.InputExts(), "/"), t.OutputExt()))
		sb.WriteString("           " + t.PageURL() + "\n")
	}
	return sb.String(), nil
}

func (l *toolList) ToMarkdown() (string, error) {
	var sb strings.Builder
	sb.WriteString("# Built-in tools\n\n")
	sb.WriteString("| Name | Tool | Input | Output |\n")
	sb.WriteString("| --- | --- | --- | --- |\n")
	for _, t := range l.tools {
		sb.WriteString(fmt.Sprintf("| %s | [%s](%s) | %s | %s |\n",
			t.Name(), t.Title(), t.PageURL(), strings.Join(t.InputExts(), ", "), t.OutputExt()))
	}
	return sb.String(), nil
}

func (l *toolList) ToJSON() ([]byte, error) {
	type jsonTool struct {
		Name      string   `json:"name"`
		Title     string   `json:"title"`
		URL       string   `json:"url"`
		InputExts []string `json:"input_exts"`
		OutputExt string   `json:"output_ext"`
	}
	tools := make([]jsonTool, 0, len(l.tools))
	for _, t := range l.tools {
		tools = append(tools, jsonTool{
			Name:      t.Name(),
			Title:     t.Title(),
			URL:       t.PageURL(),
			InputExts: t.InputExts(),
			OutputExt: t.OutputExt(),
		})
	}
	return json.Marshal(tools)
}
