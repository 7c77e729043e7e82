// Package main is the entry point for the lovepdf CLI, a tool that converts
// documents by driving the iLovePDF web service in a headless browser.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lovepdf/internal/converter"
	"lovepdf/internal/formatter"
	"lovepdf/internal/history"
	"lovepdf/internal/progress"
	"lovepdf/internal/receipt"
	"lovepdf/internal/session"
	_ "lovepdf/internal/tools/compress"
	_ "lovepdf/internal/tools/officepdf"
	_ "lovepdf/internal/tools/pdfword"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	toolName        string
	downloadDir     string
	outputPath      string
	outputFormat    string
	timeout         time.Duration
	downloadTimeout time.Duration
	showUI          bool
	proxyURL        string
	force           bool
	verbose         bool
	noColor         bool
	noHistory       bool
)

var rootCmd = &cobra.Command{
	Use:     "lovepdf [FILE]",
	Short:   "Convert documents through the iLovePDF website",
	Version: version,
	Long: `lovepdf is a command-line tool that converts documents by driving the
iLovePDF web service in a headless Chromium browser: it uploads a local
file to a tool page, waits for the server-side task to finish and
downloads the result.`,
	Example: `  # Convert a PDF to Word, saved in ~/Downloads
  lovepdf document.pdf

  # Convert to a specific output file
  lovepdf -o report.docx document.pdf

  # Compress a PDF, watching the browser work
  lovepdf --tool compress --showui big.pdf

  # Convert a Word document to PDF into a chosen directory
  lovepdf --tool officepdf -d ~/Desktop letter.docx

  # List the tools the site offers
  lovepdf tools --remote`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			cmd.Help()
			os.Exit(0)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lovepdf.yaml or ~/.config/lovepdf/config.yaml)")

	rootCmd.Flags().StringVar(&toolName, "tool", "pdfword", "conversion tool to run (see 'lovepdf tools')")
	rootCmd.Flags().StringVarP(&downloadDir, "dir", "d", "", "download directory (default: ~/Downloads)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: name chosen by the site)")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "receipt format (text, markdown, json)")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 60*time.Second, "per-step timeout for page loads and conversion")
	rootCmd.Flags().DurationVar(&downloadTimeout, "download-timeout", 120*time.Second, "timeout for the download to finish on disk")
	rootCmd.Flags().BoolVar(&showUI, "showui", false, "show browser UI (disable headless mode)")
	rootCmd.Flags().StringVarP(&proxyURL, "proxy", "p", os.Getenv("LOVEPDF_PROXY"), "proxy URL (e.g. http://127.0.0.1:7890), defaults to LOVEPDF_PROXY env var")
	rootCmd.Flags().BoolVar(&force, "force", false, "allow replacing an existing output file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable styled progress output")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this run in the history database")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lovepdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lovepdf"))
		}
	}

	viper.SetEnvPrefix("LOVEPDF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func run(cmd *cobra.Command, args []string) error {
	input := args[0]

	applyConfig(cmd)
	if err := validateFlags(); err != nil {
		return err
	}
	setupLogging()

	t, ok := converter.Get(toolName)
	if !ok {
		return fmt.Errorf("unknown tool: %s (available: %s)", toolName, strings.Join(converter.Names(), ", "))
	}

	dir, err := resolveDownloadDir()
	if err != nil {
		return err
	}

	opts := converter.Options{
		DownloadDir:     dir,
		OutputPath:      outputPath,
		Timeout:         timeout,
		DownloadTimeout: downloadTimeout,
		ShowUI:          showUI,
		ProxyURL:        proxyURL,
		Force:           force,
	}

	ctx := context.Background()
	reporter := progress.New(os.Stderr, noColor)
	sess := session.New(reporter)

	started := time.Now()
	rcpt, convErr := sess.Convert(ctx, t, input, opts)

	if !noHistory {
		recordJob(ctx, t.Name(), input, started, rcpt, convErr)
	}

	if convErr != nil {
		return convErr
	}
	reporter.Done("saved %s", rcpt.OutputPath)

	out, err := formatter.Format(rcpt, outputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Println(out)

	return nil
}

// applyConfig fills in flags the user did not set from the config file.
func applyConfig(cmd *cobra.Command) {
	if !cmd.Flags().Changed("dir") && viper.GetString("download_dir") != "" {
		downloadDir = viper.GetString("download_dir")
	}
	if !cmd.Flags().Changed("timeout") && viper.IsSet("timeout") {
		timeout = viper.GetDuration("timeout")
	}
	if proxyURL == "" {
		proxyURL = viper.GetString("proxy")
	}
	if !cmd.Flags().Changed("showui") && viper.IsSet("headless") {
		showUI = !viper.GetBool("headless")
	}
}

func validateFlags() error {
	validFormats := map[string]bool{
		"text":     true,
		"markdown": true,
		"json":     true,
	}
	if !validFormats[outputFormat] {
		return fmt.Errorf("invalid output format: %s", outputFormat)
	}

	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", timeout)
	}
	if downloadTimeout <= 0 {
		return fmt.Errorf("download timeout must be positive, got %s", downloadTimeout)
	}

	return nil
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// resolveDownloadDir picks the download directory: flag, then config, then
// the user's Downloads directory (where browsers save by default).
func resolveDownloadDir() (string, error) {
	if downloadDir != "" {
		return downloadDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// recordJob stores the run in the history database. History failures are
// logged but never fail the conversion itself.
func recordJob(ctx context.Context, tool, input string, started time.Time, rcpt *receipt.Receipt, convErr error) {
	dbPath := viper.GetString("history_db")
	if dbPath == "" {
		var err error
		dbPath, err = history.DefaultPath()
		if err != nil {
			slog.Warn("failed to resolve history database path", "error", err)
			return
		}
	}

	store, err := history.Open(dbPath)
	if err != nil {
		slog.Warn("failed to open history database", "error", err)
		return
	}
	defer store.Close()

	job := history.Job{
		Tool:       tool,
		InputPath:  input,
		Status:     history.StatusOK,
		StartedAt:  started,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if rcpt != nil {
		job.InputPath = rcpt.InputPath
		job.InputBytes = rcpt.InputBytes
		job.OutputPath = rcpt.OutputPath
		job.OutputBytes = rcpt.OutputBytes
	}
	if convErr != nil {
		job.Status = history.StatusFailed
		job.Error = convErr.Error()
	}

	if _, err := store.Record(ctx, job); err != nil {
		slog.Warn("failed to record job", "error", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
