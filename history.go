package main

import (
	"context"
	"fmt"

	"lovepdf/internal/formatter"
	"lovepdf/internal/history"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	historyLimit  int
	historyFormat string
	historyExport string
	historyDB     string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversion jobs",
	Long: `History lists conversions recorded in the local job database, newest
first. With --export it writes the full history to a YAML or JSON file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := historyDB
		if dbPath == "" {
			dbPath = viper.GetString("history_db")
		}
		if dbPath == "" {
			var err error
			dbPath, err = history.DefaultPath()
			if err != nil {
				return err
			}
		}

		store, err := history.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()

		if historyExport != "" {
			if err := store.Export(ctx, historyExport); err != nil {
				return err
			}
			fmt.Println("exported to", historyExport)
			return nil
		}

		jobs, err := store.List(ctx, historyLimit)
		if err != nil {
			return err
		}

		out, err := formatter.Format(history.NewListing(jobs), historyFormat)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		fmt.Print(out)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of jobs to list")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "output format (text, markdown, json)")
	historyCmd.Flags().StringVar(&historyExport, "export", "", "export the full history to FILE.yaml or FILE.json")
	historyCmd.Flags().StringVar(&historyDB, "db", "", "history database path (default: ~/.local/share/lovepdf/history.db)")

	rootCmd.AddCommand(historyCmd)
}
