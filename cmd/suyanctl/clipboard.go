package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"suyan/internal/clipboard"
	"suyan/internal/config"
)

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Inspect the clipboard history database",
}

var clipboardListLimit int

var clipboardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent clipboard history entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openClipboardStore()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.GetAllRecords(clipboardListLimit, 0)
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		printRecords(records)
		return nil
	},
}

var clipboardSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search clipboard history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openClipboardStore()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.SearchText(args[0], clipboardListLimit)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		printRecords(records)
		return nil
	},
}

func init() {
	clipboardCmd.PersistentFlags().IntVarP(&clipboardListLimit, "limit", "n", 20, "maximum number of records to show")
	clipboardCmd.AddCommand(clipboardListCmd, clipboardSearchCmd)
}

func openClipboardStore() (*clipboard.Store, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return clipboard.Open(cfg.DatabasePath, func() int64 { return time.Now().UnixMilli() })
}

func printRecords(records []clipboard.Record) {
	if len(records) == 0 {
		fmt.Println("no records")
		return
	}
	for _, r := range records {
		when := time.UnixMilli(r.LastUsedAt).Format(time.RFC3339)
		switch r.Type {
		case clipboard.ContentImage:
			fmt.Printf("[%d] %s  image %dx%d (%s)\n", r.ID, when, r.ImageWidth, r.ImageHeight, r.ImageFormat)
		default:
			fmt.Printf("[%d] %s  %s\n", r.ID, when, truncate(r.Content, 80))
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
