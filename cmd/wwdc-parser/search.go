package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over parsed page content",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("provide a search query")
		}
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openIndex(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		pages, err := store.Search(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		printPages(pages)
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of results (default 20)")
	searchCmd.Flags().String("index-dir", "", "directory for the page index database")
	rootCmd.AddCommand(searchCmd)
}
