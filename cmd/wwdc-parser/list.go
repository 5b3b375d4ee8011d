package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wwdctools/wwdc-parser/internal/index"
	"github.com/wwdctools/wwdc-parser/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently parsed pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openIndex(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		pages, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		printPages(pages)
		return nil
	},
}

func init() {
	listCmd.Flags().Int("limit", 0, "maximum number of pages to show (default 20)")
	listCmd.Flags().String("index-dir", "", "directory for the page index database")
	rootCmd.AddCommand(listCmd)
}

func openIndex(cmd *cobra.Command) (*index.Store, error) {
	dir, _ := cmd.Flags().GetString("index-dir")
	if dir == "" {
		dir = viper.GetString("index.dir")
	}
	return index.Open(types.IndexConfig{Dir: dir})
}

func printPages(pages []types.Page) {
	if len(pages) == 0 {
		fmt.Println("no pages in the index")
		return
	}
	w := os.Stdout
	for _, p := range pages {
		fmt.Fprintf(w, "%s  %-8s  %s\n", p.ParsedAt.Format("2006-01-02 15:04"), p.ContentType, p.Title)
		fmt.Fprintf(w, "                    %s -> %s\n", p.URL, p.OutputPath)
	}
}
