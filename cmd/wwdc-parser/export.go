package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the page index as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")

		store, err := openIndex(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		var w io.Writer = os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		switch format {
		case "yaml":
			return store.ExportYAML(cmd.Context(), w)
		case "json":
			return store.ExportJSON(cmd.Context(), w)
		default:
			return fmt.Errorf("unknown format %q (want yaml or json)", format)
		}
	},
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().StringP("out", "o", "", "write to a file instead of stdout")
	exportCmd.Flags().String("index-dir", "", "directory for the page index database")
	rootCmd.AddCommand(exportCmd)
}
