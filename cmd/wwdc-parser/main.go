// Package main is the entry point for the wwdc-parser CLI, which converts
// WWDC session video pages and Apple Developer documentation pages into
// markdown files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Invoking it with bare URL arguments is the
// legacy form of "parse" and converts them as video pages.
var rootCmd = &cobra.Command{
	Use:   "wwdc-parser [urls...]",
	Short: "Convert WWDC videos and Apple documentation to markdown",
	Long: `wwdc-parser fetches WWDC session video pages and Apple Developer
documentation pages and converts them into markdown files in the output
directory, one file per URL.

Video pages are fetched with a plain HTTP GET; documentation pages are
rendered in headless Chrome because their content is built by JavaScript.
Parsed pages are recorded in a local index that "list" and "search" query.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runParse(cmd, args)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./wwdc-parser.yaml or ~/.config/wwdc-parser/config.yaml)")
	addParseFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wwdc-parser")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wwdc-parser"))
		}
	}

	viper.SetEnvPrefix("WWDC_PARSER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
