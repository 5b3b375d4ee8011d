package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wwdctools/wwdc-parser/internal/fetch"
	"github.com/wwdctools/wwdc-parser/internal/index"
	"github.com/wwdctools/wwdc-parser/internal/parse"
	"github.com/wwdctools/wwdc-parser/pkg/types"
)

const (
	defaultTimeout = 30 * time.Second
	defaultDelay   = 1 * time.Second
)

var parseCmd = &cobra.Command{
	Use:   "parse [urls...]",
	Short: "Fetch pages and convert them to markdown files",
	Long: `Parse fetches each URL, extracts its content, and writes one markdown
file per URL into the output directory, named from the page title
(e.g. wwdc_video_meet_swiftui.md). Existing output files are skipped.

The batch continues after individual failures and exits non-zero if any
URL failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("provide one or more page URLs")
		}
		return runParse(cmd, args)
	},
}

func init() {
	addParseFlags(parseCmd)
	rootCmd.AddCommand(parseCmd)
}

// addParseFlags registers the parse flag set. The root command carries the
// same flags so the legacy bare-URL invocation accepts them too.
func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("content-type", "c", "video", "type of page to parse: video or document")
	cmd.Flags().String("renderer", "auto", "how to fetch page HTML: auto, static, or browser")
	cmd.Flags().String("out-dir", "", "directory for markdown output (default \".\")")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	cmd.Flags().Duration("delay", 0, "delay between consecutive fetches (default 1s)")
	cmd.Flags().Float64("rate", 0, "maximum fetch rate in requests per second (default 2)")
	cmd.Flags().Bool("no-index", false, "do not record parsed pages in the local index")
	cmd.Flags().String("index-dir", "", "directory for the page index database")
}

func runParse(cmd *cobra.Command, args []string) error {
	contentType, _ := cmd.Flags().GetString("content-type")
	ct := types.ContentType(contentType)
	if !ct.Valid() {
		return fmt.Errorf("invalid content type %q (want video or document)", contentType)
	}

	rendererFlag, _ := cmd.Flags().GetString("renderer")
	renderer := types.RendererKind(rendererFlag)
	if !renderer.Valid() {
		return fmt.Errorf("invalid renderer %q (want auto, static, or browser)", rendererFlag)
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("fetch.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viper.GetDuration("parse.delay")
	}
	if delay == 0 {
		delay = defaultDelay
	}
	rateLimit, _ := cmd.Flags().GetFloat64("rate")
	if rateLimit == 0 {
		rateLimit = viper.GetFloat64("fetch.rate_limit")
	}
	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = viper.GetString("parse.out_dir")
	}
	noIndex, _ := cmd.Flags().GetBool("no-index")
	indexDir, _ := cmd.Flags().GetString("index-dir")
	if indexDir == "" {
		indexDir = viper.GetString("index.dir")
	}

	static := fetch.New(types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString("fetch.user_agent"),
		},
		RateLimit: rateLimit,
	})

	// The browser is launched lazily, so constructing it is free unless a
	// documentation page actually needs it.
	var browser fetch.Renderer
	if renderer != types.RendererStatic {
		b := fetch.NewBrowser(types.BrowserConfig{
			NavigateTimeout: timeout,
			RemoteURL:       viper.GetString("browser.remote_url"),
		})
		defer b.Close()
		browser = b
	}

	var indexer parse.Indexer
	if !noIndex {
		store, err := index.Open(types.IndexConfig{Dir: indexDir})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: page index unavailable: %v\n", err)
		} else {
			defer store.Close()
			indexer = store
		}
	}

	pipeline := parse.NewPipeline(static, browser, indexer, types.ParseConfig{
		ContentType:   ct,
		Renderer:      renderer,
		OutDir:        outDir,
		Delay:         delay,
		IndexDisabled: noIndex,
	})

	result := pipeline.ParseBatch(cmd.Context(), args, &statusWriter{w: os.Stdout})
	if result.HasFailures() {
		return fmt.Errorf("%d page(s) failed", result.Failed)
	}
	return nil
}

// statusWriter colors pipeline status lines by their prefix. The pipeline
// itself stays color-free so library output is plain text.
type statusWriter struct {
	w io.Writer
}

func (s *statusWriter) Write(p []byte) (int, error) {
	line := string(p)
	switch {
	case strings.HasPrefix(line, "parsed:"):
		color.New(color.FgGreen).Fprint(s.w, line)
	case strings.HasPrefix(line, "skipped:"):
		color.New(color.FgYellow).Fprint(s.w, line)
	case strings.HasPrefix(line, "failed:"):
		color.New(color.FgRed).Fprint(s.w, line)
	default:
		fmt.Fprint(s.w, line)
	}
	return len(p), nil
}
