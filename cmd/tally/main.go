package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chriscorrea/tally/internal/app"
	"github.com/chriscorrea/tally/internal/freq"
	"github.com/chriscorrea/tally/internal/normalize"
	"github.com/chriscorrea/tally/internal/output"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	// get flag values
	charsFlag, _ := cmd.Flags().GetBool("chars")
	linesFlag, _ := cmd.Flags().GetBool("lines")
	textFlag, _ := cmd.Flags().GetBool("text")
	jsonFlag, _ := cmd.Flags().GetBool("json")
	csvFlag, _ := cmd.Flags().GetBool("csv")
	selector, _ := cmd.Flags().GetString("selector")
	lower, _ := cmd.Flags().GetBool("lower")
	stem, _ := cmd.Flags().GetBool("stem")
	noStopwords, _ := cmd.Flags().GetBool("no-stopwords")
	minCount, _ := cmd.Flags().GetInt("min-count")
	top, _ := cmd.Flags().GetInt("top")
	summary, _ := cmd.Flags().GetBool("summary")
	includeAll, _ := cmd.Flags().GetBool("include-all")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	// determine counting mode (words is the default)
	var mode freq.Mode
	switch {
	case charsFlag:
		mode = freq.Char
	case linesFlag:
		mode = freq.Line
	default:
		mode = freq.Word
	}

	// determine output format
	var outputFormat output.Format
	switch {
	case jsonFlag:
		outputFormat = output.JSON
	case csvFlag:
		outputFormat = output.CSV
	case textFlag:
		outputFormat = output.Text
	default:
		outputFormat = output.Text // default if no format flag
	}

	// use positional arguments as sources
	var sources []string
	if len(args) == 0 {
		// no arguments provided - use stdin
		sources = append(sources, "-")
	} else {
		sources = args
	}

	// return constructed config
	return app.Config{
		Sources:      sources,
		Mode:         mode,
		Selector:     selector,
		OutputFormat: outputFormat,
		Normalize: normalize.Options{
			Lower:         lower,
			Stem:          stem,
			DropStopwords: noStopwords,
			MinCount:      minCount,
			Top:           top,
		},
		ShowSummary: summary,
		IncludeAll:  includeAll,
		Quiet:       quiet,
		Debug:       debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "tally [sources...]",
	Short: "A CLI tool for computing frequency tables over text",
	Long: `Tally counts how often each distinct character, word, or line occurs in its input and prints the resulting frequency table. Sources may include URLs, local files, or standard input; HTML sources are reduced to readable text before counting.

Examples:
  tally document.txt
  tally --lines access.log
  cat essay.md | tally --lower --no-stopwords --top 20
  tally --chars https://example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// build config from flags and arguments
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		// configure logging pending debug flag
		setupLogger(config.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// run the app!
		result, err := app.Run(ctx, config)
		if err != nil {
			return fmt.Errorf("tally failed: %w", err)
		}

		fmt.Print(result)

		return nil
	},
}

func init() {
	// counting mode flags
	rootCmd.Flags().BoolP("chars", "c", false, "Count individual Unicode characters")
	rootCmd.Flags().BoolP("words", "w", false, "Count words (default)")
	rootCmd.Flags().BoolP("lines", "l", false, "Count whole lines")

	// mode flags are mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("chars", "words", "lines")

	// output format flags
	rootCmd.Flags().Bool("text", false, "Output aligned text columns (default)")
	rootCmd.Flags().Bool("json", false, "Output in JSON format")
	rootCmd.Flags().Bool("csv", false, "Output in CSV format")

	// output format flags are mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("text", "json", "csv")

	// word-token shaping flags
	rootCmd.Flags().Bool("lower", false, "Fold word tokens to lower case before counting")
	rootCmd.Flags().Bool("stem", false, "Reduce word tokens to their English stem")
	rootCmd.Flags().Bool("no-stopwords", false, "Drop common English stopwords from word counts")
	rootCmd.Flags().Int("min-count", 0, "Only report tokens occurring at least N times")
	rootCmd.Flags().IntP("top", "n", 0, "Only report the N most frequent tokens")

	// HTML source handling
	rootCmd.Flags().StringP("selector", "s", "", "CSS selector for extraction from HTML sources")
	rootCmd.Flags().BoolP("include-all", "i", false, "Include all HTML content without readability filtering")

	// other flags
	rootCmd.Flags().Bool("summary", false, "Append whole-document totals (characters, words, sentences, tokens)")
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress warning and progress messages")
	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.Flags().MarkHidden("debug")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
