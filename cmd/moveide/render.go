package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"moveide/internal/diag"
	"moveide/internal/diagfmt"
	"moveide/internal/driver"
)

type renderFormat uint8

const (
	renderPretty renderFormat = iota
	renderJSON
	renderShort
	renderGolden
)

func parseRenderFormat(s string) (renderFormat, error) {
	switch strings.ToLower(s) {
	case "", "pretty":
		return renderPretty, nil
	case "json":
		return renderJSON, nil
	case "short":
		return renderShort, nil
	case "golden":
		return renderGolden, nil
	default:
		return renderPretty, fmt.Errorf("unknown format %q (expected pretty|json|short|golden)", s)
	}
}

var renderCmd = &cobra.Command{
	Use:   "render [flags] <fixture.toml|directory>",
	Short: "Render recorded IDE annotations as diagnostics",
	Long: `Replay the annotations recorded in a fixture (or every *.toml fixture within a
directory) and print them as informational diagnostics`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("format", "pretty", "output format (pretty|json|short|golden)")
	renderCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	renderCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	renderCmd.Flags().Int("max-diagnostics", 0, "maximum number of diagnostics to keep (0=all)")
	renderCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	renderCmd.Flags().Bool("disk-cache", false, "reuse rendered output of unchanged fixtures across runs")
	renderCmd.Flags().Int("wrap", 0, "wrap pretty messages and notes at this many columns (0=off)")
	renderCmd.Flags().String("ui", "off", "show a progress view on stderr (auto|on|off)")
}

type renderOptions struct {
	format    renderFormat
	withNotes bool
	color     bool
	pathMode  diagfmt.PathMode
	wrap      int
	timings   bool
	ui        uiMode
	driver    driver.Options
}

func renderOptionsFromFlags(cmd *cobra.Command, cfg projectConfig) (renderOptions, error) {
	var opts renderOptions
	flags := cmd.Flags()

	formatStr, err := flags.GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	if !flags.Changed("format") && cfg.Render.Format != "" {
		formatStr = cfg.Render.Format
	}
	if opts.format, err = parseRenderFormat(formatStr); err != nil {
		return opts, err
	}

	if opts.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if !flags.Changed("with-notes") {
		opts.withNotes = opts.withNotes || cfg.Render.WithNotes
	}

	if opts.driver.Jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") && cfg.Render.Jobs > 0 {
		opts.driver.Jobs = cfg.Render.Jobs
	}
	if opts.driver.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	pathModeStr, err := flags.GetString("path-mode")
	if err != nil {
		return opts, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if opts.pathMode, ok = diagfmt.ParsePathMode(pathModeStr); !ok {
		return opts, fmt.Errorf("unknown path mode %q", pathModeStr)
	}

	if opts.wrap, err = flags.GetInt("wrap"); err != nil {
		return opts, fmt.Errorf("failed to get wrap flag: %w", err)
	}

	diskCache, err := flags.GetBool("disk-cache")
	if err != nil {
		return opts, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	if diskCache {
		if opts.driver.Cache, err = driver.OpenDiskCache("moveide"); err != nil {
			return opts, fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	uiStr, err := flags.GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = readUIMode(uiStr); err != nil {
		return opts, err
	}

	if opts.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.color, err = useColor(cmd, cfg); err != nil {
		return opts, err
	}
	return opts, nil
}

// runRender exits with a non-zero status when any fixture produced an error
// diagnostic (a source that could not be loaded).
func runRender(cmd *cobra.Command, args []string) error {
	exitCode, err := render(cmd, args[0])
	if err != nil {
		return err
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

func render(cmd *cobra.Command, target string) (int, error) {
	cfg, err := loadConfig(target)
	if err != nil {
		return 0, err
	}
	opts, err := renderOptionsFromFlags(cmd, cfg)
	if err != nil {
		return 0, err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return 0, err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return 0, err
	}
	defer stopProfiling()

	var res *driver.Result
	if shouldUseTUI(opts.ui) {
		files, listErr := driver.Fixtures(target)
		if listErr != nil {
			return 0, listErr
		}
		res, err = analyzeWithUI(cmd.Context(), "moveide render", target, files, opts.driver)
	} else {
		res, err = driver.Analyze(cmd.Context(), target, opts.driver)
	}
	if err != nil {
		return 0, err
	}

	phase := res.Timer.Begin("render")
	err = writeRender(cmd.OutOrStdout(), res, opts)
	res.Timer.End(phase, "")
	if err != nil {
		return 0, err
	}
	if opts.timings {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	if res.Bag.HasErrors() {
		return 1, nil
	}
	return 0, nil
}

func writeRender(w io.Writer, res *driver.Result, opts renderOptions) error {
	switch opts.format {
	case renderJSON:
		return diagfmt.JSON(w, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			IncludeNotes:     opts.withNotes,
		})
	case renderShort, renderGolden:
		format := diag.FormatShortDiagnostics
		if opts.format == renderGolden {
			format = diag.FormatGoldenDiagnostics
		}
		out := format(res.Bag.Items(), res.FileSet, opts.withNotes)
		if out == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, out)
		return err
	default:
		return diagfmt.Pretty(w, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     opts.color,
			Context:   1,
			PathMode:  opts.pathMode,
			ShowNotes: opts.withNotes,
			Wrap:      opts.wrap,
		})
	}
}
