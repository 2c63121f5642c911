package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"moveide/internal/cursor"
	"moveide/internal/driver"
)

var cursorCmd = &cobra.Command{
	Use:   "cursor [flags] <directory>",
	Short: "Show the annotations under a cursor position",
	Long: `Replay every fixture within a directory and print what was recorded at an
LSP position (0-based line, UTF-16 character) of one Move source`,
	Args: cobra.ExactArgs(1),
	RunE: runCursor,
}

func init() {
	cursorCmd.Flags().String("file", "", "Move source, relative to the directory")
	cursorCmd.Flags().Uint32("line", 0, "0-based line")
	cursorCmd.Flags().Uint32("character", 0, "0-based UTF-16 character offset")
	cursorCmd.Flags().Int("context", 1, "source lines to show around the cursor")
	_ = cursorCmd.MarkFlagRequired("file")
}

func runCursor(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	line, err := cmd.Flags().GetUint32("line")
	if err != nil {
		return fmt.Errorf("failed to get line flag: %w", err)
	}
	character, err := cmd.Flags().GetUint32("character")
	if err != nil {
		return fmt.Errorf("failed to get character flag: %w", err)
	}
	contextLines, err := cmd.Flags().GetInt("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	if !cmd.Flags().Changed("context") && cfg.Cursor.ContextLines > 0 {
		contextLines = cfg.Cursor.ContextLines
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	res, err := driver.Analyze(cmd.Context(), dir, driver.Options{Jobs: cfg.Render.Jobs})
	if err != nil {
		return err
	}
	id, ok := res.FileSet.GetLatest(filepath.Join(dir, filepath.FromSlash(file)))
	if !ok {
		return fmt.Errorf("%s: no fixture in %s loads this file", file, dir)
	}

	phase := res.Timer.Begin("cursor")
	pos := protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(character)}
	cc := cursor.Query{ContextLines: contextLines}.Lookup(res.FileSet, res.Info, id, pos)
	res.Timer.End(phase, fmt.Sprintf("%d entries", len(cc.Kinds())))

	fmt.Fprint(cmd.OutOrStdout(), cc.String())
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	return nil
}
