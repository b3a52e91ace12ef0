package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"julint/internal/driver"
	"julint/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.jl|->",
	Short: "Apply the negated-membership auto-fix and emit the result",
	Long: `Run the checker and emit only the fixed text: every
"<s>" not in <expr> rewritten to !<s> in <expr>. Without -w the fixed
text goes to stdout; with -w the file is rewritten in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolP("write", "w", false, "rewrite the file in place instead of printing")
	fixCmd.Flags().StringSlice("disable", nil, "rule names to skip")
	fixCmd.Flags().Bool("cache", false, "replay cached results for unchanged files")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	if write && target == "-" {
		return fmt.Errorf("-w cannot be used with stdin")
	}

	opts, err := checkFlags(cmd, startDirFor(target))
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	var res *driver.Result
	if target == "-" {
		res, err = driver.CheckReader(cmd.Context(), fileSet, "<stdin>", cmd.InOrStdin(), opts)
	} else {
		res, err = driver.CheckFile(cmd.Context(), fileSet, target, opts)
	}
	if err != nil {
		return err
	}

	report := res.Report
	if !report.AutoFixed {
		fmt.Fprintln(cmd.ErrOrStderr(), "No applicable fixes found.")
		if !write {
			// echo the input unchanged so the command still pipes cleanly
			fmt.Fprintf(cmd.OutOrStdout(), "%s", report.File.Content)
		}
		return nil
	}

	if write {
		if err := os.WriteFile(target, report.Fixed, 0o644); err != nil {
			return fmt.Errorf("failed to write %q: %w", target, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Fixed %s\n", target)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s", report.Fixed)
	return nil
}

func startDirFor(target string) string {
	if target == "-" {
		return "."
	}
	return filepath.Dir(target)
}
