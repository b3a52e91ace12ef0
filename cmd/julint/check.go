package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"julint/internal/diag"
	"julint/internal/driver"
	"julint/internal/lint"
	"julint/internal/lintfmt"
	"julint/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.jl|directory|->",
	Short: "Run the heuristic checks on a file, directory, or stdin",
	Long: `Run the fixed battery of nine pattern checks and print the report.
'-' reads the whole input from stdin. A directory is walked for *.jl
files, which are checked in parallel.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Bool("context", false, "show source context for issues with positions")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("cache", false, "replay cached results for unchanged files")
	checkCmd.Flags().StringSlice("disable", nil, "rule names to skip (see 'julint check --list-rules')")
	checkCmd.Flags().Bool("list-rules", false, "list rule names in execution order and exit")
}

// checkFlags resolves flags and julint.toml into driver options. Explicit
// flags win over the config file; the config file wins over defaults.
func checkFlags(cmd *cobra.Command, startDir string) (driver.Options, error) {
	var opts driver.Options

	maxIssues, err := cmd.Root().PersistentFlags().GetInt("max-issues")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-issues flag: %w", err)
	}
	disable, err := cmd.Flags().GetStringSlice("disable")
	if err != nil {
		return opts, fmt.Errorf("failed to get disable flag: %w", err)
	}
	enableCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return opts, fmt.Errorf("failed to get cache flag: %w", err)
	}

	cfg, ok, err := loadToolConfig(startDir)
	if err != nil {
		return opts, err
	}
	if ok {
		if maxIssues == 0 {
			maxIssues = cfg.Lint.MaxIssues
		}
		if len(disable) == 0 {
			disable = cfg.Lint.Disable
		}
	}

	opts.Lint = lint.Options{MaxIssues: maxIssues, Disable: disable}
	opts.EnableDiskCache = enableCache
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	if listRules, _ := cmd.Flags().GetBool("list-rules"); listRules {
		for _, name := range lint.RuleNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	showContext, err := cmd.Flags().GetBool("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	if target == "-" {
		opts, err := checkFlags(cmd, ".")
		if err != nil {
			return err
		}
		fileSet := source.NewFileSet()
		res, err := driver.CheckReader(cmd.Context(), fileSet, "<stdin>", cmd.InOrStdin(), opts)
		if err != nil {
			return err
		}
		return renderResults(cmd, fileSet, []*driver.Result{res}, format, showContext, fullPath, false)
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	startDir := target
	if !st.IsDir() {
		startDir = filepath.Dir(target)
	}
	opts, err := checkFlags(cmd, startDir)
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	if !st.IsDir() {
		res, err := driver.CheckFile(cmd.Context(), fileSet, target, opts)
		if err != nil {
			return err
		}
		return renderResults(cmd, fileSet, []*driver.Result{res}, format, showContext, fullPath, false)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	results, err := driver.CheckDir(cmd.Context(), fileSet, target, opts, jobs)
	if err != nil {
		return err
	}
	return renderResults(cmd, fileSet, results, format, showContext, fullPath, true)
}

func renderResults(cmd *cobra.Command, fileSet *source.FileSet, results []*driver.Result, format string, showContext, fullPath, multi bool) error {
	out := cmd.OutOrStdout()
	pathMode := lintfmt.PathModeAuto
	if fullPath {
		pathMode = lintfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		prettyOpts := lintfmt.PrettyOpts{
			Color:       useColor(cmd, os.Stdout),
			PathMode:    pathMode,
			ShowContext: showContext,
		}
		for idx, res := range results {
			if idx > 0 {
				fmt.Fprintln(out)
			}
			if multi {
				displayPath := fileSet.Get(res.FileID).FormatPath(pathMode.FormatArg(), fileSet.BaseDir())
				fmt.Fprintf(out, "== %s ==\n", displayPath)
			}
			lintfmt.Pretty(out, res.Report, fileSet, prettyOpts)
		}

	case "short":
		for _, res := range results {
			output := diag.FormatShortDiagnostics(res.Report.Issues(), fileSet, false)
			if output != "" {
				fmt.Fprintln(out, output)
			}
		}

	case "json":
		jsonOpts := lintfmt.JSONOpts{
			PathMode:     pathMode,
			IncludeFixes: true,
			IncludeCode:  true,
		}
		if !multi {
			return lintfmt.JSON(out, results[0].Report, fileSet, jsonOpts)
		}
		reports := make([]*lint.Report, 0, len(results))
		for _, res := range results {
			reports = append(reports, res.Report)
		}
		return lintfmt.JSONAll(out, reports, fileSet, jsonOpts)
	}
	return nil
}
