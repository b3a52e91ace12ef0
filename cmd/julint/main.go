package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"julint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "julint [file.jl|-]",
	Short: "Heuristic checker for Julia source code",
	Long: `julint runs a fixed battery of pattern checks over Julia source code:
block balance, catch syntax, quoting, indentation, Python leftovers, and
one auto-fix for negated membership tests. Pass a file, a directory, or
'-' to read from stdin; with no arguments it prints this usage.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		// bare `julint <path>` behaves like `julint check <path>` with
		// the check flags at their defaults
		checkCmd.SetContext(cmd.Context())
		return runCheck(checkCmd, args)
	},
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-issues", 0, "maximum number of issues to list per report (0=config or 10)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
