package lintfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// FormatArg returns the string mode source.File.FormatPath expects.
func (m PathMode) FormatArg() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of a report.
type PrettyOpts struct {
	Color       bool
	PathMode    PathMode
	ShowContext bool // print source line + caret for issues with spans
}

// JSONOpts configures JSON output of a report.
type JSONOpts struct {
	PathMode     PathMode
	IncludeFixes bool
	IncludeCode  bool // embed the echoed code in the payload
}
