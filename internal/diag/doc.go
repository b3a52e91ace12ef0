// Package diag defines the diagnostic model shared by the lint rules, the
// driver, and the output formatters.
//
// Diagnostic is the central record: a Severity, a stable Code, a message,
// a primary source.Span (the zero span for whole-file findings), optional
// Notes, and optional Fixes carrying concrete text edits.
//
// Rules collect diagnostics into a Bag. The bag preserves emission order:
// the checker runs its rules in a fixed sequence and reports issues in
// that sequence, never in lexical order, so the bag has no Sort. The bag
// is also unbounded; reports truncate to their first N entries at render
// time while still quoting the full count.
//
// Rendering responsibilities live in internal/lintfmt; orchestration and
// caching live in internal/driver. Keep the data model deterministic and
// side-effect free so diagnostics can be serialized for the disk cache.
package diag
