// Package diag defines the diagnostic model that IDE annotations are
// rendered into.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error (severity.go). Every IDE annotation is Info.
//   - Code – compact numeric identifier with a stable string form (codes.go),
//     one per annotation category (IDE1001..IDE1005).
//   - Message – the primary, human oriented text.
//   - Primary span – the source.Span the annotation was recorded at.
//   - Notes – secondary messages; for IDE annotations they share the primary span.
//
// # Emitting
//
// Producers either build diagnostics directly (New, WithNote) or go through a
// Reporter, optionally assembling them with Start/StartInfo first;
// BagReporter collects into a Bag.
//
// # Golden output
//
// FormatGoldenDiagnostics renders one line per diagnostic and note in the
// given order; nothing is sorted or deduplicated, so identical input always
// yields byte-identical output. FormatShortDiagnostics is the sorted variant
// for the CLI.
package diag
