// Package diag defines the error records produced by the engine's lexer and
// parser.
//
// Diagnostic is the central record: severity, stable numeric code, message,
// primary span and optional notes. Producers emit through the Reporter
// interface; Bag is the default bounded storage. Package diag does not do IO;
// FormatGoldenDiagnostics renders a deterministic one-line-per-entry form used
// in harness failure messages and tests.
package diag
