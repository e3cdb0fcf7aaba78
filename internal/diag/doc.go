// Package diag defines the diagnostic model shared by the lexer, the driver
// and the renderers.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Kind – error, warning, note or help (kind.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – human oriented text; keep it short and actionable.
//   - Labels – spans with an optional message and a primary/secondary style.
//
// A label message is structured (LabelMessage): a text before and after an
// optional slot that the renderer fills with the source text under the span.
//
// # Coalescing
//
// Bag.Push folds a diagnostic into the previous one when both have the same
// kind and message and their first labels share a span or touch. After a fold
// the labels are sorted, exact duplicates dropped and touching labels with the
// same style and message fused. A run of single-character lexer errors thus
// becomes one diagnostic with one wide label.
//
// # Scope
//
// Package diag does not format for humans and performs no IO. Rendering lives
// in internal/diagfmt; orchestration lives in internal/driver.
package diag
