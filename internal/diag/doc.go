// Package diag defines the diagnostic model shared by the lexer and parser.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX1001, SYN2001, ...), a short Message, the Primary span and
// optional Notes pointing at related spans.
//
// Producers emit through a Reporter so storage stays decoupled: BagReporter
// collects into a Bag, which supports a size limit, sorting and merging.
// Rendering lives in internal/diagfmt.
package diag
