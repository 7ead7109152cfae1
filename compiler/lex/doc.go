// Package lex tokenizes the extended SQL dialect read from schema
// definition files.
//
// The scanner is total: every input yields a token sequence ending in
// EOF, and malformed input is reported through accumulated diagnostics
// rather than an aborted scan. Beyond standard SQL lexemes it
// recognizes the dialect's placeholder forms ("?", "?N", "$name",
// ":name", "@name") and the colon token used by labeled statements.
package lex
