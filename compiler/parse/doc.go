// Package parse turns definition files into the typed schema model.
// A definition file holds CREATE TABLE statements and labeled queries;
// the parser classifies query placeholders from their syntactic
// position and accumulates diagnostics instead of stopping at the
// first problem.
package parse
