// Package logging assembles the slog loggers used by the nbhooks commands.
//
// Hook findings are written to stdout for pre-commit to relay; diagnostic
// logging therefore defaults to stderr. The package owns the console and JSON
// handlers and tags records with the run, file, and check being processed.
package logging
