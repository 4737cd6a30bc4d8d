// Package logging constructs the slog loggers used across clipbatch.
//
// Two output formats are supported: a console format meant for interactive
// runs and a JSON format for captured logs. Components attach themselves via
// the "component" attribute, which the console handler renders as a message
// prefix.
package logging
