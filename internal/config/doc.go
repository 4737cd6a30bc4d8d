// Package config loads and validates tool-level settings from a TOML file.
//
// This file configures the tool itself (encoder binaries, logging, history
// database); it is unrelated to the token-based batch file accepted by
// `clipbatch run --config`, which is parsed by internal/tokens.
package config
