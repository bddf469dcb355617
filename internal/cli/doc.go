// Package cli parses flags and dispatches the mvpd subcommands.
//
// The binary accepts the following flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//	-c, --config    Path to a config file.
//
// Flags override both the configured log level and build-time defaults set
// via linker flags. Each subcommand loads configuration itself so that
// environment overrides are read at execution time.
package cli
