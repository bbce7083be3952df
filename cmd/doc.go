// Package cmd implements the command-line interface of the dictd dictionary server.
// It provides a hierarchical command structure with operations for running the server
// and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - serve: Command for starting and configuring the server
//   - dict: Client commands for dictionary operations (get, set, clear, all, perf)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set with an environment variable of the form DICT_<FLAG>
// (e.g. DICT_PORT=9000), either exported or placed in a .env / .env.local file.
//
// See dictd -help for a list of all commands.
package cmd
