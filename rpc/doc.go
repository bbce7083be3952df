// Package rpc contains the network side of the dictionary server: the line
// protocol, the server with its per-connection sessions and a matching client.
//
// The package is organized into several subpackages:
//
//   - common: Protocol constants and the Response type, server and client
//     configuration structures, and logging.
//
//   - interpreter: Turns one request line into exactly one response by running
//     GET, SET, CLEAR or ALL against a store.IStore.
//
//   - transport: Connector abstractions with tcp and unix implementations
//     (listener creation, socket tuning, dialing, half-close).
//
//   - server: Accept loop, session registry and the per-connection state machine.
//
//   - client: A line client used by the CLI and the tests.
//
//   - metrics: Prometheus style metrics and a periodic stats log.
package rpc
