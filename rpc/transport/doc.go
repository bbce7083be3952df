// Package transport defines the connector interfaces that separate the
// dictionary server and client from the concrete socket type.
//
// The package focuses on:
//   - Listener creation and per-connection socket tuning on the server side
//   - Dialing on the client side
//   - Half-close helpers shared by all stream transports
//
// Key Components:
//
//   - IServerConnector: Creates a net.Listener for a common.ServerConfig and upgrades
//     accepted connections (TCP_NODELAY, buffers, keep-alive, linger).
//
//   - IClientConnector: Dials an endpoint with an optional timeout.
//
//   - CloseWrite / PeerAddr: Helpers for half-closing a connection and for
//     extracting the peer address and port used in session logs.
//
// Implementations live in the tcp and unix subpackages. Both socket types support
// half-open connections natively: when the peer shuts down its write side the
// server reads io.EOF and can still write its farewell line.
package transport
