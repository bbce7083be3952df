// Package unix implements connectors for the dictionary server and client using
// Unix domain sockets, for processes running on the same machine.
//
// Key Components:
//
//   - serverConnector: Removes a stale socket file, listens on the configured
//     socket path and applies SocketConf buffer sizes to accepted connections.
//
//   - clientConnector: Dials a socket path with an optional timeout.
//
// Unix stream sockets support half-close just like TCP, so sessions behave the same
// on both transports. Peers on a unix socket have no port; sessions report port 0.
package unix
