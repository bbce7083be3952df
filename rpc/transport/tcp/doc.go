// Package tcp implements TCP socket connectors for the dictionary server and client.
//
// Key Components:
//
//   - serverConnector: Listens on host:port (default 127.0.0.1:8124) and applies
//     TCPConf and SocketConf options (TCP_NODELAY, buffer sizes, keep-alive, linger)
//     to every accepted connection.
//
//   - clientConnector: Dials host:port endpoints with an optional timeout.
//
// TCP connections are half-open capable: a client calling CloseWrite is seen by the
// server as io.EOF while the server can still send its farewell line.
package tcp
