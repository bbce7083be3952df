// Package server implements the dictionary server: it owns the shared
// dictionary and the listening socket, accepts connections and runs one session
// per connection.
//
// Key Components:
//
//   - Server: Created with NewServer from a common.ServerConfig, a
//     transport.IServerConnector and a store.Factory. Start binds the listener and
//     accepts in the background; Stop closes the listener and waits for the active
//     sessions to end (graceful drain, sessions are never severed).
//
//   - session: The per-connection state machine
//
//     Connecting --greeting written--> Active --end of stream--> Closing --farewell--> Closed
//     Connecting --greeting failed--> Closed
//     Active --read/write failure--> Closed
//
//     In the Active state every line is handed to the command interpreter and the
//     response is written followed by the separator line. Lines of one connection
//     are processed strictly one after another. Protocol errors are regular
//     ERROR responses; only end-of-stream or an I/O failure ends a session.
//
// Usage Example:
//
//	config := common.DefaultServerConfig() // 127.0.0.1:8124
//	config.LogLevel = "debug"
//
//	s := server.NewServer(config, tcp.NewTCPServerConnector(), lstore.NewLocalStore)
//	if err := s.Start(); err != nil {
//		log.Fatalf("Server error: %v", err)
//	}
//
//	<-ctx.Done()
//	_ = s.Stop(context.Background())
//
// Thread Safety:
//
//	Sessions run concurrently and share only the dictionary, which serializes
//	its own operations. Start and Stop must each be called only once.
package server
