// Package common provides the data structures and utilities shared by the
// dictionary server, its client and the command line interface.
//
// The package focuses on:
//   - The wire protocol: verbs, fixed lines and the Response type
//   - Configuration structures for client and server components
//   - Custom logging implementation integrated with the Dragonboat logger package
//
// Key Components:
//
//   - Response: One protocol response line, either ANSWER or ERROR. Frame renders
//     the line together with the separator line that follows every response.
//
//   - Greeting / Farewell: The fixed lines written when a session starts and when
//     the peer half-closes its side of the connection.
//
//   - ServerConfig: Listener, socket, session and observability settings of the
//     server, with Validate and a sectioned String representation that is logged
//     on start.
//
//   - ClientConfig: Endpoint and timeout used by the line client.
//
//   - Logger: A Dragonboat logger.ILogger implementation producing
//     "LEVEL | name | message" lines. Packages obtain their logger with
//     logger.GetLogger("<name>") and InitLoggers sets the level of all of them.
package common
