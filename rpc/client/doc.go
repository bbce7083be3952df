// Package client implements a line client for the dictionary server.
//
// A Client owns a single connection. Dial reads the greeting, every command writes one
// request line and reads the response line plus the separator, and Close half-closes the
// connection and waits for the farewell.
//
// Errors:
//
//   - Transport failures are returned wrapped (use errors.Is with io.EOF, net.ErrClosed, ...).
//   - ERROR responses are returned as *ServerError (use errors.As), except for the
//     "word not found" and "no words" cases which Get and All report as regular results.
//   - Do returns ERROR responses as common.Response values and never as *ServerError.
//
// Usage Example:
//
//	c, err := client.Dial(common.ClientConfig{Endpoint: "127.0.0.1:8124"}, tcp.NewTCPClientConnector())
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	if err := c.Set("go", "a programming language"); err != nil {
//		return err
//	}
//	desc, found, err := c.Get("go")
package client
