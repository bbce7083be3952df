package transport

import (
	"io"
	"net"
	"testing"
)

func TestPeerAddrAndCloseWrite(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- conn
	}()

	client, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	server, ok := <-accepted
	if !ok {
		t.Fatal("accept failed")
	}
	defer server.Close()

	host, port := PeerAddr(server)
	if host != "127.0.0.1" {
		t.Errorf("Expected peer host 127.0.0.1, got %s", host)
	}
	if port != client.LocalAddr().(*net.TCPAddr).Port {
		t.Errorf("Expected peer port %d, got %d", client.LocalAddr().(*net.TCPAddr).Port, port)
	}

	// after a half-close the server reads EOF but can still write
	if err := CloseWrite(client); err != nil {
		t.Fatalf("CloseWrite failed: %v", err)
	}
	buf := make([]byte, 1)
	if _, err := server.Read(buf); err != io.EOF {
		t.Fatalf("Expected EOF on server side, got %v", err)
	}
	if _, err := server.Write([]byte("x")); err != nil {
		t.Fatalf("Expected server write after half-close to succeed, got %v", err)
	}
	if _, err := io.ReadFull(client, buf); err != nil || buf[0] != 'x' {
		t.Errorf("Expected client to read x, got %q (%v)", buf, err)
	}
}

func TestCloseWriteUnsupported(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	if err := CloseWrite(a); err != ErrHalfCloseUnsupported {
		t.Errorf("Expected ErrHalfCloseUnsupported, got %v", err)
	}
}
