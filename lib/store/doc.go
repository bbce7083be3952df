// Package store defines the dictionary contract shared by the server, the command
// interpreter and the metrics layer.
//
// The package focuses on:
//   - A small interface (IStore) for the word -> description mapping
//   - A Factory type so the server can be handed any implementation
//
// Key Components:
//
//   - IStore Interface: Get, Set, Clear, Keys and Len. All operations always succeed;
//     a lookup miss is reported through the boolean return value of Get, never through
//     an error or a panic.
//
//   - Factory: A function type returning a fresh, empty IStore. The server calls it exactly
//     once at construction time and owns the result for the rest of the process lifetime.
//
// Implementations:
//
//	- Local Store (lstore): An in-memory map guarded by a single sync.RWMutex.
//	  Available in the "github.com/ValentinKolb/dictd/lib/store/lstore" package.
//
// A conformance suite every implementation should pass lives in
// "github.com/ValentinKolb/dictd/lib/store/testing".
package store
