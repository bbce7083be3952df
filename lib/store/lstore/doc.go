// Package lstore implements the local, in-memory dictionary based on the store.IStore
// interface. Data lives in a plain Go map for the lifetime of the process and is never
// persisted.
//
// Thread Safety:
//
//	Every operation holds a single sync.RWMutex for its whole duration. Set and Clear
//	take the write lock, Get, Keys and Len take the read lock. Operations are short and
//	never block internally, so the coarse lock does not become a bottleneck for a line
//	protocol where each connection issues one command at a time.
//
// Key Order:
//
//	Keys returns the words sorted lexically. The order is not part of the IStore contract,
//	it only makes the ALL response deterministic.
package lstore
