package store

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the interface of the shared dictionary that maps a word to its description.
// Implementations must be safe for concurrent use: no read may observe a partially
// applied write and no two writes may interleave.
//
// The store does not validate its input. Callers (the command interpreter) make sure
// that neither the word nor the description is empty.
type IStore interface {
	// Get returns the description for a word. The boolean return value indicates whether the word was found.
	Get(word string) (description string, found bool)
	// Set inserts or overwrites the description for a word.
	Set(word, description string)
	// Clear removes all words from the store.
	Clear()
	// Keys returns a snapshot of all words currently stored.
	// The order is implementation defined and must not be relied upon by clients.
	Keys() (words []string)
	// Len returns the number of words currently stored.
	Len() (n int)
}

// Factory is a function type that creates a new, empty store.
type Factory func() IStore
