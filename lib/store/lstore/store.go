package lstore

import (
	"github.com/ValentinKolb/dictd/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"sort"
	"sync"
)

var Logger = logger.GetLogger("store")

type storeImpl struct {
	mu    sync.RWMutex
	words map[string]string
}

// NewLocalStore creates a new, empty local dictionary.
func NewLocalStore() store.IStore {
	Logger.Debugf("created local store")
	return &storeImpl{
		words: make(map[string]string),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Get(word string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	description, ok := s.words[word]
	return description, ok
}

func (s *storeImpl) Set(word, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words[word] = description
}

func (s *storeImpl) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	// a fresh map releases the memory of the old entries
	s.words = make(map[string]string)
}

func (s *storeImpl) Keys() []string {
	s.mu.RLock()
	words := make([]string, 0, len(s.words))
	for word := range s.words {
		words = append(words, word)
	}
	s.mu.RUnlock()

	sort.Strings(words)
	return words
}

func (s *storeImpl) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}
