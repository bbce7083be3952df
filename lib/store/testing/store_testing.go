package testing

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/ValentinKolb/dictd/lib/store"
)

// RunStoreTests runs the conformance test suite for an IStore implementation.
func RunStoreTests(t *testing.T, name string, factory store.Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("GetMissing", func(t *testing.T) {
			testGetMissing(t, factory())
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory())
		})

		t.Run("Clear", func(t *testing.T) {
			testClear(t, factory())
		})

		t.Run("Keys", func(t *testing.T) {
			testKeys(t, factory())
		})

		t.Run("ConcurrentDistinctWords", func(t *testing.T) {
			testConcurrentDistinctWords(t, factory())
		})

		t.Run("ConcurrentSameWord", func(t *testing.T) {
			testConcurrentSameWord(t, factory())
		})

		t.Run("ConcurrentClear", func(t *testing.T) {
			testConcurrentClear(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, s store.IStore) {
	s.Set("gopher", "a burrowing rodent")

	got, ok := s.Get("gopher")
	if !ok {
		t.Fatalf("Expected word gopher to exist after Set")
	}
	if got != "a burrowing rodent" {
		t.Errorf("Expected description %q, got %q", "a burrowing rodent", got)
	}

	if s.Len() != 1 {
		t.Errorf("Expected Len 1, got %d", s.Len())
	}
}

func testGetMissing(t *testing.T, s store.IStore) {
	got, ok := s.Get("nonexistent")
	if ok {
		t.Errorf("Expected nonexistent word to return found=false")
	}
	if got != "" {
		t.Errorf("Expected empty description for missing word, got %q", got)
	}
}

func testOverwrite(t *testing.T, s store.IStore) {
	for i := 0; i < 5; i++ {
		s.Set("word", "same description")
	}
	if s.Len() != 1 {
		t.Errorf("Expected exactly one entry after repeated Set, got %d", s.Len())
	}

	s.Set("word", "new description")
	got, _ := s.Get("word")
	if got != "new description" {
		t.Errorf("Expected overwritten description, got %q", got)
	}
}

func testClear(t *testing.T, s store.IStore) {
	for i := 0; i < 100; i++ {
		s.Set(fmt.Sprintf("word-%d", i), "description")
	}

	for i := 0; i < 3; i++ {
		s.Clear()
		if s.Len() != 0 {
			t.Fatalf("Expected empty store after Clear #%d, got %d entries", i+1, s.Len())
		}
		if keys := s.Keys(); len(keys) != 0 {
			t.Fatalf("Expected no keys after Clear #%d, got %v", i+1, keys)
		}
	}

	if _, ok := s.Get("word-1"); ok {
		t.Errorf("Expected word-1 to be gone after Clear")
	}

	// the store must stay usable after a clear
	s.Set("after", "clear")
	if got, ok := s.Get("after"); !ok || got != "clear" {
		t.Errorf("Expected store to accept writes after Clear, got %q (found=%v)", got, ok)
	}
}

func testKeys(t *testing.T, s store.IStore) {
	want := []string{"alpha", "beta", "gamma"}
	for _, w := range want {
		s.Set(w, "letter")
	}

	got := s.Keys()
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("Expected %d keys, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected key %q at position %d, got %q", want[i], i, got[i])
		}
	}

	// the snapshot must not alias internal state
	got[0] = "mutated"
	if _, ok := s.Get("mutated"); ok {
		t.Errorf("Keys should return a snapshot, not a view of the store")
	}
}

func testConcurrentDistinctWords(t *testing.T, s store.IStore) {
	numWorkers := 8
	perWorker := 500

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.Set(fmt.Sprintf("w%d-%d", w, i), fmt.Sprintf("d%d-%d", w, i))
			}
		}(w)
	}
	wg.Wait()

	if s.Len() != numWorkers*perWorker {
		t.Fatalf("Expected %d entries, got %d", numWorkers*perWorker, s.Len())
	}
	for w := 0; w < numWorkers; w++ {
		for i := 0; i < perWorker; i++ {
			got, ok := s.Get(fmt.Sprintf("w%d-%d", w, i))
			if !ok || got != fmt.Sprintf("d%d-%d", w, i) {
				t.Fatalf("Expected w%d-%d to map to d%d-%d, got %q (found=%v)", w, i, w, i, got, ok)
			}
		}
	}
}

func testConcurrentSameWord(t *testing.T, s store.IStore) {
	candidates := map[string]bool{
		"first description of the word":  true,
		"second description of the word": true,
	}

	var wg sync.WaitGroup
	for d := range candidates {
		wg.Add(1)
		go func(d string) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				s.Set("contested", d)
			}
		}(d)
	}

	// concurrent readers must only ever see one of the full descriptions
	stop := make(chan struct{})
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			select {
			case <-stop:
				return
			default:
			}
			if got, ok := s.Get("contested"); ok && !candidates[got] {
				t.Errorf("Observed torn description %q", got)
				return
			}
		}
	}()

	wg.Wait()
	close(stop)
	<-readerDone

	got, ok := s.Get("contested")
	if !ok || !candidates[got] {
		t.Errorf("Expected one of the candidate descriptions to win, got %q (found=%v)", got, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Expected exactly one entry, got %d", s.Len())
	}
}

func testConcurrentClear(t *testing.T, s store.IStore) {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Set(fmt.Sprintf("k%d", i%20), "v")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.Clear()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			for _, k := range s.Keys() {
				if k == "" {
					t.Errorf("Keys returned an empty word")
					return
				}
			}
		}
	}()
	wg.Wait()

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Expected empty store after final Clear, got %d", s.Len())
	}
}
