package lstore

import (
	"github.com/ValentinKolb/dictd/lib/store"
	storetesting "github.com/ValentinKolb/dictd/lib/store/testing"
	"reflect"
	"testing"
)

func Test(t *testing.T) {
	storetesting.RunStoreTests(t, "LocalStore", func() store.IStore {
		return NewLocalStore()
	})
}

func Benchmark(b *testing.B) {
	storetesting.RunStoreBenchmarks(b, "LocalStore", func() store.IStore {
		return NewLocalStore()
	})
}

func TestKeysSorted(t *testing.T) {
	s := NewLocalStore()
	for _, w := range []string{"pear", "apple", "zebra", "mango"} {
		s.Set(w, "fruit or animal")
	}

	got := s.Keys()
	want := []string{"apple", "mango", "pear", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected keys %v, got %v", want, got)
	}
}
