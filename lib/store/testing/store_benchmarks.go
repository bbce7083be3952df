package testing

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/dictd/lib/store"
)

// RunStoreBenchmarks runs all benchmarks for an IStore implementation
func RunStoreBenchmarks(b *testing.B, name string, factory store.Factory) {
	b.Run(name+"/Set", func(b *testing.B) {
		benchmarkSet(b, factory())
	})

	b.Run(name+"/Get", func(b *testing.B) {
		benchmarkGet(b, factory())
	})

	b.Run(name+"/Keys", func(b *testing.B) {
		benchmarkKeys(b, factory())
	})

	b.Run(name+"/MixedUsage", func(b *testing.B) {
		benchmarkMixedUsage(b, factory())
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

func benchmarkSet(b *testing.B, s store.IStore) {
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			s.Set(fmt.Sprintf("word-%d", counter%1000), "some description")
			counter++
		}
	})
}

func benchmarkGet(b *testing.B, s store.IStore) {
	for i := 0; i < 1000; i++ {
		s.Set(fmt.Sprintf("word-%d", i), "some description")
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			s.Get(fmt.Sprintf("word-%d", counter%1000))
			counter++
		}
	})
}

func benchmarkKeys(b *testing.B, s store.IStore) {
	for i := 0; i < 100; i++ {
		s.Set(fmt.Sprintf("word-%d", i), "some description")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Keys()
	}
}

func benchmarkMixedUsage(b *testing.B, s store.IStore) {
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			word := fmt.Sprintf("word-%d", counter%100)
			switch counter % 10 {
			case 0:
				s.Keys()
			case 1, 2, 3:
				s.Set(word, "some description")
			default:
				s.Get(word)
			}
			counter++
		}
	})
}
