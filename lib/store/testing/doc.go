// Package testing provides standardised tests and benchmarks for dictionary
// implementations that satisfy the store.IStore interface.
//
// The package contains:
//   - store_testing: A test suite validating conformance to the IStore contract,
//     including concurrent writers to the same and to distinct words
//   - store_benchmarks: Throughput measurements for the common operations
//
// Example usage:
//
//	factory := func() store.IStore {
//		return NewMyStore()
//	}
//
//	// Running the standard test suite
//	storetesting.RunStoreTests(t, "MyStore", factory)
//
//	// Running performance benchmarks
//	storetesting.RunStoreBenchmarks(b, "MyStore", factory)
package testing
