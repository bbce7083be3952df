// Package interpreter turns one line of the text protocol into exactly one
// response, reading from and writing to a store.IStore.
//
// The interpreter is pure dispatch logic: it holds no state of its own, never
// touches the network and never returns a Go error. Every protocol problem
// (missing command, unknown verb, missing arguments, lookup miss, empty
// dictionary) is expressed as an ERROR response.
//
// Processing a line happens in two steps:
//
//   - Parse splits the line on runs of whitespace. The first token is the verb,
//     the remaining tokens are its arguments. Invalid UTF-8 is replaced by U+FFFD.
//
//   - Execute dispatches on the verb (case-sensitive: GET, SET, CLEAR, ALL) and
//     applies it to the store. Only SET and CLEAR mutate the store.
//
// Interpret combines both steps.
//
// Usage Example:
//
//	s := lstore.NewLocalStore()
//	interpreter.Interpret("SET go a programming language", s) // ANSWER Word go has been set.
//	interpreter.Interpret("GET go", s)                       // ANSWER a programming language
//	interpreter.Interpret("get go", s)                       // ERROR Command not found.
package interpreter
