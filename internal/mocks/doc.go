// Package mocks provides hand-written mock implementations of the store and
// auth interfaces for tests. Each mock exposes function fields; a method
// whose field is nil falls back to a benign default so tests only configure
// the calls they care about.
package mocks
