// Package kv provides the key-value textual media the ledger document is
// persisted in.
//
// A medium stores string values under string keys, like the local storage of
// a browser. Three media are available: Memory, Dir (one file per key) and
// SQLite (one row per key).
package kv

import (
	"fmt"
	"strings"
)

// Store is a key-value textual medium.
//
// Get returns ok=false for a missing key. Remove of a missing key is not an
// error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Open opens the medium described by uri:
//
//   - "memory:" an empty in-memory medium,
//   - "sqlite:<path>" a sqlite database file,
//   - any other value is a directory path, optionally prefixed with "dir:".
//
// Media that hold resources implement io.Closer.
func Open(uri string) (Store, error) {
	scheme, rest, found := strings.Cut(uri, ":")
	if !found || len(scheme) == 1 { // no scheme or a windows drive letter
		return NewDir(uri)
	}
	switch scheme {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		if rest == "" {
			return nil, fmt.Errorf("missing sqlite database path in %q", uri)
		}
		return OpenSQLite(rest)
	case "dir":
		return NewDir(rest)
	default:
		return nil, fmt.Errorf("unknown storage scheme %q in %q, want memory:, sqlite:<path> or a directory", scheme, uri)
	}
}
