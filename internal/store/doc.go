// Package store keeps named save slots in SQLite for hosts of the
// simulation core. The core itself never touches storage; it only produces
// and consumes opaque blobs, and this package files them away.
//
// Each slot holds an append-only history of blobs. Ordering is by a
// store-wide logical sequence number rather than wall-clock time, so two
// stores fed the same writes hold identical histories apart from slot ids.
//
// All queries order by seq then id so results are deterministic.
package store
