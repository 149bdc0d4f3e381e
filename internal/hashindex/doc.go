// Package hashindex persists a converted catalog into a SQLite database so
// individual file hashes can be resolved back to their filename, wad and
// locale code without re-reading the JSON documents.
//
// Every conversion run replaces the index contents inside a single
// transaction. Hashes are stored as the two's-complement int64 of the
// unsigned 64-bit value so the full range fits SQLite's INTEGER type.
package hashindex
