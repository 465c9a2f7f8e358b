// Package sqlite provides an SQLite-based implementation of driven port
// interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Queries are built with squirrel.
//
//   - SessionStore: bearer token persistence with a login history
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.raiz/data/raiz.db
package sqlite
