// Package dialect names the SQL dialects gremlin generates statements for and
// holds the few textual differences between them.
//
// # Supported Dialects
//
//   - Postgres: PostgreSQL, placeholders $1, $2, ...
//   - SQLite: SQLite 3.35+ (RETURNING), placeholders ?1, ?2, ...
//
// Both dialects support INSERT ... DEFAULT VALUES and UPDATE/INSERT ... RETURNING,
// which every generated mutation relies on.
//
// # Usage
//
//	dialect.Placeholder(dialect.Postgres, 2) // "$2"
//	dialect.Placeholder(dialect.SQLite, 2)   // "?2"
//	dialect.Now(dialect.SQLite)              // "CURRENT_TIMESTAMP"
//
// # Sub-packages
//
//   - dialect/sql: executors, drivers and the runtime insert builder
package dialect
