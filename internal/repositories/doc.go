// Package repositories provides the persistence layer over SQLite.
//
// Catalog tables (platforms and their dependents) are keyed by IGDB
// remote id and written through idempotent upserts; collection tables
// (consoles, games) use uuid primary keys with soft deletes and
// sequence numbers.
package repositories
