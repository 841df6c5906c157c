// Package database owns the SQLite connection and schema migration.
//
// Repositories for individual aggregates live in the subpackages
// books, reviews and users; they all share the pooled *gorm.DB held here.
package database
