package store

import "gorm.io/gorm"

// Store is the typed data-access layer over the shared database handle.
// One instance is constructed at startup and passed to every component.
type Store struct {
	db *gorm.DB
}

// New wraps an initialized gorm.DB.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that compose their own queries.
func (s *Store) DB() *gorm.DB {
	return s.db
}
