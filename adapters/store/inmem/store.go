package inmem

import "github.com/kompox/mcstack/domain"

// Store provides a unified interface for all in-memory repositories.
type Store struct {
	BuildRepo *BuildRepository
}

// NewStore creates a new in-memory store with all repositories.
func NewStore() *Store {
	return &Store{
		BuildRepo: NewBuildRepository(),
	}
}

// Repositories returns the store as domain repositories.
func (s *Store) Repositories() *domain.Repositories {
	return &domain.Repositories{Build: s.BuildRepo}
}
