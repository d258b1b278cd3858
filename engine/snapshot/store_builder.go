package snapshot

import "github.com/quasilyte/gdata/v2"

// StoreBuilderOption is a functional option for configuring a Store during construction.
type StoreBuilderOption func(*store)

// WithManager is an option builder that persists snapshots through a gdata manager.
// A nil manager leaves the store in memory-only mode.
//
// Parameters:
//   - m: the gdata manager
//
// Returns:
//   - StoreBuilderOption: a function that applies the manager option to a store
func WithManager(m *gdata.Manager) StoreBuilderOption {
	return func(s *store) {
		s.manager = m
	}
}

// WithObject is an option builder that sets the gdata object snapshots are stored under.
//
// Parameters:
//   - object: the object name
//
// Returns:
//   - StoreBuilderOption: a function that applies the object option to a store
func WithObject(object string) StoreBuilderOption {
	return func(s *store) {
		if object != "" {
			s.object = object
		}
	}
}
