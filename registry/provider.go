package registry

import (
	"sync"

	"projmeta/metamodel"
)

// ProjectionProvider supplies projection metadata, typically from generated code.
type ProjectionProvider interface {
	Projections() []metamodel.ProjectionMetadata
}

// PersistenceProvider supplies entity and embeddable metadata.
type PersistenceProvider interface {
	Persistence() []metamodel.PersistenceMetadata
}

// ProjectionProviderFunc adapts a function to ProjectionProvider.
type ProjectionProviderFunc func() []metamodel.ProjectionMetadata

// Projections calls f.
func (f ProjectionProviderFunc) Projections() []metamodel.ProjectionMetadata { return f() }

// PersistenceProviderFunc adapts a function to PersistenceProvider.
type PersistenceProviderFunc func() []metamodel.PersistenceMetadata

// Persistence calls f.
func (f PersistenceProviderFunc) Persistence() []metamodel.PersistenceMetadata { return f() }

// Process-wide provider plugins, populated from generated init() functions.
var (
	pluginsMu          sync.Mutex
	projectionPlugins  []ProjectionProvider
	persistencePlugins []PersistenceProvider
)

// RegisterProjectionProvider adds p to the providers read by Default.
// Providers registered after Default has initialized are picked up only after Reset.
func RegisterProjectionProvider(p ProjectionProvider) {
	if p == nil {
		return
	}

	pluginsMu.Lock()
	defer pluginsMu.Unlock()

	projectionPlugins = append(projectionPlugins, p)
}

// RegisterPersistenceProvider adds p to the providers read by Default.
func RegisterPersistenceProvider(p PersistenceProvider) {
	if p == nil {
		return
	}

	pluginsMu.Lock()
	defer pluginsMu.Unlock()

	persistencePlugins = append(persistencePlugins, p)
}

func registeredPlugins() ([]ProjectionProvider, []PersistenceProvider) {
	pluginsMu.Lock()
	defer pluginsMu.Unlock()

	return append([]ProjectionProvider(nil), projectionPlugins...),
		append([]PersistenceProvider(nil), persistencePlugins...)
}
