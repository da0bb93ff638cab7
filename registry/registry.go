package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"projmeta/internal/diagnostic"
	"projmeta/metamodel"
)

// ErrInitFailed is returned by every query of a registry whose initialization failed.
var ErrInitFailed = errors.New("registry initialization failed")

// Registry indexes persistence and projection metadata for runtime queries.
//
// A Registry is built lazily on first use. After initialization all indexes
// are read-only, so queries take no locks and are safe for concurrent use.
type Registry struct {
	projectionProviders  []ProjectionProvider
	persistenceProviders []PersistenceProvider
	logger               *zap.Logger
	strict               bool

	// Lazy initialization state
	initialized atomic.Bool
	initMutex   sync.Mutex
	initErr     error

	// Indexes built once by initialize
	managed         map[metamodel.TypeID]metamodel.PersistenceMetadata
	projections     map[metamodel.TypeID]metamodel.ProjectionMetadata
	managedOrder    []metamodel.TypeID
	projectionOrder []metamodel.TypeID
	diagnostics     *diagnostic.Diagnostics

	// Memoised RequiredFields results (TypeID -> []string)
	required sync.Map
}

// Option configures a Registry.
type Option func(*Registry)

// WithProjectionProviders adds projection metadata sources.
func WithProjectionProviders(providers ...ProjectionProvider) Option {
	return func(r *Registry) {
		r.projectionProviders = append(r.projectionProviders, providers...)
	}
}

// WithPersistenceProviders adds entity and embeddable metadata sources.
func WithPersistenceProviders(providers ...PersistenceProvider) Option {
	return func(r *Registry) {
		r.persistenceProviders = append(r.persistenceProviders, providers...)
	}
}

// WithLogger sets the logger used for initialization and validation reports.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStrict makes validation errors fail initialization instead of being logged.
func WithStrict(strict bool) Option {
	return func(r *Registry) {
		r.strict = strict
	}
}

// New creates a registry over the given providers. Nothing is read until the first query.
func New(opts ...Option) *Registry {
	r := &Registry{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Init forces initialization and returns its error. Initialization runs once;
// the outcome, including a failure, is kept for the life of the registry.
func (r *Registry) Init() error {
	return r.ensure()
}

// Diagnostics returns the validation findings collected during initialization.
func (r *Registry) Diagnostics() *diagnostic.Diagnostics {
	_ = r.ensure()

	out := &diagnostic.Diagnostics{}
	if r.diagnostics != nil {
		out.Merge(*r.diagnostics)
	}

	return out
}

// ensure initializes the registry exactly once.
// Uses double-check locking: the fast path reads only the atomic flag.
func (r *Registry) ensure() error {
	if r.initialized.Load() {
		return r.initErr
	}

	r.initMutex.Lock()
	defer r.initMutex.Unlock()

	if r.initialized.Load() {
		return r.initErr
	}

	r.initErr = r.initialize()
	if r.initErr != nil {
		r.logger.Error("registry initialization failed", zap.Error(r.initErr))
	}

	r.initialized.Store(true)

	return r.initErr
}

func (r *Registry) initialize() error {
	var diags diagnostic.Diagnostics

	r.managed = make(map[metamodel.TypeID]metamodel.PersistenceMetadata)
	r.projections = make(map[metamodel.TypeID]metamodel.ProjectionMetadata)

	for _, p := range r.persistenceProviders {
		for _, pm := range p.Persistence() {
			if pm.Type.IsZero() {
				diags.AddError(diagnostic.CodeInvalidType, "persistence metadata without a type", "", "")

				continue
			}

			if _, dup := r.managed[pm.Type]; dup {
				diags.AddError(diagnostic.CodeDuplicateType, "type registered twice", pm.Type.String(), "")

				continue
			}

			r.managed[pm.Type] = pm.Clone()
		}
	}

	for _, p := range r.projectionProviders {
		for _, pm := range p.Projections() {
			if pm.Projection.IsZero() {
				diags.AddError(diagnostic.CodeInvalidType, "projection metadata without a type", "", "")

				continue
			}

			if _, dup := r.projections[pm.Projection]; dup {
				diags.AddError(diagnostic.CodeDuplicateType, "projection registered twice", pm.Projection.String(), "")

				continue
			}

			r.projections[pm.Projection] = pm.Clone()
		}
	}

	if diags.HasErrors() {
		r.diagnostics = &diags

		return fmt.Errorf("%w: %w", ErrInitFailed, diags.Error())
	}

	r.managedOrder = sortedKeys(r.managed)
	r.projectionOrder = sortedKeys(r.projections)
	r.diagnostics = r.validate()

	for _, d := range r.diagnostics.All() {
		if d.Severity == diagnostic.SeverityInfo {
			continue
		}

		r.logger.Warn("metadata validation",
			zap.String("severity", d.Severity.String()),
			zap.String("code", d.Code),
			zap.String("subject", d.Subject),
			zap.String("field", d.FieldPath),
			zap.String("message", d.Message),
		)
	}

	if r.strict && r.diagnostics.HasErrors() {
		return fmt.Errorf("%w: %w", ErrInitFailed, r.diagnostics.Error())
	}

	r.logger.Debug("registry initialized",
		zap.Int("managed_types", len(r.managed)),
		zap.Int("projections", len(r.projections)),
		zap.Int("validation_errors", len(r.diagnostics.Errors)),
		zap.Int("validation_warnings", len(r.diagnostics.Warnings)),
	)

	return nil
}

func sortedKeys[V any](m map[metamodel.TypeID]V) []metamodel.TypeID {
	keys := make([]metamodel.TypeID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	return keys
}

// Global registry built from the registered provider plugins.
var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide registry over every registered provider plugin.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry == nil {
		projections, persistence := registeredPlugins()
		defaultRegistry = New(
			WithProjectionProviders(projections...),
			WithPersistenceProviders(persistence...),
		)
	}

	return defaultRegistry
}

// Reset discards the process-wide registry; the next Default call rebuilds it
// from the provider plugins registered at that time. Intended for tests.
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultRegistry = nil
}
