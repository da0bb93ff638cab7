package registry

import (
	"fmt"

	"go.uber.org/zap"

	"projmeta/internal/common"
	"projmeta/internal/match"
	"projmeta/metamodel"
)

// ResolveOption configures path resolution.
type ResolveOption func(*resolveOptions)

type resolveOptions struct {
	ignoreCase bool
}

// WithIgnoreCase matches projection field names using Unicode case folding.
// Resolved paths always use the casing recorded in metadata.
func WithIgnoreCase() ResolveOption {
	return func(o *resolveOptions) {
		o.ignoreCase = true
	}
}

// resolveRequest carries the state shared by one ResolvePath call.
type resolveRequest struct {
	path string
	resolveOptions
}

// ResolvePath translates a dotted projection path into the entity path it reads from.
//
// Direct fields resolve to their mapped path verbatim. Fields typed as a nested
// projection resolve the rest of the path through that projection and prefix the
// result with their own mapped path. A computed field resolves to its single
// dependency, or to "field.<dependency>" for one of several dependencies.
func (r *Registry) ResolvePath(projection metamodel.TypeID, path string, opts ...ResolveOption) (string, error) {
	if err := r.ensure(); err != nil {
		return "", err
	}

	return r.resolvePath(projection, path, opts...)
}

func (r *Registry) resolvePath(projection metamodel.TypeID, path string, opts ...ResolveOption) (string, error) {
	pm, ok := r.projections[projection]
	if !ok {
		return "", &metamodel.RegistrationError{Type: projection, Kind: metamodel.KindProjection}
	}

	req := resolveRequest{path: path}
	for _, opt := range opts {
		opt(&req.resolveOptions)
	}

	if err := metamodel.ValidatePath(path); err != nil {
		return "", &metamodel.PathError{Type: projection, Path: path, Err: err}
	}

	return r.resolve(pm, req, path, "", r.depthBudget(path))
}

// depthBudget bounds the recursion of one resolution: each step consumes one
// segment or follows one computed dependency.
func (r *Registry) depthBudget(path string) int {
	return len(r.projections) + len(metamodel.Segments(path)) + 1
}

func (r *Registry) resolve(
	pm metamodel.ProjectionMetadata,
	req resolveRequest,
	path, resolved string,
	depth int,
) (string, error) {
	head, tail := metamodel.SplitHead(path)

	fail := func(segment string, err error, suggestions ...string) error {
		return &metamodel.PathError{
			Type:        pm.Projection,
			Path:        req.path,
			Segment:     segment,
			Resolved:    resolved,
			Err:         err,
			Suggestions: suggestions,
		}
	}

	if depth <= 0 {
		return "", fail(head, fmt.Errorf("%w: nested projections of %s are cyclic", metamodel.ErrInvalidPath, pm.Projection))
	}

	// exact names win over folded ones across direct and computed fields
	f, isDirect := pm.Field(head, false)
	c, isComputed := pm.ComputedField(head, false)

	if !isDirect && !isComputed && req.ignoreCase {
		if f, isDirect = pm.Field(head, true); !isDirect {
			c, isComputed = pm.ComputedField(head, true)
		}
	}

	if isDirect {
		if tail == "" {
			return f.EntityField, nil
		}

		if !f.IsNested() {
			next, _ := metamodel.SplitHead(tail)

			return "", &metamodel.PathError{
				Type:     pm.Projection,
				Path:     req.path,
				Segment:  next,
				Resolved: metamodel.JoinPath(resolved, f.EntityField),
				Err:      fmt.Errorf("%w: %s is not a nested projection", metamodel.ErrInvalidPath, f.DTOField),
			}
		}

		nested, ok := r.projections[f.Nested]
		if !ok {
			return "", fail(head, &metamodel.RegistrationError{Type: f.Nested, Kind: metamodel.KindProjection})
		}

		inner, err := r.resolve(nested, req, tail, metamodel.JoinPath(resolved, f.EntityField), depth-1)
		if err != nil {
			return "", err
		}

		return metamodel.JoinPath(f.EntityField, inner), nil
	}

	if isComputed {
		return r.resolveComputed(pm, c, req, tail, resolved, depth-1, fail)
	}

	return "", fail(head, metamodel.ErrFieldNotFound, match.Suggest(head, pm.FieldNames())...)
}

func (r *Registry) resolveComputed(
	pm metamodel.ProjectionMetadata,
	c metamodel.ComputedField,
	req resolveRequest,
	tail, resolved string,
	depth int,
	fail func(segment string, err error, suggestions ...string) error,
) (string, error) {
	deps := c.Dependencies()

	if tail != "" {
		if dep, ok := matchDependency(deps, tail, req.ignoreCase); ok {
			return r.sourceDependency(pm, c, dep, depth), nil
		}

		next, _ := metamodel.SplitHead(tail)

		return "", fail(next, fmt.Errorf("%w: %q is not a dependency of computed field %s",
			metamodel.ErrInvalidPath, tail, c.DTOField()), match.Suggest(tail, deps)...)
	}

	if common.IsMultiple(deps) {
		subPaths := make([]string, len(deps))
		for i, dep := range deps {
			subPaths[i] = metamodel.JoinPath(c.DTOField(), dep)
		}

		return "", fail(c.DTOField(), metamodel.ErrAmbiguousField, subPaths...)
	}

	return r.sourceDependency(pm, c, deps[0], depth), nil
}

// sourceDependency returns the entity path read by dependency dep of c.
// Unresolvable dependencies are returned verbatim; validation reports them.
func (r *Registry) sourceDependency(pm metamodel.ProjectionMetadata, c metamodel.ComputedField, dep string, depth int) string {
	path, err := r.dependencyPath(pm, dep, depth)
	if err != nil {
		r.logger.Debug("computed dependency is not an entity path",
			zap.Stringer("projection", pm.Projection),
			zap.String("field", c.DTOField()),
			zap.String("dependency", dep),
			zap.Error(err),
		)

		return dep
	}

	return path
}

// dependencyPath returns the entity path a computed dependency reads.
// Entity paths are kept as they are. A dependency that is not one but starts
// with a nested projection field of pm is translated through that projection.
func (r *Registry) dependencyPath(pm metamodel.ProjectionMetadata, dep string, depth int) (string, error) {
	_, err := r.walkSource(pm.Entity, dep, false)
	if err == nil {
		return dep, nil
	}

	if path, nested, viaErr := r.viaProjection(pm, dep, depth); nested {
		return path, viaErr
	}

	return dep, err
}

// viaProjection resolves dep as a projection path of pm when its first segment
// is a nested projection field. nested reports whether that was attempted.
func (r *Registry) viaProjection(
	pm metamodel.ProjectionMetadata,
	dep string,
	depth int,
) (path string, nested bool, err error) {
	head, rest := metamodel.SplitHead(dep)

	f, ok := pm.Field(head, false)
	if !ok || !f.IsNested() || rest == "" {
		return "", false, nil
	}

	path, err = r.resolve(pm, resolveRequest{path: dep}, dep, "", depth)
	if err != nil {
		return dep, true, err
	}

	return path, true, nil
}

func matchDependency(deps []string, path string, ignoreCase bool) (string, bool) {
	for _, dep := range deps {
		if dep == path {
			return dep, true
		}
	}

	if !ignoreCase {
		return "", false
	}

	key := common.FoldKey(path)

	for _, dep := range deps {
		if common.FoldKey(dep) == key {
			return dep, true
		}
	}

	return "", false
}
