package metamodel

import (
	"context"
	"fmt"

	"projmeta/internal/common"
)

//go:generate go tool stringer -type=Stage -linecomment -output=stage_string.go

// Stage tags a pipeline step.
type Stage int

const (
	StageCompute   Stage = iota // compute
	StageTransform              // transform
)

// Step is one stage of a Pipeline.
type Step struct {
	Stage  Stage
	Method MethodReference
}

// Pipeline is the ordered compute -> transform chain of a computed field.
// It holds at most one compute step followed by at most one transform step.
// When the compute step is absent the transform step is the sole computation
// and receives the dependency values directly.
type Pipeline struct {
	steps []Step
}

// NoPipeline returns an empty pipeline; the computation is resolved elsewhere.
func NoPipeline() Pipeline {
	return Pipeline{}
}

// ComputeOnly returns a single-step compute pipeline.
func ComputeOnly(computedBy MethodReference) Pipeline {
	return Pipeline{steps: []Step{{Stage: StageCompute, Method: computedBy}}}
}

// TransformOnly returns a single-step transform pipeline.
func TransformOnly(transformer MethodReference) Pipeline {
	return Pipeline{steps: []Step{{Stage: StageTransform, Method: transformer}}}
}

// ComputeThenTransform returns a two-step pipeline whose transform consumes the compute output.
func ComputeThenTransform(computedBy, transformer MethodReference) Pipeline {
	return Pipeline{steps: []Step{
		{Stage: StageCompute, Method: computedBy},
		{Stage: StageTransform, Method: transformer},
	}}
}

// NewPipeline builds a pipeline from optional references. Nil means absent.
// Zero-valued references are rejected: they never passed NewMethodReference.
func NewPipeline(computedBy, transformer *MethodReference) (Pipeline, error) {
	if computedBy != nil && computedBy.IsZero() {
		return Pipeline{}, invariant("Pipeline", "compute step has an unvalidated method reference")
	}

	if transformer != nil && transformer.IsZero() {
		return Pipeline{}, invariant("Pipeline", "transform step has an unvalidated method reference")
	}

	switch {
	case computedBy != nil && transformer != nil:
		return ComputeThenTransform(*computedBy, *transformer), nil
	case computedBy != nil:
		return ComputeOnly(*computedBy), nil
	case transformer != nil:
		return TransformOnly(*transformer), nil
	default:
		return NoPipeline(), nil
	}
}

// Steps returns the ordered steps.
func (p Pipeline) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Len returns the number of steps (0, 1 or 2).
func (p Pipeline) Len() int {
	return len(p.steps)
}

// IsEmpty returns true if the pipeline has no steps.
func (p Pipeline) IsEmpty() bool {
	return len(p.steps) == 0
}

// ComputedBy returns the compute step, if any.
func (p Pipeline) ComputedBy() (MethodReference, bool) {
	return p.stage(StageCompute)
}

// Transformer returns the transform step, if any.
func (p Pipeline) Transformer() (MethodReference, bool) {
	return p.stage(StageTransform)
}

func (p Pipeline) stage(s Stage) (MethodReference, bool) {
	for _, step := range p.steps {
		if step.Stage == s {
			return step.Method, true
		}
	}

	return MethodReference{}, false
}

// Equal reports whether two pipelines have the same steps in the same order.
func (p Pipeline) Equal(other Pipeline) bool {
	if len(p.steps) != len(other.steps) {
		return false
	}

	for i := range p.steps {
		if p.steps[i] != other.steps[i] {
			return false
		}
	}

	return true
}

// String returns "compute(Owner#m) -> transform(Owner#t)".
func (p Pipeline) String() string {
	if p.IsEmpty() {
		return "<none>"
	}

	s := ""

	for i, step := range p.steps {
		if i > 0 {
			s += " -> "
		}

		s += fmt.Sprintf("%s(%s)", step.Stage, step.Method)
	}

	return s
}

// Invoker executes a method reference.
type Invoker interface {
	Invoke(ctx context.Context, ref MethodReference, args ...any) (any, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, ref MethodReference, args ...any) (any, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, ref MethodReference, args ...any) (any, error) {
	return f(ctx, ref, args...)
}

// Run executes the pipeline. The first step receives inputs; every following
// step receives the previous step's output as its only argument.
// An empty pipeline passes a single input through unchanged.
func (p Pipeline) Run(ctx context.Context, inv Invoker, inputs ...any) (any, error) {
	if p.IsEmpty() {
		if common.IsSingle(inputs) {
			return inputs[0], nil
		}

		return nil, fmt.Errorf("%w: cannot pass %d inputs through", ErrEmptyPipeline, len(inputs))
	}

	args := inputs

	var out any

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := inv.Invoke(ctx, step.Method, args...)
		if err != nil {
			return nil, fmt.Errorf("%s step %s: %w", step.Stage, step.Method, err)
		}

		out = res
		args = []any{res}
	}

	return out, nil
}
