package metamodel

import (
	"context"
	"fmt"
)

// Func is a registered computation or transformation.
type Func func(ctx context.Context, args ...any) (any, error)

// FuncTable is an Invoker backed by explicitly registered functions.
type FuncTable map[MethodReference]Func

// Register adds fn under ref, replacing any previous registration.
func (t FuncTable) Register(ref MethodReference, fn Func) {
	t[ref] = fn
}

// Invoke implements Invoker.
func (t FuncTable) Invoke(ctx context.Context, ref MethodReference, args ...any) (any, error) {
	fn, ok := t[ref]
	if !ok {
		return nil, fmt.Errorf("no function registered for %s", ref)
	}

	return fn(ctx, args...)
}
