package common

import (
	"fmt"
	"sort"
)

// CycleError is returned by TopoSort when the dependency graph has a cycle.
type CycleError struct {
	// Remaining lists, in ascending order, the nodes that could not be ordered:
	// members of a cycle and everything depending on one.
	Remaining []int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected among %d node(s)", len(e.Remaining))
}

// TopoSort returns indices in dependency order (dependencies first).
//
// Nodes are by index in [0, n). depsFn(i) yields indices that must come before i.
//
// The result is deterministic: when multiple nodes are available, we pick the
// smallest index. If a cycle exists, a *CycleError is returned.
func TopoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		var remaining []int

		for i := range n {
			if indeg[i] > 0 {
				remaining = append(remaining, i)
			}
		}

		return order, &CycleError{Remaining: remaining}
	}

	return order, nil
}
