package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoSort_Order(t *testing.T) {
	order, err := TopoSort(3, func(i int) []int {
		switch i {
		case 1:
			return []int{2}
		case 2:
			return []int{0}
		default:
			return nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1}, order)
}

func TestTopoSort_Deterministic(t *testing.T) {
	order, err := TopoSort(4, func(int) []int { return nil })
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestTopoSort_Cycle(t *testing.T) {
	_, err := TopoSort(3, func(i int) []int {
		switch i {
		case 0:
			return []int{1}
		case 1:
			return []int{0}
		default:
			return nil
		}
	})
	require.Error(t, err)

	var cycleErr *CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []int{0, 1}, cycleErr.Remaining)
}

func TestTopoSort_OutOfRange(t *testing.T) {
	_, err := TopoSort(1, func(int) []int { return []int{5} })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
