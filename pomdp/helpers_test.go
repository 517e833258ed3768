package pomdp_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pomdp/plan"
)

const tol = 1e-7

// sortedAlphas returns a lexicographically sorted copy of alphas.
func sortedAlphas(alphas [][]float64) [][]float64 {
	out := slices.Clone(alphas)
	slices.SortFunc(out, func(a, b []float64) int {
		for s := range a {
			switch {
			case a[s] < b[s]:
				return -1
			case a[s] > b[s]:
				return 1
			}
		}

		return 0
	})

	return out
}

// assertSameVectors compares two alpha sets as unordered collections.
func assertSameVectors(t *testing.T, want, got [][]float64) {
	t.Helper()
	require.Len(t, got, len(want))
	want, got = sortedAlphas(want), sortedAlphas(got)
	for i := range want {
		assert.InDeltaSlice(t, want[i], got[i], tol, "vector %d", i)
	}
}

// fresh rebuilds p as a new tree with no cached alpha vectors.
func fresh(t *testing.T, p *plan.Plan, actions []string) *plan.Plan {
	t.Helper()
	var config []int
	p.Walk(func(node *plan.Plan, _ int) bool {
		i := slices.Index(actions, node.Action)
		require.GreaterOrEqual(t, i, 0, "unknown action %q", node.Action)
		config = append(config, i)

		return true
	})
	out, err := plan.Configure(p, actions, config)
	require.NoError(t, err)
	_, cached := out.Alpha()
	require.False(t, cached)

	return out
}

// maxAt returns max_i alphas[i]·belief.
func maxAt(alphas [][]float64, belief []float64) float64 {
	best := 0.0
	for i, alpha := range alphas {
		var v float64
		for s := range alpha {
			v += alpha[s] * belief[s]
		}
		if i == 0 || v > best {
			best = v
		}
	}

	return best
}
