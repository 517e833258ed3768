package pomdp_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pomdp/internal/modeltest"
	"github.com/katalvlaran/pomdp/model"
	"github.com/katalvlaran/pomdp/plan"
	"github.com/katalvlaran/pomdp/pomdp"
)

func solvedSet(t *testing.T, horizon int, m model.Model) pomdp.CandidateSet {
	t.Helper()
	res, err := pomdp.Solve(horizon, m)
	require.NoError(t, err)

	return pomdp.CandidateSet{Plans: res.Plans, Alphas: res.Alphas}
}

// TestExpansionSize covers the |A|·n^|O| count and its guards.
func TestExpansionSize(t *testing.T) {
	tests := []struct {
		actions, n, observations int
		want                     int
	}{
		{3, 1, 2, 3},
		{3, 2, 2, 12},
		{3, 3, 2, 27},
		{2, 3, 3, 54},
		{0, 5, 3, 0},
		{2, 0, 2, 0},
		{4, 7, 0, 4},
	}
	for _, tc := range tests {
		got, err := pomdp.ExpansionSize(tc.actions, tc.n, tc.observations)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%d·%d^%d", tc.actions, tc.n, tc.observations)
	}

	_, err := pomdp.ExpansionSize(2, 1<<32, 2)
	assert.ErrorIs(t, err, pomdp.ErrTooManyCandidates)
	_, err = pomdp.ExpansionSize(2, math.MaxInt, 1)
	assert.ErrorIs(t, err, pomdp.ErrTooManyCandidates)
	_, err = pomdp.ExpansionSize(-1, 2, 2)
	assert.ErrorIs(t, err, pomdp.ErrDimensionMismatch)
}

// TestExpand_Count checks the pre-prune candidate count on every solved
// crying-baby horizon.
func TestExpand_Count(t *testing.T) {
	m := modeltest.CryingBaby(0.9)
	for h := 1; h <= 3; h++ {
		set := solvedSet(t, h, m)
		out, err := pomdp.Expand(context.Background(), set, m)
		require.NoError(t, err)

		want, err := pomdp.ExpansionSize(3, set.Len(), 2)
		require.NoError(t, err)
		assert.Equal(t, want, out.Len(), "horizon %d", h)
		require.Len(t, out.Plans, out.Len())
	}
}

// TestExpand_Order checks the deterministic layout: actions in model order,
// then subplan assignments with the last observation varying fastest.
func TestExpand_Order(t *testing.T) {
	m := modeltest.CryingBaby(0.9)
	set := solvedSet(t, 2, m) // feed(...), ignore(...)
	require.Equal(t, 2, set.Len())

	out, err := pomdp.Expand(context.Background(), set, m)
	require.NoError(t, err)
	require.Equal(t, 12, out.Len())

	actions := []string{modeltest.Feed, modeltest.Sing, modeltest.Ignore}
	combos := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for a, action := range actions {
		for c, combo := range combos {
			p := out.Plans[4*a+c]
			assert.Equal(t, action, p.Action)
			crying, ok := p.Subplan(modeltest.Crying)
			require.True(t, ok)
			quiet, ok := p.Subplan(modeltest.Quiet)
			require.True(t, ok)
			assert.True(t, crying.Equal(set.Plans[combo[0]]), "%s #%d crying branch", action, c)
			assert.True(t, quiet.Equal(set.Plans[combo[1]]), "%s #%d quiet branch", action, c)
			assert.Equal(t, 3, p.Depth())
		}
	}

	// feed, then the feeding plan on crying and the ignoring plan on quiet.
	assert.InDeltaSlice(t, []float64{-16.179, -6.179}, out.Alphas[1], tol)
	// feed, then ignore twice on both branches.
	assert.InDeltaSlice(t, []float64{-15.81, -5.81}, out.Alphas[3], tol)
	// ignore, then feed on crying and ignore on quiet.
	assert.InDeltaSlice(t, []float64{-24.22, -2.4831}, out.Alphas[9], tol)
}

// TestExpand_ClonesSubplans checks that no node is shared between roots or
// with the input set.
func TestExpand_ClonesSubplans(t *testing.T) {
	m := modeltest.CryingBaby(0.9)
	set := solvedSet(t, 2, m)
	out, err := pomdp.Expand(context.Background(), set, m)
	require.NoError(t, err)

	first, _ := out.Plans[0].Subplan(modeltest.Crying)
	second, _ := out.Plans[0].Subplan(modeltest.Quiet)
	other, _ := out.Plans[1].Subplan(modeltest.Crying)
	assert.NotSame(t, set.Plans[0], first)
	assert.NotSame(t, first, second)
	assert.NotSame(t, first, other)
	assert.True(t, first.Equal(other))
}

// TestExpand_AlphasMatchEvaluation re-evaluates every candidate from
// scratch on a random model.
func TestExpand_AlphasMatchEvaluation(t *testing.T) {
	m := modeltest.Random(3, 3, 2, 2, 0.95)
	d, err := model.Compile(m)
	require.NoError(t, err)
	set := solvedSet(t, 2, m)

	out, err := pomdp.Expand(context.Background(), set, d)
	require.NoError(t, err)
	for i, p := range out.Plans {
		got, err := plan.Evaluate(fresh(t, p, d.Actions()), d)
		require.NoError(t, err)
		assert.InDeltaSlice(t, out.Alphas[i], got, 1e-9, "candidate %d: %s", i, p)
	}
}

// TestExpand_WorkersDeterministic compares sequential and parallel output.
func TestExpand_WorkersDeterministic(t *testing.T) {
	m := modeltest.Random(5, 3, 3, 2, 0.9)
	set := solvedSet(t, 2, m)

	seq, err := pomdp.Expand(context.Background(), set, m, pomdp.WithWorkers(1))
	require.NoError(t, err)
	par, err := pomdp.Expand(context.Background(), set, m, pomdp.WithWorkers(7))
	require.NoError(t, err)

	require.Equal(t, seq.Len(), par.Len())
	assert.Equal(t, seq.Alphas, par.Alphas)
	for i := range seq.Plans {
		assert.True(t, seq.Plans[i].Equal(par.Plans[i]), "candidate %d", i)
	}
}

// TestExpand_Errors covers limits, shape checks and cancellation.
func TestExpand_Errors(t *testing.T) {
	m := modeltest.CryingBaby(0.9)
	set := solvedSet(t, 2, m)
	ctx := context.Background()

	_, err := pomdp.Expand(ctx, set, m, pomdp.WithMaxCandidates(11))
	assert.ErrorIs(t, err, pomdp.ErrTooManyCandidates)

	out, err := pomdp.Expand(ctx, set, m, pomdp.WithMaxCandidates(12))
	require.NoError(t, err)
	assert.Equal(t, 12, out.Len())

	_, err = pomdp.Expand(ctx, pomdp.CandidateSet{
		Plans:  []*plan.Plan{plan.Leaf(modeltest.Feed)},
		Alphas: [][]float64{{1, 2, 3}},
	}, m)
	assert.ErrorIs(t, err, pomdp.ErrDimensionMismatch)

	_, err = pomdp.Expand(ctx, pomdp.CandidateSet{
		Plans:  []*plan.Plan{plan.Leaf("dance")},
		Alphas: [][]float64{{1, 2}},
	}, m)
	assert.ErrorIs(t, err, plan.ErrMalformedPlan)

	_, err = pomdp.Expand(ctx, set, nil)
	assert.ErrorIs(t, err, model.ErrNilModel)

	empty, err := pomdp.Expand(ctx, pomdp.CandidateSet{}, m)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = pomdp.Expand(canceled, set, m)
	assert.ErrorIs(t, err, context.Canceled)
}
