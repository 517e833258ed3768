package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pomdp/internal/modeltest"
	"github.com/katalvlaran/pomdp/model"
)

// TestTable_MissingEntriesReadAsZero verifies the "absent means 0" contract.
func TestTable_MissingEntriesReadAsZero(t *testing.T) {
	tb := model.NewTable([]string{"x", "y"}, []string{"go"}, []string{"beep"}, 0.5)

	assert.Equal(t, 0.0, tb.Reward("x", "go"))
	assert.Empty(t, tb.Transition("x", "go"))
	assert.Equal(t, 0.0, tb.Observation("beep", "go", "y"))
	assert.Equal(t, 0.5, tb.Discount())
}

// TestTable_SettersRejectUnknownIDs checks every setter against every space.
func TestTable_SettersRejectUnknownIDs(t *testing.T) {
	tb := model.NewTable([]string{"x"}, []string{"go"}, []string{"beep"}, 1)

	assert.ErrorIs(t, tb.SetReward("nope", "go", 1), model.ErrUnknownState)
	assert.ErrorIs(t, tb.SetReward("x", "nope", 1), model.ErrUnknownAction)
	assert.ErrorIs(t, tb.SetTransition("x", "go", "nope", 1), model.ErrUnknownState)
	assert.ErrorIs(t, tb.SetTransition("x", "nope", "x", 1), model.ErrUnknownAction)
	assert.ErrorIs(t, tb.SetObservation("nope", "go", "x", 1), model.ErrUnknownObservation)
	assert.ErrorIs(t, tb.SetObservation("beep", "go", "nope", 1), model.ErrUnknownState)
	assert.ErrorIs(t, tb.SetReward("x", "go", math.NaN()), model.ErrBadValue)
	assert.ErrorIs(t, tb.SetTransition("x", "go", "x", math.Inf(1)), model.ErrBadValue)
}

// TestTable_SetOverwrites ensures later writes replace earlier ones.
func TestTable_SetOverwrites(t *testing.T) {
	tb := model.NewTable([]string{"x", "y"}, []string{"go"}, []string{"beep"}, 1)
	require.NoError(t, tb.SetTransition("x", "go", "y", 0.3))
	require.NoError(t, tb.SetTransition("x", "go", "y", 0.7))
	require.NoError(t, tb.SetReward("x", "go", 2))
	require.NoError(t, tb.SetReward("x", "go", 3))

	assert.Equal(t, map[string]float64{"y": 0.7}, tb.Transition("x", "go"))
	assert.Equal(t, 3.0, tb.Reward("x", "go"))
}

// TestTable_CryingBabyFixture sanity-checks the shared fixture.
func TestTable_CryingBabyFixture(t *testing.T) {
	cb := modeltest.CryingBaby(0.9)

	assert.Equal(t, []string{modeltest.Hungry, modeltest.Sated}, cb.States())
	assert.Equal(t, []string{modeltest.Feed, modeltest.Sing, modeltest.Ignore}, cb.Actions())
	assert.Equal(t, -10.5, cb.Reward(modeltest.Hungry, modeltest.Sing))
	assert.Equal(t, 0.1, cb.Transition(modeltest.Sated, modeltest.Ignore)[modeltest.Hungry])
	assert.Equal(t, 0.9, cb.Observation(modeltest.Crying, modeltest.Sing, modeltest.Hungry))
	require.NoError(t, model.Validate(cb, 0))
}
