package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pomdp/internal/modeltest"
	"github.com/katalvlaran/pomdp/model"
)

func twoStateTable() *model.Table {
	return model.NewTable([]string{"x", "y"}, []string{"go"}, []string{"beep", "boop"}, 0.9)
}

// TestValidate_AcceptsEmptyRows confirms absent rows are terminal, not errors.
func TestValidate_AcceptsEmptyRows(t *testing.T) {
	assert.NoError(t, model.Validate(twoStateTable(), 0))
}

// TestValidate_RandomModelsAreStochastic exercises the fixture generator.
func TestValidate_RandomModelsAreStochastic(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		require.NoError(t, model.Validate(modeltest.Random(seed, 4, 3, 3, 0.95), 1e-9))
	}
}

// TestValidate_Errors covers each stochasticity violation.
func TestValidate_Errors(t *testing.T) {
	t.Run("transition row sum", func(t *testing.T) {
		tb := twoStateTable()
		require.NoError(t, tb.SetTransition("x", "go", "x", 0.5))
		require.NoError(t, tb.SetTransition("x", "go", "y", 0.4))
		assert.ErrorIs(t, model.Validate(tb, 0), model.ErrNotStochastic)
	})
	t.Run("transition out of range", func(t *testing.T) {
		tb := twoStateTable()
		require.NoError(t, tb.SetTransition("x", "go", "x", 1.5))
		require.NoError(t, tb.SetTransition("x", "go", "y", -0.5))
		assert.ErrorIs(t, model.Validate(tb, 0), model.ErrBadProbability)
	})
	t.Run("observation column sum", func(t *testing.T) {
		tb := twoStateTable()
		require.NoError(t, tb.SetObservation("beep", "go", "y", 0.3))
		assert.ErrorIs(t, model.Validate(tb, 0), model.ErrNotStochastic)
	})
	t.Run("structural errors surface first", func(t *testing.T) {
		assert.ErrorIs(t, model.Validate(nil, 0), model.ErrNilModel)
	})
}
