package pomdp

import (
	"log/slog"
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, DefaultEpsilon, o.Epsilon)
	assert.Equal(t, DefaultLPTolerance, o.LPTolerance)
	assert.Equal(t, runtime.GOMAXPROCS(0), o.Workers)
	assert.NotNil(t, o.Logger)
	assert.Zero(t, o.MaxCandidates)
	assert.False(t, o.StrictValidation)
	assert.False(t, o.PointwiseFilter)
}

func TestResolve(t *testing.T) {
	logger := slog.Default()
	o, err := resolve([]Option{
		WithEpsilon(0),
		WithLPTolerance(1e-8),
		WithWorkers(3),
		WithLogger(logger),
		WithMaxCandidates(100),
		WithStrictValidation(),
		WithPointwiseFilter(),
		nil,
	})
	require.NoError(t, err)
	assert.Zero(t, o.Epsilon)
	assert.Equal(t, 1e-8, o.LPTolerance)
	assert.Equal(t, 3, o.Workers)
	assert.Same(t, logger, o.Logger)
	assert.Equal(t, 100, o.MaxCandidates)
	assert.True(t, o.StrictValidation)
	assert.True(t, o.PointwiseFilter)

	o, err = resolve([]Option{WithWorkers(5), WithWorkers(0), WithLogger(nil)})
	require.NoError(t, err)
	assert.Equal(t, runtime.GOMAXPROCS(0), o.Workers)
	assert.NotNil(t, o.Logger)
}

func TestResolve_Violations(t *testing.T) {
	bad := map[string]Option{
		"negative epsilon":  WithEpsilon(-1e-9),
		"NaN epsilon":       WithEpsilon(math.NaN()),
		"infinite epsilon":  WithEpsilon(math.Inf(1)),
		"zero LP tolerance": WithLPTolerance(0),
		"NaN LP tolerance":  WithLPTolerance(math.NaN()),
		"negative workers":  WithWorkers(-2),
		"negative max":      WithMaxCandidates(-1),
	}
	for name, opt := range bad {
		_, err := resolve([]Option{opt})
		assert.ErrorIs(t, err, ErrOptionViolation, name)
	}
}
