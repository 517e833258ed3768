// Package modeltest provides POMDP fixtures shared by the module's tests and
// benchmarks: the crying-baby problem and seeded random models.
//
// Determinism: every generator is a pure function of its arguments; no
// time-based randomness is used anywhere.
package modeltest

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/pomdp/model"
)

// Crying-baby identifiers.
const (
	Hungry = "hungry"
	Sated  = "sated"

	Feed   = "feed"
	Sing   = "sing"
	Ignore = "ignore"

	Crying = "crying"
	Quiet  = "quiet"
)

// cryingBabyRewards is R(s, a): feeding costs 5, being hungry costs 10,
// singing costs 0.5.
var cryingBabyRewards = map[model.StateAction]float64{
	{State: Hungry, Action: Feed}:   -15,
	{State: Sated, Action: Feed}:    -5,
	{State: Hungry, Action: Sing}:   -10.5,
	{State: Sated, Action: Sing}:    -0.5,
	{State: Hungry, Action: Ignore}: -10,
	{State: Sated, Action: Ignore}:  0,
}

var cryingBabyTransitions = map[model.StateAction]map[string]float64{
	{State: Hungry, Action: Feed}:   {Sated: 1},
	{State: Hungry, Action: Sing}:   {Hungry: 1},
	{State: Hungry, Action: Ignore}: {Hungry: 1},
	{State: Sated, Action: Feed}:    {Sated: 1},
	{State: Sated, Action: Sing}:    {Hungry: 0.1, Sated: 0.9},
	{State: Sated, Action: Ignore}:  {Hungry: 0.1, Sated: 0.9},
}

var cryingBabyObservations = map[model.ObservationKey]float64{
	{Observation: Crying, Action: Feed, Next: Hungry}: 0.8,
	{Observation: Quiet, Action: Feed, Next: Hungry}:  0.2,
	{Observation: Crying, Action: Feed, Next: Sated}:  0.1,
	{Observation: Quiet, Action: Feed, Next: Sated}:   0.9,

	{Observation: Crying, Action: Ignore, Next: Hungry}: 0.8,
	{Observation: Quiet, Action: Ignore, Next: Hungry}:  0.2,
	{Observation: Crying, Action: Ignore, Next: Sated}:  0.1,
	{Observation: Quiet, Action: Ignore, Next: Sated}:   0.9,

	{Observation: Crying, Action: Sing, Next: Hungry}: 0.9,
	{Observation: Quiet, Action: Sing, Next: Hungry}:  0.1,
	{Observation: Crying, Action: Sing, Next: Sated}:  0,
	{Observation: Quiet, Action: Sing, Next: Sated}:   1,
}

// CryingBaby returns the two-state, three-action, two-observation
// crying-baby POMDP with discount gamma.
func CryingBaby(gamma float64) *model.Table {
	return CryingBabyOffset(gamma, 0)
}

// CryingBabyOffset is CryingBaby with offset added to every reward entry.
// A positive offset of 15 makes all rewards non-negative.
func CryingBabyOffset(gamma, offset float64) *model.Table {
	t := model.NewTable(
		[]string{Hungry, Sated},
		[]string{Feed, Sing, Ignore},
		[]string{Crying, Quiet},
		gamma,
	)
	for k, r := range cryingBabyRewards {
		must(t.SetReward(k.State, k.Action, r+offset))
	}
	for k, row := range cryingBabyTransitions {
		for next, p := range row {
			must(t.SetTransition(k.State, k.Action, next, p))
		}
	}
	for k, p := range cryingBabyObservations {
		must(t.SetObservation(k.Observation, k.Action, k.Next, p))
	}

	return t
}

// Random returns a dense random POMDP with nS states, nA actions and nO
// observations. Rewards are uniform in [-10, 10]; every transition row and
// observation column is a normalised random distribution. The same seed
// always yields the same model (seed 0 maps to a fixed default).
func Random(seed int64, nS, nA, nO int, gamma float64) *model.Table {
	var (
		states       = ids("s", nS)
		actions      = ids("a", nA)
		observations = ids("o", nO)
		t            = model.NewTable(states, actions, observations, gamma)
		rewards      = rngFromSeed(seed)
		dynamics     = deriveRNG(rewards, 1)
		sensing      = deriveRNG(rewards, 2)
	)

	for _, a := range actions {
		for _, s := range states {
			must(t.SetReward(s, a, 20*rewards.Float64()-10))
			row := distribution(dynamics, nS)
			for j, next := range states {
				must(t.SetTransition(s, a, next, row[j]))
			}
		}
		for _, next := range states {
			col := distribution(sensing, nO)
			for k, o := range observations {
				must(t.SetObservation(o, a, next, col[k]))
			}
		}
	}

	return t
}

// RandomBelief returns a normalised random belief over n states.
func RandomBelief(rng *rand.Rand, n int) []float64 {
	return distribution(rng, n)
}

// NewRNG exposes the deterministic RNG factory to tests.
func NewRNG(seed int64) *rand.Rand { return rngFromSeed(seed) }

func distribution(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	var sum float64
	for i := range out {
		out[i] = rng.Float64() + 1e-3
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}

	return out
}

func ids(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}

	return out
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
