package model

import (
	"fmt"
	"math"
)

// DefaultStochasticEps is the tolerance Validate uses when eps <= 0 is passed.
const DefaultStochasticEps = 1e-9

// Validate runs Compile's structural checks and then verifies that m is a
// proper stochastic model:
//   - every probability lies in [0, 1] (within eps);
//   - every non-empty transition row T(s, a, ·) sums to 1 (within eps);
//   - every non-empty observation column Z(·, a, s') sums to 1 (within eps).
//
// Empty rows are accepted: an absent entry set means "probability 0
// everywhere", which the evaluator treats as a terminal sink.
//
// Errors: those of Compile, ErrBadProbability, ErrNotStochastic.
//
// Complexity: O(|A|·|S|·(|S| + |O|)).
func Validate(m Model, eps float64) error {
	d, err := Compile(m)
	if err != nil {
		return err
	}
	if eps <= 0 {
		eps = DefaultStochasticEps
	}

	var (
		a, s, sp, o int
		sum, p      float64
	)
	for a = 0; a < d.NumActions(); a++ {
		for s = 0; s < d.NumStates(); s++ {
			sum = 0
			for sp = 0; sp < d.NumStates(); sp++ {
				p = d.T[a][s][sp]
				if p < -eps || p > 1+eps {
					return fmt.Errorf("%w: transition(%q, %q) -> %q = %v",
						ErrBadProbability, d.states[s], d.actions[a], d.states[sp], p)
				}
				sum += p
			}
			if sum != 0 && math.Abs(sum-1) > eps {
				return fmt.Errorf("%w: transition(%q, %q) sums to %v",
					ErrNotStochastic, d.states[s], d.actions[a], sum)
			}
		}
		for sp = 0; sp < d.NumStates(); sp++ {
			sum = 0
			for o = 0; o < d.NumObservations(); o++ {
				p = d.Z[a][sp][o]
				if p < -eps || p > 1+eps {
					return fmt.Errorf("%w: observation(%q, %q, %q) = %v",
						ErrBadProbability, d.observations[o], d.actions[a], d.states[sp], p)
				}
				sum += p
			}
			if sum != 0 && math.Abs(sum-1) > eps {
				return fmt.Errorf("%w: observation(·, %q, %q) sums to %v",
					ErrNotStochastic, d.actions[a], d.states[sp], sum)
			}
		}
	}

	return nil
}
