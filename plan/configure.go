package plan

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// Full returns a full-width template of the given depth: every internal node
// has one subplan per observation. Every node executes action.
//
// Node count: Σ_{k<depth} |O|^k.
func Full(depth int, observations []string, action string) (*Plan, error) {
	if depth < 1 {
		return nil, ErrBadDepth
	}
	if depth == 1 || len(observations) == 0 {
		return Leaf(action), nil
	}
	subplans := make(map[string]*Plan, len(observations))
	for _, o := range observations {
		child, err := Full(depth-1, observations, action)
		if err != nil {
			return nil, err
		}
		subplans[o] = child
	}

	return New(action, subplans), nil
}

// Configure relabels a fresh clone of template: the i-th node in
// breadth-first order (see Walk) executes actions[config[i]]. The template is
// left untouched and the clone carries no cached alpha vectors.
//
// Errors: ErrNilPlan, ErrNoActions, ErrBadConfiguration when
// len(config) != template.NodeCount() or an index is outside [0, len(actions)).
//
// Complexity: O(nodes · log(|O|)).
func Configure(template *Plan, actions []string, config []int) (*Plan, error) {
	if template == nil {
		return nil, ErrNilPlan
	}
	if len(actions) == 0 {
		return nil, ErrNoActions
	}
	out := cloneTree(template, false)
	if n := out.NodeCount(); len(config) != n {
		return nil, fmt.Errorf("%w: %d indices for %d nodes", ErrBadConfiguration, len(config), n)
	}

	var (
		i   int
		err error
	)
	out.Walk(func(node *Plan, _ int) bool {
		if config[i] < 0 || config[i] >= len(actions) {
			err = fmt.Errorf("%w: index %d at node %d", ErrBadConfiguration, config[i], i)
			return false
		}
		node.Action = actions[config[i]]
		i++

		return true
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ConfigurationCount returns |actions|^nodes, the number of distinct
// labelings of template.
//
// Errors: ErrNilPlan, ErrNoActions, ErrTooManyConfigurations on int overflow.
func ConfigurationCount(template *Plan, actions []string) (int, error) {
	if template == nil {
		return 0, ErrNilPlan
	}
	if len(actions) == 0 {
		return 0, ErrNoActions
	}
	count := 1
	for n := template.NodeCount(); n > 0; n-- {
		if count > math.MaxInt/len(actions) {
			return 0, ErrTooManyConfigurations
		}
		count *= len(actions)
	}

	return count, nil
}

// EachConfiguration calls fn with every labeling of template, in
// mixed-radix order: the last breadth-first node varies fastest, so the
// first call labels every node with actions[0]. Returning false from fn
// stops the enumeration. Each plan passed to fn is a fresh tree owned by
// the callee.
//
// Errors: those of ConfigurationCount.
//
// Complexity: O(|actions|^nodes · nodes).
func EachConfiguration(template *Plan, actions []string, fn func(*Plan) bool) error {
	if _, err := ConfigurationCount(template, actions); err != nil {
		return err
	}
	dims := make([]int, template.NodeCount())
	for i := range dims {
		dims[i] = len(actions)
	}

	gen := combin.NewCartesianGenerator(dims)
	config := make([]int, len(dims))
	for gen.Next() {
		p, err := Configure(template, actions, gen.Product(config))
		if err != nil {
			return err
		}
		if !fn(p) {
			return nil
		}
	}

	return nil
}
