package plan

import (
	"slices"
	"strings"
)

// Plan is a node of a conditional plan: one action plus, for internal nodes,
// one owned subplan per observation.
//
// Action and Subplans are exported for inspection and hand-built trees; once
// a plan's alpha vector has been computed the tree must be treated as
// immutable.
type Plan struct {
	// Action is the action executed at this node.
	Action string

	// Subplans maps an observation to the plan followed after observing it.
	// A nil or empty map marks a leaf.
	Subplans map[string]*Plan

	// alpha is the write-once alpha vector cache (nil until computed).
	alpha []float64
}

// Leaf returns a depth-1 plan executing action.
func Leaf(action string) *Plan {
	return &Plan{Action: action}
}

// New returns an internal node. The subplans are taken over, not copied;
// callers that want to keep using them elsewhere must pass clones.
func New(action string, subplans map[string]*Plan) *Plan {
	return &Plan{Action: action, Subplans: subplans}
}

// IsLeaf reports whether p has no subplans.
func (p *Plan) IsLeaf() bool { return len(p.Subplans) == 0 }

// Subplan returns the child followed after observation o.
func (p *Plan) Subplan(o string) (*Plan, bool) {
	child, ok := p.Subplans[o]

	return child, ok && child != nil
}

// Alpha returns the cached alpha vector, if any. The slice is shared with
// the plan and must not be modified.
func (p *Plan) Alpha() ([]float64, bool) {
	return p.alpha, p.alpha != nil
}

// Depth returns the length of the longest observation chain plus one.
// A nil plan has depth 0.
//
// Complexity: O(nodes).
func (p *Plan) Depth() int {
	if p == nil {
		return 0
	}
	var deepest int
	for _, child := range p.Subplans {
		if d := child.Depth(); d > deepest {
			deepest = d
		}
	}

	return deepest + 1
}

// NodeCount returns the number of nodes in the tree.
func (p *Plan) NodeCount() int {
	if p == nil {
		return 0
	}
	n := 1
	for _, child := range p.Subplans {
		n += child.NodeCount()
	}

	return n
}

// Equal reports structural equality: same action at every node and
// recursively equal subplan maps. Cached alpha vectors are ignored.
func (p *Plan) Equal(q *Plan) bool {
	if p == nil || q == nil {
		return p == q
	}
	if p.Action != q.Action || len(p.Subplans) != len(q.Subplans) {
		return false
	}
	for o, child := range p.Subplans {
		other, ok := q.Subplans[o]
		if !ok || !child.Equal(other) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of p, including cached alpha vectors.
func (p *Plan) Clone() *Plan {
	return cloneTree(p, true)
}

// Walk visits the tree breadth-first. Children of a node are visited in
// lexicographic observation order, which makes the order deterministic.
// Returning false from fn stops the walk.
//
// Complexity: O(nodes · log(|O|)) for the per-node key sort.
func (p *Plan) Walk(fn func(node *Plan, depth int) bool) {
	if p == nil {
		return
	}
	type item struct {
		node  *Plan
		depth int
	}
	queue := []item{{node: p, depth: 1}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		if !fn(it.node, it.depth) {
			return
		}
		for _, o := range sortedKeys(it.node.Subplans) {
			if child := it.node.Subplans[o]; child != nil {
				queue = append(queue, item{node: child, depth: it.depth + 1})
			}
		}
	}
}

// String renders the tree as action(obs: subtree, ...), e.g.
// "feed(crying: ignore, quiet: ignore)".
func (p *Plan) String() string {
	var sb strings.Builder
	p.write(&sb)

	return sb.String()
}

func (p *Plan) write(sb *strings.Builder) {
	if p == nil {
		sb.WriteString("<nil>")
		return
	}
	sb.WriteString(p.Action)
	if p.IsLeaf() {
		return
	}
	sb.WriteByte('(')
	for i, o := range sortedKeys(p.Subplans) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(o)
		sb.WriteString(": ")
		p.Subplans[o].write(sb)
	}
	sb.WriteByte(')')
}

// cloneTree deep-copies p; keepAlpha controls whether caches are carried over.
func cloneTree(p *Plan, keepAlpha bool) *Plan {
	if p == nil {
		return nil
	}
	out := &Plan{Action: p.Action}
	if keepAlpha && p.alpha != nil {
		out.alpha = slices.Clone(p.alpha)
	}
	if p.Subplans != nil {
		out.Subplans = make(map[string]*Plan, len(p.Subplans))
		for o, child := range p.Subplans {
			out.Subplans[o] = cloneTree(child, keepAlpha)
		}
	}

	return out
}

func sortedKeys(m map[string]*Plan) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}
