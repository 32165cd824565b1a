package canon

import (
	"github.com/hibou-lang/hibou/process"
	"github.com/hibou-lang/hibou/term"
)

// phaseExpander drives one canonization phase through process.Manager:
// each node offers at most one pending Transformation (the next call to
// GetOneTransformation), so the "search" is always a single chain, never
// a branching tree — get-all-transformations' branching variant is not
// implemented (see canon/ DESIGN.md entry). visited guards against a
// rewrite cycle a buggy rule could otherwise spin on forever;
// process.Manager itself keeps no memoization map.
type phaseExpander struct {
	rules   []rule
	visited []term.Interaction
}

func (e *phaseExpander) LoopDepthOf(term.Interaction, Transformation) uint32 { return 0 }

func (e *phaseExpander) Apply(data term.Interaction, step Transformation) (term.Interaction, []Transformation) {
	result := step.Result

	if containsInteraction(e.visited, result) {
		return result, nil
	}

	e.visited = append(e.visited, result)

	if t, ok := GetOneTransformation(e.rules, result); ok {
		return result, []Transformation{t}
	}

	return result, nil
}

// captureObserver forwards every callback to an inner process.Observer
// while remembering the most recently accepted node's data, so the
// caller can read off the chain's final term once the phase drains.
type captureObserver struct {
	inner process.Observer[term.Interaction, Transformation]
	last  term.Interaction
}

func (c *captureObserver) OnFiltered(parent, child process.NodePath, step Transformation, kind process.FilterKind) {
	c.inner.OnFiltered(parent, child, step, kind)
}

func (c *captureObserver) OnExpanded(parent, child process.NodePath, step Transformation, newData term.Interaction) {
	c.inner.OnExpanded(parent, child, step, newData)
	c.last = newData
}

// Canonize drives an interaction to its canonical form (§4.H): phase 1
// (Defactorize) runs to a fixpoint, then phase 2 (Factorize) runs to a
// fixpoint over the result. Returns the canonical term and the total
// number of transformation steps accepted across both phases, matching
// §6's `canonize(term, params) → (canonical_term, node_count)`.
func Canonize(i term.Interaction, observer process.Observer[term.Interaction, Transformation]) (term.Interaction, uint32) {
	if observer == nil {
		observer = process.NopObserver[term.Interaction, Transformation]{}
	}

	i, n1 := runPhase(phaseDefactorize(), i, observer)
	i, n2 := runPhase(phaseFactorize(), i, observer)

	return i, n1 + n2
}

func runPhase(rules []rule, start term.Interaction, observer process.Observer[term.Interaction, Transformation]) (term.Interaction, uint32) {
	t, ok := GetOneTransformation(rules, start)
	if !ok {
		return start, 0
	}

	expander := &phaseExpander{rules: rules, visited: []term.Interaction{start}}
	capture := &captureObserver{inner: observer, last: start}
	mgr := process.NewManager[term.Interaction, Transformation](process.BFS, nil, capture)
	mgr.Seed(start, []Transformation{t})
	mgr.Run(expander)

	return capture.last, mgr.NodeCount()
}

func containsInteraction(haystack []term.Interaction, needle term.Interaction) bool {
	for _, h := range haystack {
		if h.Equal(needle) {
			return true
		}
	}

	return false
}
