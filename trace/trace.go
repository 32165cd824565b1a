// Package trace defines multi-traces (one trace per co-localization
// canal) and the per-canal analysis flags tracked while an interaction
// is explored against them (§4.F).
package trace

import "github.com/hibou-lang/hibou/term"

// Canal indexes a co-localization channel within a MultiTrace.
type Canal int

// MultiTrace is an ordered collection of traces, one per canal, each a
// sequence of multi-actions to be matched against the interaction's
// frontier as it executes.
type MultiTrace [][]term.MultiAction

// Len returns the number of canals.
func (mt MultiTrace) Len() int { return len(mt) }

// CanalLen returns the total number of multi-actions on canal c,
// consumed or not.
func (mt MultiTrace) CanalLen(c Canal) int { return len(mt[c]) }

// Head returns the next unconsumed multi-action on canal c.
func (mt MultiTrace) Head(c Canal, consumed int) (term.MultiAction, bool) {
	if consumed >= len(mt[c]) {
		return nil, false
	}

	return mt[c][consumed], true
}
