// Package structural implements the pure recursive folds over
// interaction terms used throughout the core: emptiness, lifeline
// involvement/avoidance, loop-depth/count measures, and the trace-action
// vocabulary of a term.
package structural

import "github.com/hibou-lang/hibou/term"

// ExpressEmpty reports whether t may execute the empty word.
func ExpressEmpty(t term.Interaction) bool {
	switch t.Kind() {
	case term.KEmpty:
		return true
	case term.KEmission, term.KReception:
		return false
	case term.KStrict, term.KSeq, term.KCoReg, term.KPar, term.KSync, term.KAnd:
		return ExpressEmpty(t.Left()) && ExpressEmpty(t.Right())
	case term.KAlt:
		return ExpressEmpty(t.Left()) || ExpressEmpty(t.Right())
	case term.KLoop:
		return true
	default:
		return false
	}
}

// Involves returns the set of lifelines appearing anywhere in t.
func Involves(t term.Interaction) term.LifelineSet {
	switch t.Kind() {
	case term.KEmpty:
		return term.NewLifelineSet()
	case term.KEmission:
		s := term.NewLifelineSet(t.Origin())
		return s.Union(term.NewLifelineSet(t.Targets()...))
	case term.KReception:
		return term.NewLifelineSet(t.Recipients()...)
	case term.KStrict, term.KSeq, term.KCoReg, term.KPar, term.KAlt, term.KSync, term.KAnd:
		return Involves(t.Left()).Union(Involves(t.Right()))
	case term.KLoop:
		return Involves(t.Body())
	default:
		return term.NewLifelineSet()
	}
}

// InvolvesAnyOf reports whether t involves at least one lifeline of L.
func InvolvesAnyOf(t term.Interaction, l term.LifelineSet) bool {
	return Involves(t).Intersects(l)
}

// Avoids reports whether no lifeline of L appears in t.
func Avoids(t term.Interaction, l term.LifelineSet) bool {
	return !InvolvesAnyOf(t, l)
}

// MaxNestedLoopDepth returns the maximum number of nested Loop nodes
// along any path in t.
func MaxNestedLoopDepth(t term.Interaction) uint32 {
	switch t.Kind() {
	case term.KEmpty, term.KEmission, term.KReception:
		return 0
	case term.KStrict, term.KSeq, term.KCoReg, term.KPar, term.KAlt, term.KSync, term.KAnd:
		l, r := MaxNestedLoopDepth(t.Left()), MaxNestedLoopDepth(t.Right())
		if l > r {
			return l
		}

		return r
	case term.KLoop:
		return 1 + MaxNestedLoopDepth(t.Body())
	default:
		return 0
	}
}

// TotalLoopNum returns the total number of Loop nodes in t.
func TotalLoopNum(t term.Interaction) uint32 {
	switch t.Kind() {
	case term.KEmpty, term.KEmission, term.KReception:
		return 0
	case term.KStrict, term.KSeq, term.KCoReg, term.KPar, term.KAlt, term.KSync, term.KAnd:
		return TotalLoopNum(t.Left()) + TotalLoopNum(t.Right())
	case term.KLoop:
		return 1 + TotalLoopNum(t.Body())
	default:
		return 0
	}
}

// GetAllTraceActions returns the set of all trace actions a term could
// ever produce (used by Sync semantics to decide whether a Sync still
// touches its rendezvous set).
func GetAllTraceActions(t term.Interaction) map[term.TraceAction]struct{} {
	out := make(map[term.TraceAction]struct{})
	collectTraceActions(t, out)

	return out
}

func collectTraceActions(t term.Interaction, out map[term.TraceAction]struct{}) {
	switch t.Kind() {
	case term.KEmpty:
		return
	case term.KEmission:
		for _, tgt := range t.Targets() {
			out[term.TraceAction{Lifeline: t.Origin(), Kind: term.KindEmission, Message: t.Message()}] = struct{}{}
			out[term.TraceAction{Lifeline: tgt, Kind: term.KindReception, Message: t.Message()}] = struct{}{}
		}
	case term.KReception:
		for _, r := range t.Recipients() {
			out[term.TraceAction{Lifeline: r, Kind: term.KindReception, Message: t.Message()}] = struct{}{}
		}
	case term.KStrict, term.KSeq, term.KCoReg, term.KPar, term.KAlt, term.KSync, term.KAnd:
		collectTraceActions(t.Left(), out)
		collectTraceActions(t.Right(), out)
	case term.KLoop:
		collectTraceActions(t.Body(), out)
	}
}
