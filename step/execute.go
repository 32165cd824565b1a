// Package step implements Execute, the single-step reduction of an
// interaction term at a fireable position (§4.E).
package step

import (
	"github.com/hibou-lang/hibou/reduce"
	"github.com/hibou-lang/hibou/structural"
	"github.com/hibou-lang/hibou/term"
)

// Execute fires t at position p, consuming the action addressed by p
// against targets (the lifelines occupied by that action), and returns
// the residual term. When wantAffected is true it additionally returns
// the set of lifelines whose behaviour was erased as a side effect of
// firing (e.g. the Alt branch not taken, a Strict left side discarded
// once its right sibling fires, or a Seq/CoReg left side pruned of the targets so the right
// side may proceed) — callers that don't need this set should pass
// false to skip the bookkeeping.
func Execute(t term.Interaction, p term.Position, targets term.LifelineSet, wantAffected bool) (term.Interaction, term.LifelineSet) {
	switch {
	case p.IsEpsilon():
		subIdx, hasSub := p.SubIndex()
		return executeLeaf(t, subIdx, hasSub, targets, wantAffected)
	case p.IsLeft():
		return executeLeft(t, p.Sub(), targets, wantAffected)
	case p.IsRight():
		return executeRight(t, p.Sub(), targets, wantAffected)
	case p.IsBoth():
		return executeBoth(t, p.Both1(), p.Both2(), targets, wantAffected)
	default:
		return t, term.NewLifelineSet()
	}
}

func executeLeaf(t term.Interaction, subIdx int, hasSub bool, targets term.LifelineSet, wantAffected bool) (term.Interaction, term.LifelineSet) {
	var affected term.LifelineSet
	if wantAffected {
		affected = targets
	} else {
		affected = term.NewLifelineSet()
	}

	switch t.Kind() {
	case term.KEmission:
		return executeEmission(t), affected
	case term.KReception:
		return executeReception(t, subIdx, hasSub), affected
	default:
		panic("execute: leaf position on non-leaf node")
	}
}

func executeEmission(t term.Interaction) term.Interaction {
	if t.Synchronicity() == term.Sync {
		return term.Empty()
	}

	targets := t.Targets()
	if len(targets) == 0 {
		return term.Empty()
	}

	return term.NewReception(nil, t.Message(), term.Async, targets...)
}

func executeReception(t term.Interaction, subIdx int, hasSub bool) term.Interaction {
	if t.Synchronicity() == term.Sync {
		return term.Empty()
	}

	if !hasSub {
		panic("execute: asynchronous reception requires a sub-index")
	}

	recipients := t.Recipients()
	remaining := make([]term.Lifeline, 0, len(recipients)-1)
	remaining = append(remaining, recipients[:subIdx]...)
	remaining = append(remaining, recipients[subIdx+1:]...)

	if len(remaining) == 0 {
		return term.Empty()
	}

	gate, hasGate := t.OriginGate()
	var gatePtr *term.Gate
	if hasGate {
		gatePtr = &gate
	}

	return term.NewReception(gatePtr, t.Message(), term.Async, remaining...)
}

// makeFollowUpLoop builds the residual of firing inside a Loop's body:
// a bare Loop when the body's residual is Empty (the iteration
// completed), otherwise the kind-specific unrolling that threads the
// fired iteration ahead of the remaining loop (§4.E, §C).
func makeFollowUpLoop(oldBody, newBody term.Interaction, lkind term.LoopKind, targets term.LifelineSet) term.Interaction {
	if newBody.IsEmpty() {
		return term.NewLoop(lkind, oldBody)
	}

	orig := term.NewLoop(lkind, oldBody)

	switch lkind {
	case term.LoopS:
		return term.NewStrict(newBody, orig)
	case term.LoopH:
		return term.NewSeq(newBody, orig)
	case term.LoopW:
		prunedLoop := reduce.Prune(orig, targets)
		followUp := term.NewSeq(newBody, orig)

		if prunedLoop.IsEmpty() {
			return followUp
		}

		return term.NewSeq(prunedLoop, followUp)
	case term.LoopP:
		return term.NewPar(newBody, orig)
	default:
		return orig
	}
}

func executeLeft(t term.Interaction, sub term.Position, targets term.LifelineSet, wantAffected bool) (term.Interaction, term.LifelineSet) {
	switch t.Kind() {
	case term.KAlt:
		i1, i2 := t.Left(), t.Right()
		res, _ := Execute(i1, sub, targets, false)

		if wantAffected {
			return res, structural.Involves(i1).Union(structural.Involves(i2))
		}

		return res, term.NewLifelineSet()

	case term.KLoop:
		i1 := t.Body()
		newI1, _ := Execute(i1, sub, targets, false)

		var affected term.LifelineSet
		if wantAffected {
			affected = structural.Involves(i1)
		} else {
			affected = term.NewLifelineSet()
		}

		return makeFollowUpLoop(i1, newI1, t.LoopKind(), targets), affected

	case term.KStrict:
		i2 := t.Right()
		newI1, affected := Execute(t.Left(), sub, targets, wantAffected)

		if newI1.IsEmpty() {
			return i2, affected
		}

		return term.NewStrict(newI1, i2), affected

	case term.KSeq:
		i2 := t.Right()
		newI1, affected := Execute(t.Left(), sub, targets, wantAffected)

		if newI1.IsEmpty() {
			return i2, affected
		}

		return term.NewSeq(newI1, i2), affected

	case term.KCoReg:
		cr, i2 := t.CoRegSet(), t.Right()
		newI1, affected := Execute(t.Left(), sub, targets, wantAffected)

		if newI1.IsEmpty() {
			return i2, affected
		}

		return term.NewCoReg(cr, newI1, i2), affected

	case term.KPar:
		i2 := t.Right()
		newI1, affected := Execute(t.Left(), sub, targets, wantAffected)

		if newI1.IsEmpty() {
			return i2, affected
		}

		return term.NewPar(newI1, i2), affected

	case term.KSync:
		syncActs, i2 := t.SyncActions(), t.Right()
		newI1, affected := Execute(t.Left(), sub, targets, wantAffected)

		return degradeOrKeepSync(newI1, i2, syncActs), affected

	default:
		panic("execute: left position on non-left-capable node")
	}
}

func executeRight(t term.Interaction, sub term.Position, targets term.LifelineSet, wantAffected bool) (term.Interaction, term.LifelineSet) {
	switch t.Kind() {
	case term.KAlt:
		i1, i2 := t.Left(), t.Right()
		res, _ := Execute(i2, sub, targets, false)

		if wantAffected {
			return res, structural.Involves(i1).Union(structural.Involves(i2))
		}

		return res, term.NewLifelineSet()

	case term.KPar:
		i1 := t.Left()
		newI2, affected := Execute(t.Right(), sub, targets, wantAffected)

		if newI2.IsEmpty() {
			return i1, affected
		}

		return term.NewPar(i1, newI2), affected

	case term.KStrict:
		if wantAffected {
			affected := structural.Involves(t.Left())
			newI2, aff2 := Execute(t.Right(), sub, targets, true)

			return newI2, affected.Union(aff2)
		}

		newI2, _ := Execute(t.Right(), sub, targets, false)

		return newI2, term.NewLifelineSet()

	case term.KSeq:
		var newI1 term.Interaction
		var newI2 term.Interaction
		var affected term.LifelineSet

		if wantAffected {
			prunedI1, aff1 := reduce.PruneWithAffected(t.Left(), targets)
			execI2, aff2 := Execute(t.Right(), sub, targets, true)
			newI1, newI2 = prunedI1, execI2
			affected = aff1.Union(aff2)
		} else {
			newI1 = reduce.Prune(t.Left(), targets)
			execI2, _ := Execute(t.Right(), sub, targets, false)
			newI2 = execI2
			affected = term.NewLifelineSet()
		}

		return collapseSeqLike(newI1, newI2, func(a, b term.Interaction) term.Interaction { return term.NewSeq(a, b) }), affected

	case term.KCoReg:
		cr := t.CoRegSet()
		lfsToPrune := make(term.LifelineSet, len(targets))
		for lf := range targets {
			if !cr.Contains(lf) {
				lfsToPrune[lf] = struct{}{}
			}
		}

		var newI1, newI2 term.Interaction
		var affected term.LifelineSet

		if wantAffected {
			var gotI1 term.Interaction
			var aff1 term.LifelineSet

			if len(lfsToPrune) > 0 {
				gotI1, aff1 = reduce.PruneWithAffected(t.Left(), lfsToPrune)
			} else {
				gotI1, aff1 = t.Left(), term.NewLifelineSet()
			}

			execI2, aff2 := Execute(t.Right(), sub, targets, true)
			newI1, newI2 = gotI1, execI2
			affected = aff1.Union(aff2)
		} else {
			if len(lfsToPrune) > 0 {
				newI1 = reduce.Prune(t.Left(), lfsToPrune)
			} else {
				newI1 = t.Left()
			}

			execI2, _ := Execute(t.Right(), sub, targets, false)
			newI2 = execI2
			affected = term.NewLifelineSet()
		}

		return collapseSeqLike(newI1, newI2, func(a, b term.Interaction) term.Interaction { return term.NewCoReg(cr, a, b) }), affected

	case term.KSync:
		syncActs, i1 := t.SyncActions(), t.Left()
		newI2, affected := Execute(t.Right(), sub, targets, wantAffected)

		return degradeOrKeepSyncRight(i1, newI2, syncActs), affected

	default:
		panic("execute: right position on non-right-capable node")
	}
}

func executeBoth(t term.Interaction, sub1, sub2 term.Position, targets term.LifelineSet, wantAffected bool) (term.Interaction, term.LifelineSet) {
	switch t.Kind() {
	case term.KAlt:
		newI1, aff1 := Execute(t.Left(), sub1, targets, wantAffected)
		newI2, aff2 := Execute(t.Right(), sub2, targets, wantAffected)
		affected := aff1.Union(aff2)

		if newI1.IsEmpty() && newI2.IsEmpty() {
			return term.Empty(), affected
		}

		return term.NewAlt(newI1, newI2), affected

	case term.KSync:
		syncActs := t.SyncActions()
		newI1, aff1 := Execute(t.Left(), sub1, targets, wantAffected)
		newI2, aff2 := Execute(t.Right(), sub2, targets, wantAffected)
		affected := aff1.Union(aff2)

		return degradeOrKeepSyncBoth(newI1, newI2, syncActs), affected

	default:
		panic("execute: both position on non-both-capable node")
	}
}

func collapseSeqLike(i1, i2 term.Interaction, rewrap func(a, b term.Interaction) term.Interaction) term.Interaction {
	switch {
	case i1.IsEmpty():
		return i2
	case i2.IsEmpty():
		return i1
	default:
		return rewrap(i1, i2)
	}
}

func syncTouches(syncActs map[term.TraceAction]struct{}, acts1, acts2 map[term.TraceAction]struct{}) (bool, bool) {
	touches1, touches2 := false, false

	for a := range syncActs {
		if _, ok := acts1[a]; ok {
			touches1 = true
		}

		if _, ok := acts2[a]; ok {
			touches2 = true
		}
	}

	return touches1, touches2
}

func degradeOrKeepSync(newI1, i2 term.Interaction, syncActs map[term.TraceAction]struct{}) term.Interaction {
	acts1 := structural.GetAllTraceActions(newI1)
	acts2 := structural.GetAllTraceActions(i2)

	touches1, touches2 := syncTouches(syncActs, acts1, acts2)
	if touches1 || touches2 {
		return term.NewSync(syncActs, newI1, i2)
	}

	return collapseSeqLike(newI1, i2, func(a, b term.Interaction) term.Interaction { return term.NewPar(a, b) })
}

func degradeOrKeepSyncRight(i1, newI2 term.Interaction, syncActs map[term.TraceAction]struct{}) term.Interaction {
	acts1 := structural.GetAllTraceActions(i1)
	acts2 := structural.GetAllTraceActions(newI2)

	touches1, touches2 := syncTouches(syncActs, acts1, acts2)
	if touches1 || touches2 {
		return term.NewSync(syncActs, i1, newI2)
	}

	return collapseSeqLike(i1, newI2, func(a, b term.Interaction) term.Interaction { return term.NewPar(a, b) })
}

func degradeOrKeepSyncBoth(newI1, newI2 term.Interaction, syncActs map[term.TraceAction]struct{}) term.Interaction {
	acts1 := structural.GetAllTraceActions(newI1)
	acts2 := structural.GetAllTraceActions(newI2)

	touches1, touches2 := syncTouches(syncActs, acts1, acts2)
	if touches1 || touches2 {
		return term.NewSync(syncActs, newI1, newI2)
	}

	return collapseSeqLike(newI1, newI2, func(a, b term.Interaction) term.Interaction { return term.NewPar(a, b) })
}
