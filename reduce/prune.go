// Package reduce implements the lifeline-removal rewrites: Prune (and
// its affected-lifelines variant) and EliminateLifelines.
package reduce

import (
	"github.com/hibou-lang/hibou/structural"
	"github.com/hibou-lang/hibou/term"
)

// Prune removes from t every action involving a lifeline in l, per the
// rules of §4.C: an Emission or Reception involving l becomes Empty;
// Alt keeps whichever branch avoids l verbatim when only one does,
// recurses on both when both avoid it, and when neither avoids it drops
// the left branch and prunes the right one; Loop collapses
// to Empty unless its body avoids l; the remaining binary operators
// recurse on both children and collapse an Empty side, with Sync
// additionally degrading to Par once the rendezvous set no longer
// intersects either surviving side.
func Prune(t term.Interaction, l term.LifelineSet) term.Interaction {
	switch t.Kind() {
	case term.KEmpty:
		return t
	case term.KEmission, term.KReception:
		if !structural.Avoids(t, l) {
			return term.Empty()
		}

		return t
	case term.KSeq:
		return pruneCollapse(t.Left(), t.Right(), l, term.NewSeq)
	case term.KCoReg:
		cr := t.CoRegSet()
		return pruneCollapse(t.Left(), t.Right(), l, func(a, b term.Interaction) term.Interaction {
			return term.NewCoReg(cr, a, b)
		})
	case term.KStrict, term.KAnd:
		ctor := term.NewStrict
		return pruneCollapse(t.Left(), t.Right(), l, ctor)
	case term.KPar:
		return pruneCollapse(t.Left(), t.Right(), l, term.NewPar)
	case term.KSync:
		return pruneSync(t, l)
	case term.KAlt:
		return pruneAlt(t, l)
	case term.KLoop:
		return pruneLoop(t, l)
	default:
		return t
	}
}

func pruneCollapse(i1, i2 term.Interaction, l term.LifelineSet, rewrap func(a, b term.Interaction) term.Interaction) term.Interaction {
	p1 := Prune(i1, l)
	p2 := Prune(i2, l)

	switch {
	case p1.IsEmpty():
		return p2
	case p2.IsEmpty():
		return p1
	default:
		return rewrap(p1, p2)
	}
}

func pruneSync(t term.Interaction, l term.LifelineSet) term.Interaction {
	p1 := Prune(t.Left(), l)
	p2 := Prune(t.Right(), l)

	acts1 := structural.GetAllTraceActions(p1)
	acts2 := structural.GetAllTraceActions(p2)

	syncActs := t.SyncActions()

	touches1, touches2 := false, false

	for a := range syncActs {
		if _, ok := acts1[a]; ok {
			touches1 = true
		}

		if _, ok := acts2[a]; ok {
			touches2 = true
		}
	}

	if !touches1 && !touches2 {
		switch {
		case p1.IsEmpty():
			return p2
		case p2.IsEmpty():
			return p1
		default:
			return term.NewPar(p1, p2)
		}
	}

	return term.NewSync(syncActs, p1, p2)
}

func pruneAlt(t term.Interaction, l term.LifelineSet) term.Interaction {
	i1, i2 := t.Left(), t.Right()

	if structural.Avoids(i1, l) {
		if structural.Avoids(i2, l) {
			return term.NewAlt(Prune(i1, l), Prune(i2, l))
		}

		return Prune(i1, l)
	}

	return Prune(i2, l)
}

func pruneLoop(t term.Interaction, l term.LifelineSet) term.Interaction {
	body := t.Body()

	if structural.Avoids(body, l) {
		pruned := Prune(body, l)
		if !pruned.IsEmpty() {
			return term.NewLoop(t.LoopKind(), pruned)
		}
	}

	return term.Empty()
}

// PruneWithAffected behaves like Prune but additionally returns the set
// of lifelines whose behaviour was erased by the pruning (needed by
// execute-right for Seq/CoReg, §4.E).
func PruneWithAffected(t term.Interaction, l term.LifelineSet) (term.Interaction, term.LifelineSet) {
	switch t.Kind() {
	case term.KEmpty:
		return t, term.NewLifelineSet()
	case term.KEmission, term.KReception:
		if !structural.Avoids(t, l) {
			return term.Empty(), structural.Involves(t)
		}

		return t, term.NewLifelineSet()
	case term.KSeq:
		return pruneWithAffectedCollapse(t.Left(), t.Right(), l, term.NewSeq)
	case term.KCoReg:
		cr := t.CoRegSet()
		return pruneWithAffectedCollapse(t.Left(), t.Right(), l, func(a, b term.Interaction) term.Interaction {
			return term.NewCoReg(cr, a, b)
		})
	case term.KStrict, term.KAnd:
		return pruneWithAffectedCollapse(t.Left(), t.Right(), l, term.NewStrict)
	case term.KPar:
		return pruneWithAffectedCollapse(t.Left(), t.Right(), l, term.NewPar)
	case term.KSync:
		_, aff1 := PruneWithAffected(t.Left(), l)
		_, aff2 := PruneWithAffected(t.Right(), l)

		return pruneSync(t, l), aff1.Union(aff2)
	case term.KAlt:
		return pruneWithAffectedAlt(t, l)
	case term.KLoop:
		return pruneWithAffectedLoop(t, l)
	default:
		return t, term.NewLifelineSet()
	}
}

func pruneWithAffectedCollapse(i1, i2 term.Interaction, l term.LifelineSet, rewrap func(a, b term.Interaction) term.Interaction) (term.Interaction, term.LifelineSet) {
	p1, aff1 := PruneWithAffected(i1, l)
	p2, aff2 := PruneWithAffected(i2, l)
	aff := aff1.Union(aff2)

	switch {
	case p1.IsEmpty():
		return p2, aff
	case p2.IsEmpty():
		return p1, aff
	default:
		return rewrap(p1, p2), aff
	}
}

func pruneWithAffectedAlt(t term.Interaction, l term.LifelineSet) (term.Interaction, term.LifelineSet) {
	i1, i2 := t.Left(), t.Right()

	if structural.Avoids(i1, l) {
		if structural.Avoids(i2, l) {
			p1, aff1 := PruneWithAffected(i1, l)
			p2, aff2 := PruneWithAffected(i2, l)

			return term.NewAlt(p1, p2), aff1.Union(aff2)
		}

		return Prune(i1, l), structural.Involves(i1).Union(structural.Involves(i2))
	}

	return Prune(i2, l), structural.Involves(i1).Union(structural.Involves(i2))
}

func pruneWithAffectedLoop(t term.Interaction, l term.LifelineSet) (term.Interaction, term.LifelineSet) {
	body := t.Body()

	if structural.Avoids(body, l) {
		pruned, aff := PruneWithAffected(body, l)
		if !pruned.IsEmpty() {
			return term.NewLoop(t.LoopKind(), pruned), aff
		}

		return term.Empty(), aff
	}

	return term.Empty(), structural.Involves(body)
}
