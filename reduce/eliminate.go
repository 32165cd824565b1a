package reduce

import (
	"github.com/hibou-lang/hibou/structural"
	"github.com/hibou-lang/hibou/term"
)

// EliminateLifelines is the stronger lifeline-removal variant used by
// the Eliminate analysis kind once a co-localization has been fully
// observed and declared dead (§4.C). Unlike Prune, which removes any
// action merely mentioning a lifeline of l, EliminateLifelines only
// deletes a node when the lifelines it involves are entirely contained
// in l — a node that mixes a dead lifeline with a still-live one is
// left untouched, since further steps may still need to execute its
// live part. Strict, Seq, CoReg, Par and And recurse and collapse an
// Empty side the same way Prune does; Alt and Sync are rebuilt from
// both eliminated children without collapsing; Loop collapses to Empty
// only when its body is entirely within l.
func EliminateLifelines(t term.Interaction, l term.LifelineSet) term.Interaction {
	if entirelyWithin(t, l) {
		return term.Empty()
	}

	switch t.Kind() {
	case term.KEmpty, term.KEmission, term.KReception:
		return t
	case term.KSeq:
		return eliminateCollapse(t.Left(), t.Right(), l, term.NewSeq)
	case term.KCoReg:
		cr := t.CoRegSet()
		return eliminateCollapse(t.Left(), t.Right(), l, func(a, b term.Interaction) term.Interaction {
			return term.NewCoReg(cr, a, b)
		})
	case term.KStrict, term.KAnd:
		return eliminateCollapse(t.Left(), t.Right(), l, term.NewStrict)
	case term.KPar:
		return eliminateCollapse(t.Left(), t.Right(), l, term.NewPar)
	case term.KSync:
		return term.NewSync(t.SyncActions(), EliminateLifelines(t.Left(), l), EliminateLifelines(t.Right(), l))
	case term.KAlt:
		return term.NewAlt(EliminateLifelines(t.Left(), l), EliminateLifelines(t.Right(), l))
	case term.KLoop:
		return term.NewLoop(t.LoopKind(), EliminateLifelines(t.Body(), l))
	default:
		return t
	}
}

func eliminateCollapse(i1, i2 term.Interaction, l term.LifelineSet, rewrap func(a, b term.Interaction) term.Interaction) term.Interaction {
	e1 := EliminateLifelines(i1, l)
	e2 := EliminateLifelines(i2, l)

	switch {
	case e1.IsEmpty():
		return e2
	case e2.IsEmpty():
		return e1
	default:
		return rewrap(e1, e2)
	}
}

func entirelyWithin(t term.Interaction, l term.LifelineSet) bool {
	involved := structural.Involves(t)
	if involved.Empty() {
		return false
	}

	for lf := range involved {
		if !l.Contains(lf) {
			return false
		}
	}

	return true
}
