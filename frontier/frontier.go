// Package frontier computes the set of immediately-fireable positions
// of an interaction term (§4.D).
package frontier

import (
	"github.com/hibou-lang/hibou/structural"
	"github.com/hibou-lang/hibou/term"
)

// Element is a single frontier entry: the position that may fire, the
// lifelines it occupies, the multi-action it produces, and the number
// of Loop nodes traversed to reach it.
type Element struct {
	Position      term.Position
	TargetLfIDs   term.LifelineSet
	TargetActions term.MultiAction
	MaxLoopDepth  uint32
}

// Frontier computes the list of fireable FrontierElements for t.
func Frontier(t term.Interaction) []Element {
	return frontierRec(t, 0)
}

func frontierRec(t term.Interaction, loopDepth uint32) []Element {
	switch t.Kind() {
	case term.KEmpty:
		return nil
	case term.KEmission:
		return frontierOnEmission(t, loopDepth)
	case term.KReception:
		return frontierOnReception(t, loopDepth)
	case term.KStrict, term.KAnd:
		return frontierStrict(t, loopDepth)
	case term.KSeq:
		return frontierSeq(t, loopDepth, term.NewLifelineSet())
	case term.KCoReg:
		return frontierSeq(t, loopDepth, t.CoRegSet())
	case term.KPar:
		return frontierPar(t, loopDepth)
	case term.KAlt:
		return frontierAlt(t, loopDepth)
	case term.KSync:
		return frontierSync(t, loopDepth)
	case term.KLoop:
		return pushLeft(frontierRec(t.Body(), loopDepth+1))
	default:
		return nil
	}
}

func frontierOnEmission(t term.Interaction, loopDepth uint32) []Element {
	origin := t.Origin()
	msg := t.Message()

	if t.Synchronicity() == term.Sync {
		occupation := term.NewLifelineSet(origin)
		occupation = occupation.Union(term.NewLifelineSet(t.Targets()...))

		actions := term.NewMultiAction(term.TraceAction{Lifeline: origin, Kind: term.KindEmission, Message: msg})
		for _, tgt := range t.Targets() {
			actions[term.TraceAction{Lifeline: tgt, Kind: term.KindReception, Message: msg}] = struct{}{}
		}

		return []Element{{Position: term.Epsilon(nil), TargetLfIDs: occupation, TargetActions: actions, MaxLoopDepth: loopDepth}}
	}

	action := term.TraceAction{Lifeline: origin, Kind: term.KindEmission, Message: msg}

	return []Element{{
		Position:      term.Epsilon(nil),
		TargetLfIDs:   term.NewLifelineSet(origin),
		TargetActions: term.NewMultiAction(action),
		MaxLoopDepth:  loopDepth,
	}}
}

func frontierOnReception(t term.Interaction, loopDepth uint32) []Element {
	msg := t.Message()

	if t.Synchronicity() == term.Sync {
		occupation := term.NewLifelineSet(t.Recipients()...)
		actions := make(term.MultiAction)

		for _, r := range t.Recipients() {
			actions[term.TraceAction{Lifeline: r, Kind: term.KindReception, Message: msg}] = struct{}{}
		}

		return []Element{{Position: term.Epsilon(nil), TargetLfIDs: occupation, TargetActions: actions, MaxLoopDepth: loopDepth}}
	}

	recipients := t.Recipients()
	out := make([]Element, 0, len(recipients))

	for idx, r := range recipients {
		i := idx
		action := term.TraceAction{Lifeline: r, Kind: term.KindReception, Message: msg}
		out = append(out, Element{
			Position:      term.Epsilon(&i),
			TargetLfIDs:   term.NewLifelineSet(r),
			TargetActions: term.NewMultiAction(action),
			MaxLoopDepth:  loopDepth,
		})
	}

	return out
}

func frontierStrict(t term.Interaction, loopDepth uint32) []Element {
	front := pushLeft(frontierRec(t.Left(), loopDepth))

	if structural.ExpressEmpty(t.Left()) {
		front = append(front, pushRight(frontierRec(t.Right(), loopDepth))...)
	}

	return front
}

func frontierSeq(t term.Interaction, loopDepth uint32, coreg term.LifelineSet) []Element {
	front := pushLeft(frontierRec(t.Left(), loopDepth))

	for _, e := range pushRight(frontierRec(t.Right(), loopDepth)) {
		required := make(term.LifelineSet, len(e.TargetLfIDs))
		for lf := range e.TargetLfIDs {
			if !coreg.Contains(lf) {
				required[lf] = struct{}{}
			}
		}

		if structural.Avoids(t.Left(), required) {
			front = append(front, e)
		}
	}

	return front
}

func frontierPar(t term.Interaction, loopDepth uint32) []Element {
	front := pushLeft(frontierRec(t.Left(), loopDepth))
	front = append(front, pushRight(frontierRec(t.Right(), loopDepth))...)

	return front
}

func frontierAlt(t term.Interaction, loopDepth uint32) []Element {
	frt1 := frontierRec(t.Left(), loopDepth)
	frt2 := frontierRec(t.Right(), loopDepth)

	matched1 := make(map[int]bool)
	matched2 := make(map[int]bool)

	var out []Element

	for i1, e1 := range frt1 {
		for i2, e2 := range frt2 {
			if e1.TargetActions.Equal(e2.TargetActions) {
				matched1[i1] = true
				matched2[i2] = true
				out = append(out, combine(e1, e2))
			}
		}
	}

	for i1, e1 := range frt1 {
		if !matched1[i1] {
			out = append(out, Element{
				Position:      term.Left(e1.Position),
				TargetLfIDs:   e1.TargetLfIDs,
				TargetActions: e1.TargetActions,
				MaxLoopDepth:  e1.MaxLoopDepth,
			})
		}
	}

	for i2, e2 := range frt2 {
		if !matched2[i2] {
			out = append(out, Element{
				Position:      term.Right(e2.Position),
				TargetLfIDs:   e2.TargetLfIDs,
				TargetActions: e2.TargetActions,
				MaxLoopDepth:  e2.MaxLoopDepth,
			})
		}
	}

	return out
}

func frontierSync(t term.Interaction, loopDepth uint32) []Element {
	syncActs := t.SyncActions()

	var newFront []Element

	type pending struct {
		elt       Element
		intersect term.MultiAction
	}

	var rem1, rem2 []pending

	for _, e := range frontierRec(t.Left(), loopDepth) {
		intersect := intersectWithSet(e.TargetActions, syncActs)
		if len(intersect) == 0 {
			newFront = append(newFront, Element{
				Position:      term.Left(e.Position),
				TargetLfIDs:   e.TargetLfIDs,
				TargetActions: e.TargetActions,
				MaxLoopDepth:  e.MaxLoopDepth,
			})
		} else {
			rem1 = append(rem1, pending{e, intersect})
		}
	}

	for _, e := range frontierRec(t.Right(), loopDepth) {
		intersect := intersectWithSet(e.TargetActions, syncActs)
		if len(intersect) == 0 {
			newFront = append(newFront, Element{
				Position:      term.Right(e.Position),
				TargetLfIDs:   e.TargetLfIDs,
				TargetActions: e.TargetActions,
				MaxLoopDepth:  e.MaxLoopDepth,
			})
		} else {
			rem2 = append(rem2, pending{e, intersect})
		}
	}

	for _, p1 := range rem1 {
		for _, p2 := range rem2 {
			if p1.intersect.Equal(p2.intersect) {
				newFront = append(newFront, combine(p1.elt, p2.elt))
			}
		}
	}

	return newFront
}

func combine(e1, e2 Element) Element {
	depth := e1.MaxLoopDepth
	if e2.MaxLoopDepth > depth {
		depth = e2.MaxLoopDepth
	}

	return Element{
		Position:      term.BothOf(e1.Position, e2.Position),
		TargetLfIDs:   e1.TargetLfIDs.Union(e2.TargetLfIDs),
		TargetActions: unionMultiAction(e1.TargetActions, e2.TargetActions),
		MaxLoopDepth:  depth,
	}
}

func unionMultiAction(a, b term.MultiAction) term.MultiAction {
	out := a.Clone()
	for act := range b {
		out[act] = struct{}{}
	}

	return out
}

func intersectWithSet(a term.MultiAction, b map[term.TraceAction]struct{}) term.MultiAction {
	out := make(term.MultiAction)

	for act := range a {
		if _, ok := b[act]; ok {
			out[act] = struct{}{}
		}
	}

	return out
}

func pushLeft(elts []Element) []Element {
	out := make([]Element, len(elts))
	for i, e := range elts {
		out[i] = Element{Position: term.Left(e.Position), TargetLfIDs: e.TargetLfIDs, TargetActions: e.TargetActions, MaxLoopDepth: e.MaxLoopDepth}
	}

	return out
}

func pushRight(elts []Element) []Element {
	out := make([]Element, len(elts))
	for i, e := range elts {
		out[i] = Element{Position: term.Right(e.Position), TargetLfIDs: e.TargetLfIDs, TargetActions: e.TargetActions, MaxLoopDepth: e.MaxLoopDepth}
	}

	return out
}
