package canon

import (
	"sort"

	"github.com/hibou-lang/hibou/term"
)

// rule is a single canonization transformation, transliterated from
// transfodef.rs: tried at one term node and reporting whether it fired.
type rule struct {
	kind TransformationKind
	try  func(term.Interaction) (term.Interaction, bool)
}

func simplLeft(i term.Interaction) (term.Interaction, bool) {
	switch i.Kind() {
	case term.KStrict, term.KSeq, term.KPar, term.KCoReg:
		if i.Left().IsEmpty() {
			return i.Right(), true
		}
	}

	return term.Interaction{}, false
}

func simplRight(i term.Interaction) (term.Interaction, bool) {
	switch i.Kind() {
	case term.KStrict, term.KSeq, term.KPar, term.KCoReg:
		if i.Right().IsEmpty() {
			return i.Left(), true
		}
	}

	return term.Interaction{}, false
}

func flushRight(i term.Interaction) (term.Interaction, bool) {
	switch i.Kind() {
	case term.KAlt:
		if i1 := i.Left(); i1.Kind() == term.KAlt {
			return term.NewAlt(i1.Left(), term.NewAlt(i1.Right(), i.Right())), true
		}
	case term.KStrict:
		if i1 := i.Left(); i1.Kind() == term.KStrict {
			return term.NewStrict(i1.Left(), term.NewStrict(i1.Right(), i.Right())), true
		}
	case term.KSeq:
		if i1 := i.Left(); i1.Kind() == term.KSeq {
			return term.NewSeq(i1.Left(), term.NewSeq(i1.Right(), i.Right())), true
		}
	case term.KPar:
		if i1 := i.Left(); i1.Kind() == term.KPar {
			return term.NewPar(i1.Left(), term.NewPar(i1.Right(), i.Right())), true
		}
	case term.KCoReg:
		cr1 := i.CoRegSet()
		if i1 := i.Left(); i1.Kind() == term.KCoReg && lifelineSetEqual(cr1, i1.CoRegSet()) {
			return term.NewCoReg(cr1, i1.Left(), term.NewCoReg(cr1, i1.Right(), i.Right())), true
		}
	}

	return term.Interaction{}, false
}

func flushLeft(i term.Interaction) (term.Interaction, bool) {
	switch i.Kind() {
	case term.KAlt:
		if i2 := i.Right(); i2.Kind() == term.KAlt {
			return term.NewAlt(term.NewAlt(i.Left(), i2.Left()), i2.Right()), true
		}
	case term.KStrict:
		if i2 := i.Right(); i2.Kind() == term.KStrict {
			return term.NewStrict(term.NewStrict(i.Left(), i2.Left()), i2.Right()), true
		}
	case term.KSeq:
		if i2 := i.Right(); i2.Kind() == term.KSeq {
			return term.NewSeq(term.NewSeq(i.Left(), i2.Left()), i2.Right()), true
		}
	case term.KPar:
		if i2 := i.Right(); i2.Kind() == term.KPar {
			return term.NewPar(term.NewPar(i.Left(), i2.Left()), i2.Right()), true
		}
	case term.KCoReg:
		cr1 := i.CoRegSet()
		if i2 := i.Right(); i2.Kind() == term.KCoReg && lifelineSetEqual(cr1, i2.CoRegSet()) {
			return term.NewCoReg(cr1, term.NewCoReg(cr1, i.Left(), i2.Left()), i2.Right()), true
		}
	}

	return term.Interaction{}, false
}

func invertAltConditional(i term.Interaction) (term.Interaction, bool) {
	if i.Kind() != term.KAlt {
		return term.Interaction{}, false
	}

	i1, i2 := i.Left(), i.Right()
	if interactionLowerThan(i2, i1) {
		return term.NewAlt(i2, i1), true
	}

	return term.Interaction{}, false
}

func invertParConditional(i term.Interaction) (term.Interaction, bool) {
	if i.Kind() != term.KPar {
		return term.Interaction{}, false
	}

	i1, i2 := i.Left(), i.Right()
	if interactionLowerThan(i2, i1) {
		return term.NewPar(i2, i1), true
	}

	return term.Interaction{}, false
}

func triInvertAltConditionalRightFlushed(i term.Interaction) (term.Interaction, bool) {
	if i.Kind() != term.KAlt {
		return term.Interaction{}, false
	}

	i1, right := i.Left(), i.Right()
	if right.Kind() != term.KAlt {
		return term.Interaction{}, false
	}

	i2, i3 := right.Left(), right.Right()
	if interactionLowerThan(i2, i1) {
		return term.NewAlt(i2, term.NewAlt(i1, i3)), true
	}

	return term.Interaction{}, false
}

func triInvertParConditionalRightFlushed(i term.Interaction) (term.Interaction, bool) {
	if i.Kind() != term.KPar {
		return term.Interaction{}, false
	}

	i1, right := i.Left(), i.Right()
	if right.Kind() != term.KPar {
		return term.Interaction{}, false
	}

	i2, i3 := right.Left(), right.Right()
	if interactionLowerThan(i2, i1) {
		return term.NewPar(i2, term.NewPar(i1, i3)), true
	}

	return term.Interaction{}, false
}

func deduplicate(i term.Interaction) (term.Interaction, bool) {
	if i.Kind() != term.KAlt {
		return term.Interaction{}, false
	}

	if i.Left().Equal(i.Right()) {
		return i.Left(), true
	}

	return term.Interaction{}, false
}

func triDeduplicateRightFlushed(i term.Interaction) (term.Interaction, bool) {
	if i.Kind() != term.KAlt {
		return term.Interaction{}, false
	}

	i1, right := i.Left(), i.Right()
	if right.Kind() != term.KAlt {
		return term.Interaction{}, false
	}

	i2, i3 := right.Left(), right.Right()
	if i1.Equal(i2) {
		return term.NewAlt(i1, i3), true
	}

	return term.Interaction{}, false
}

// factorizePrefix is shared by the Strict/Seq/Par prefix-factorize
// rules, parameterized by the frag/fold pair matching the operator.
func factorizePrefix(i term.Interaction, frags func(term.Interaction) []term.Interaction, fold func([]term.Interaction) term.Interaction, rebuild func(first, rest term.Interaction) term.Interaction) (term.Interaction, bool) {
	if i.Kind() != term.KAlt {
		return term.Interaction{}, false
	}

	left := frags(i.Left())
	right := frags(i.Right())

	if !left[0].Equal(right[0]) {
		return term.Interaction{}, false
	}

	first := left[0]
	left, right = left[1:], right[1:]

	if first.IsEmpty() || len(left) == 0 || len(right) == 0 {
		return term.Interaction{}, false
	}

	newAlt := term.NewAlt(fold(left), fold(right))

	return rebuild(first, newAlt), true
}

// factorizeSuffix is shared by the Strict/Seq/Par suffix-factorize
// rules, mirroring factorizePrefix from the tail of each chain.
func factorizeSuffix(i term.Interaction, frags func(term.Interaction) []term.Interaction, fold func([]term.Interaction) term.Interaction, rebuild func(rest, last term.Interaction) term.Interaction) (term.Interaction, bool) {
	if i.Kind() != term.KAlt {
		return term.Interaction{}, false
	}

	left := frags(i.Left())
	right := frags(i.Right())

	lastLeft := left[len(left)-1]
	lastRight := right[len(right)-1]

	if !lastLeft.Equal(lastRight) {
		return term.Interaction{}, false
	}

	left, right = left[:len(left)-1], right[:len(right)-1]

	if lastLeft.IsEmpty() || len(left) == 0 || len(right) == 0 {
		return term.Interaction{}, false
	}

	newAlt := term.NewAlt(fold(left), fold(right))

	return rebuild(newAlt, lastLeft), true
}

func factorizePrefixStrict(i term.Interaction) (term.Interaction, bool) {
	return factorizePrefix(i, strictFrags, foldStrict, term.NewStrict)
}

func factorizePrefixSeq(i term.Interaction) (term.Interaction, bool) {
	return factorizePrefix(i, seqFrags, foldSeq, term.NewSeq)
}

func factorizePrefixPar(i term.Interaction) (term.Interaction, bool) {
	return factorizePrefix(i, parFrags, foldPar, term.NewPar)
}

func factorizeSuffixStrict(i term.Interaction) (term.Interaction, bool) {
	return factorizeSuffix(i, strictFrags, foldStrict, term.NewStrict)
}

func factorizeSuffixSeq(i term.Interaction) (term.Interaction, bool) {
	return factorizeSuffix(i, seqFrags, foldSeq, term.NewSeq)
}

func factorizeSuffixPar(i term.Interaction) (term.Interaction, bool) {
	return factorizeSuffix(i, parFrags, foldPar, term.NewPar)
}

func defactorizeLeft(i term.Interaction) (term.Interaction, bool) {
	switch i.Kind() {
	case term.KStrict:
		if i2 := i.Right(); i2.Kind() == term.KAlt {
			i1 := i.Left()
			return term.NewAlt(term.NewStrict(i1, i2.Left()), term.NewStrict(i1, i2.Right())), true
		}
	case term.KSeq:
		if i2 := i.Right(); i2.Kind() == term.KAlt {
			i1 := i.Left()
			return term.NewAlt(term.NewSeq(i1, i2.Left()), term.NewSeq(i1, i2.Right())), true
		}
	case term.KPar:
		if i2 := i.Right(); i2.Kind() == term.KAlt {
			i1 := i.Left()
			return term.NewAlt(term.NewPar(i1, i2.Left()), term.NewPar(i1, i2.Right())), true
		}
	case term.KCoReg:
		if i2 := i.Right(); i2.Kind() == term.KAlt {
			cr, i1 := i.CoRegSet(), i.Left()
			return term.NewAlt(term.NewCoReg(cr, i1, i2.Left()), term.NewCoReg(cr, i1, i2.Right())), true
		}
	}

	return term.Interaction{}, false
}

func defactorizeRight(i term.Interaction) (term.Interaction, bool) {
	switch i.Kind() {
	case term.KStrict:
		if i1 := i.Left(); i1.Kind() == term.KAlt {
			i2 := i.Right()
			return term.NewAlt(term.NewStrict(i1.Left(), i2), term.NewStrict(i1.Right(), i2)), true
		}
	case term.KSeq:
		if i1 := i.Left(); i1.Kind() == term.KAlt {
			i2 := i.Right()
			return term.NewAlt(term.NewSeq(i1.Left(), i2), term.NewSeq(i1.Right(), i2)), true
		}
	case term.KPar:
		if i1 := i.Left(); i1.Kind() == term.KAlt {
			i2 := i.Right()
			return term.NewAlt(term.NewPar(i1.Left(), i2), term.NewPar(i1.Right(), i2)), true
		}
	case term.KCoReg:
		if i1 := i.Left(); i1.Kind() == term.KAlt {
			cr, i2 := i.CoRegSet(), i.Right()
			return term.NewAlt(term.NewCoReg(cr, i1.Left(), i2), term.NewCoReg(cr, i1.Right(), i2)), true
		}
	}

	return term.Interaction{}, false
}

func loopSimpl(i term.Interaction) (term.Interaction, bool) {
	if i.Kind() != term.KLoop {
		return term.Interaction{}, false
	}

	if i.Body().IsEmpty() {
		return term.Empty(), true
	}

	return term.Interaction{}, false
}

func loopUnnest(i term.Interaction) (term.Interaction, bool) {
	if i.Kind() != term.KLoop {
		return term.Interaction{}, false
	}

	body := i.Body()
	if body.Kind() != term.KLoop {
		return term.Interaction{}, false
	}

	outer, inner := i.LoopKind(), body.LoopKind()
	k := outer
	if inner < outer {
		k = inner
	}

	return term.NewLoop(k, body.Body()), true
}

// sortEmissionTargets reorders an emission's target list into the total
// lifeline order, the Go analogue of transfodef.rs's sort_emission_targets
// (which there operates on a single Action node; here Emission is its
// own node kind rather than sharing one Action variant with Reception).
func sortEmissionTargets(i term.Interaction) (term.Interaction, bool) {
	if i.Kind() != term.KEmission {
		return term.Interaction{}, false
	}

	targets := i.Targets()
	sorted := append([]term.Lifeline(nil), targets...)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a] < sorted[b] })

	for idx := range sorted {
		if sorted[idx] != targets[idx] {
			return i.WithTargets(sorted), true
		}
	}

	return term.Interaction{}, false
}

// interactionLowerThan is transfodef.rs's interaction_lower_than: the
// term.Interaction.Compare total order (§4.H) restricted to a strict
// less-than.
func interactionLowerThan(a, b term.Interaction) bool {
	return a.Compare(b) < 0
}

func lifelineSetEqual(a, b term.LifelineSet) bool {
	if len(a) != len(b) {
		return false
	}

	for l := range a {
		if !b.Contains(l) {
			return false
		}
	}

	return true
}
