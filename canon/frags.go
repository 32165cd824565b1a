package canon

import "github.com/hibou-lang/hibou/term"

// recursiveFrags flattens a left-and-right-nested chain of the same
// binary operator kind into the ordered list of its non-matching leaf
// sub-terms, equivalent to transfodef.rs's
// get_recursive_{strict,seq,par}_frags. A term whose kind doesn't match
// is its own one-element fragment list.
func recursiveFrags(i term.Interaction, kind term.Kind) []term.Interaction {
	if i.Kind() != kind {
		return []term.Interaction{i}
	}

	left := recursiveFrags(i.Left(), kind)
	right := recursiveFrags(i.Right(), kind)

	return append(left, right...)
}

// foldFrags rebuilds a chain of kind-matching fragments via construct,
// right-associating them in the same shape get_recursive_*_frags
// expects (equivalent to fold_recursive_{strict,seq,par}_frags). Panics
// on an empty fragment list; callers never offer one.
func foldFrags(frags []term.Interaction, construct func(l, r term.Interaction) term.Interaction) term.Interaction {
	result := frags[len(frags)-1]
	for idx := len(frags) - 2; idx >= 0; idx-- {
		result = construct(frags[idx], result)
	}

	return result
}

func strictFrags(i term.Interaction) []term.Interaction { return recursiveFrags(i, term.KStrict) }
func seqFrags(i term.Interaction) []term.Interaction     { return recursiveFrags(i, term.KSeq) }
func parFrags(i term.Interaction) []term.Interaction     { return recursiveFrags(i, term.KPar) }

func foldStrict(frags []term.Interaction) term.Interaction {
	return foldFrags(frags, term.NewStrict)
}

func foldSeq(frags []term.Interaction) term.Interaction {
	return foldFrags(frags, term.NewSeq)
}

func foldPar(frags []term.Interaction) term.Interaction {
	return foldFrags(frags, term.NewPar)
}
