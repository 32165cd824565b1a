package term

import "github.com/hibou-lang/hibou/hiboerr"

// SubAt returns the sub-term addressed by p. Panics with an
// hiboerr.InvalidPositionError if p violates I1 for i (Left/Right only
// under binary operators, Both only under Alt/Sync, Epsilon sub-index
// present iff the leaf is an async reception).
func SubAt(i Interaction, p Position) Interaction {
	switch {
	case p.IsEpsilon():
		validateEpsilon(i, p)
		return i
	case p.IsLeft():
		requireBinary(i, "Left")
		return SubAt(i.Left(), p.Sub())
	case p.IsRight():
		requireBinary(i, "Right")
		return SubAt(i.Right(), p.Sub())
	case p.IsBoth():
		requireAltOrSync(i, "Both")
		// Both addresses one position in each child; SubAt follows the
		// left one.
		return SubAt(i.Left(), p.Both1())
	default:
		panic(hiboerr.InvalidPositionError{Reason: "unrecognized position kind"})
	}
}

// ReplaceAt returns a copy of i with the sub-term at p replaced by
// replacement. Panics under the same conditions as SubAt.
func ReplaceAt(i Interaction, p Position, replacement Interaction) Interaction {
	switch {
	case p.IsEpsilon():
		validateEpsilon(i, p)
		return replacement
	case p.IsLeft():
		requireBinary(i, "Left")
		return rewrapLeft(i, ReplaceAt(i.Left(), p.Sub(), replacement))
	case p.IsRight():
		requireBinary(i, "Right")
		return rewrapRight(i, ReplaceAt(i.Right(), p.Sub(), replacement))
	case p.IsBoth():
		requireAltOrSync(i, "Both")
		left := rewrapLeft(i, ReplaceAt(i.Left(), p.Both1(), replacement))
		return rewrapRight(left, ReplaceAt(i.Right(), p.Both2(), replacement))
	default:
		panic(hiboerr.InvalidPositionError{Reason: "unrecognized position kind"})
	}
}

// LoopDepthAt returns the number of Loop nodes traversed along the path
// to p.
func LoopDepthAt(i Interaction, p Position) uint32 {
	switch {
	case p.IsEpsilon():
		validateEpsilon(i, p)
		return 0
	case p.IsLeft():
		requireBinary(i, "Left")

		extra := uint32(0)
		if i.Kind() == KLoop {
			extra = 1
		}

		return extra + LoopDepthAt(childForLeft(i), p.Sub())
	case p.IsRight():
		requireBinary(i, "Right")
		return LoopDepthAt(i.Right(), p.Sub())
	case p.IsBoth():
		requireAltOrSync(i, "Both")

		d1 := LoopDepthAt(i.Left(), p.Both1())
		d2 := LoopDepthAt(i.Right(), p.Both2())
		if d1 > d2 {
			return d1
		}

		return d2
	default:
		panic(hiboerr.InvalidPositionError{Reason: "unrecognized position kind"})
	}
}

func childForLeft(i Interaction) Interaction {
	if i.Kind() == KLoop {
		return i.Body()
	}

	return i.Left()
}

func requireBinary(i Interaction, which string) {
	switch i.Kind() {
	case KStrict, KSeq, KCoReg, KPar, KAlt, KSync, KAnd:
		return
	case KLoop:
		if which == "Left" {
			return
		}
	}

	panic(hiboerr.InvalidPositionError{Reason: which + " position under non-binary node"})
}

func requireAltOrSync(i Interaction, which string) {
	if i.Kind() != KAlt && i.Kind() != KSync {
		panic(hiboerr.InvalidPositionError{Reason: which + " position only valid under Alt/Sync"})
	}
}

func validateEpsilon(i Interaction, p Position) {
	_, hasSub := p.SubIndex()

	switch i.Kind() {
	case KEmission:
		if hasSub {
			panic(hiboerr.InvalidSubIndexError{Reason: "Epsilon sub-index only valid on async Reception"})
		}
	case KReception:
		if hasSub != (i.Synchronicity() == Async) {
			panic(hiboerr.InvalidSubIndexError{Reason: "Epsilon sub-index present iff async reception"})
		}
	default:
		if hasSub {
			panic(hiboerr.InvalidSubIndexError{Reason: "Epsilon sub-index only valid at emission/reception leaves"})
		}
	}
}

func rewrapLeft(i Interaction, newLeft Interaction) Interaction {
	switch i.Kind() {
	case KStrict:
		return NewStrict(newLeft, i.Right())
	case KSeq:
		return NewSeq(newLeft, i.Right())
	case KCoReg:
		return NewCoReg(i.CoRegSet(), newLeft, i.Right())
	case KPar:
		return NewPar(newLeft, i.Right())
	case KAlt:
		return NewAlt(newLeft, i.Right())
	case KSync:
		return NewSync(i.SyncActions(), newLeft, i.Right())
	case KAnd:
		return NewAnd(newLeft, i.Right())
	case KLoop:
		return NewLoop(i.LoopKind(), newLeft)
	default:
		panic(hiboerr.InvalidPositionError{Reason: "rewrapLeft on non-binary node"})
	}
}

func rewrapRight(i Interaction, newRight Interaction) Interaction {
	switch i.Kind() {
	case KStrict:
		return NewStrict(i.Left(), newRight)
	case KSeq:
		return NewSeq(i.Left(), newRight)
	case KCoReg:
		return NewCoReg(i.CoRegSet(), i.Left(), newRight)
	case KPar:
		return NewPar(i.Left(), newRight)
	case KAlt:
		return NewAlt(i.Left(), newRight)
	case KSync:
		return NewSync(i.SyncActions(), i.Left(), newRight)
	case KAnd:
		return NewAnd(i.Left(), newRight)
	default:
		panic(hiboerr.InvalidPositionError{Reason: "rewrapRight on non-binary node"})
	}
}
