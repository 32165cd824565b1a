// Package term defines the immutable interaction-term algebra: the sum
// type of process terms, positions into those terms, trace actions, and
// the total order used by the canonization engine.
package term

import (
	"strconv"

	"github.com/hibou-lang/hibou/hiboerr"
)

// Position addresses a sub-term. Epsilon addresses the node itself (an
// optional sub-index selects which async recipient is being consumed);
// Left/Right descend into a binary operator's children; Both is only
// ever produced by matching Alt/Sync frontier elements and addresses two
// positions simultaneously.
type Position struct {
	kind     positionKind
	subIndex *int
	left     *Position
	right    *Position
	both1    *Position
	both2    *Position
}

type positionKind int

const (
	posEpsilon positionKind = iota
	posLeft
	posRight
	posBoth
)

// Epsilon returns the position addressing the current node, optionally
// carrying a sub-index (used by asynchronous reception to designate
// which recipient is being consumed).
func Epsilon(subIndex *int) Position {
	return Position{kind: posEpsilon, subIndex: subIndex}
}

// Left wraps p as a Left position.
func Left(p Position) Position {
	return Position{kind: posLeft, left: &p}
}

// Right wraps p as a Right position.
func Right(p Position) Position {
	return Position{kind: posRight, right: &p}
}

// BothOf combines two positions, produced only by matching Alt/Sync
// frontier elements.
func BothOf(p1, p2 Position) Position {
	return Position{kind: posBoth, both1: &p1, both2: &p2}
}

// IsEpsilon reports whether p addresses the current node.
func (p Position) IsEpsilon() bool { return p.kind == posEpsilon }

// IsLeft reports whether p is a Left position.
func (p Position) IsLeft() bool { return p.kind == posLeft }

// IsRight reports whether p is a Right position.
func (p Position) IsRight() bool { return p.kind == posRight }

// IsBoth reports whether p is a Both position.
func (p Position) IsBoth() bool { return p.kind == posBoth }

// SubIndex returns the Epsilon sub-index and whether one is present.
func (p Position) SubIndex() (int, bool) {
	if p.subIndex == nil {
		return 0, false
	}

	return *p.subIndex, true
}

// Sub returns the sub-position of a Left or Right position.
func (p Position) Sub() Position {
	switch p.kind {
	case posLeft:
		return *p.left
	case posRight:
		return *p.right
	default:
		panic(hiboerr.InvalidPositionError{Reason: "Sub called on non-Left/Right position"})
	}
}

// Both1 and Both2 return the two sub-positions of a Both position.
func (p Position) Both1() Position { return *p.both1 }
func (p Position) Both2() Position { return *p.both2 }

// Equal reports structural equality between two positions.
func (p Position) Equal(o Position) bool {
	if p.kind != o.kind {
		return false
	}

	switch p.kind {
	case posEpsilon:
		return equalSubIndex(p.subIndex, o.subIndex)
	case posLeft:
		return p.left.Equal(*o.left)
	case posRight:
		return p.right.Equal(*o.right)
	case posBoth:
		return p.both1.Equal(*o.both1) && p.both2.Equal(*o.both2)
	default:
		return false
	}
}

func equalSubIndex(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

// Compare gives the total order over positions: by kind first, then
// for two Epsilons None < Some(i) on the sub-index (per the original
// implementation), otherwise recursively on children.
func (p Position) Compare(o Position) int {
	if p.kind != o.kind {
		return int(p.kind) - int(o.kind)
	}

	switch p.kind {
	case posEpsilon:
		return compareSubIndex(p.subIndex, o.subIndex)
	case posLeft:
		return p.left.Compare(*o.left)
	case posRight:
		return p.right.Compare(*o.right)
	case posBoth:
		if c := p.both1.Compare(*o.both1); c != 0 {
			return c
		}

		return p.both2.Compare(*o.both2)
	default:
		return 0
	}
}

func compareSubIndex(a, b *int) int {
	if a == nil && b == nil {
		return 0
	}

	if a == nil {
		return -1
	}

	if b == nil {
		return 1
	}

	return *a - *b
}

// String renders a position in a compact textual form, used only for
// debugging and error messages.
func (p Position) String() string {
	switch p.kind {
	case posEpsilon:
		if p.subIndex == nil {
			return "e"
		}

		return "e" + strconv.Itoa(*p.subIndex)
	case posLeft:
		return "L." + p.left.String()
	case posRight:
		return "R." + p.right.String()
	case posBoth:
		return "(" + p.both1.String() + "," + p.both2.String() + ")"
	default:
		return "?"
	}
}
