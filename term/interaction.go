package term

import "github.com/hibou-lang/hibou/hiboerr"

// Kind tags the variant of an Interaction node.
type Kind int

// Variant order is the order used by the total order over terms (§4.H):
// Empty < Emission < Reception < Strict < Seq < CoReg < Par < Alt <
// Sync < Loop < And.
const (
	KEmpty Kind = iota
	KEmission
	KReception
	KStrict
	KSeq
	KCoReg
	KPar
	KAlt
	KSync
	KLoop
	KAnd
)

// LoopKind distinguishes the four Kleene-like loop variants, ordered
// S < H < W < P.
type LoopKind int

const (
	LoopS LoopKind = iota // strict
	LoopH                 // headfirst-weak
	LoopW                 // weak
	LoopP                 // interleaving (parallel)
)

// Interaction is the immutable algebraic interaction term. Terms are
// never mutated in place; every rewrite returns a new value. The zero
// value is not a valid Interaction — construct terms with the
// constructors below.
type Interaction struct {
	kind Kind

	// Emission / Reception fields.
	originLifeline Lifeline
	originGate     Gate
	hasOriginGate  bool
	message        Message
	sync           Synchronicity
	targets        []Lifeline // Emission targets (lifelines or gates collapse to Lifeline for message passing)
	recipients     []Lifeline // Reception recipients, non-empty (I2)

	// Binary operator children.
	left  *Interaction
	right *Interaction

	// CoReg/Sync auxiliary data.
	coreg LifelineSet
	syncA map[TraceAction]struct{}

	// Loop.
	loopKind LoopKind
	body     *Interaction
}

// Empty constructs the neutral interaction.
func Empty() Interaction { return Interaction{kind: KEmpty} }

// NewEmission constructs a send from origin to targets.
func NewEmission(origin Lifeline, msg Message, sync Synchronicity, targets ...Lifeline) Interaction {
	if len(targets) == 0 {
		panic(hiboerr.EmptyRecipientListError{Reason: "emission with no targets"})
	}

	cp := append([]Lifeline(nil), targets...)

	return Interaction{kind: KEmission, originLifeline: origin, message: msg, sync: sync, targets: cp}
}

// NewReception constructs a receive, optionally originating from a gate,
// with a non-empty recipient list (I2).
func NewReception(originGate *Gate, msg Message, sync Synchronicity, recipients ...Lifeline) Interaction {
	if len(recipients) == 0 {
		panic(hiboerr.EmptyRecipientListError{Reason: "reception with no recipients"})
	}

	i := Interaction{kind: KReception, message: msg, sync: sync, recipients: append([]Lifeline(nil), recipients...)}
	if originGate != nil {
		i.originGate = *originGate
		i.hasOriginGate = true
	}

	return i
}

// NewStrict constructs a fully-ordered sequence.
func NewStrict(l, r Interaction) Interaction {
	return Interaction{kind: KStrict, left: &l, right: &r}
}

// NewSeq constructs a weak sequence.
func NewSeq(l, r Interaction) Interaction {
	return Interaction{kind: KSeq, left: &l, right: &r}
}

// NewCoReg constructs a weak sequence that is unordered across the
// lifelines in c.
func NewCoReg(c LifelineSet, l, r Interaction) Interaction {
	return Interaction{kind: KCoReg, coreg: c, left: &l, right: &r}
}

// NewPar constructs free interleaving.
func NewPar(l, r Interaction) Interaction {
	return Interaction{kind: KPar, left: &l, right: &r}
}

// NewAlt constructs non-deterministic choice.
func NewAlt(l, r Interaction) Interaction {
	return Interaction{kind: KAlt, left: &l, right: &r}
}

// NewSync constructs a rendezvous on actions in a, free interleaving
// otherwise.
func NewSync(a map[TraceAction]struct{}, l, r Interaction) Interaction {
	return Interaction{kind: KSync, syncA: a, left: &l, right: &r}
}

// NewLoop constructs a Kleene-like loop of the given kind.
func NewLoop(k LoopKind, body Interaction) Interaction {
	return Interaction{kind: KLoop, loopKind: k, body: &body}
}

// NewAnd constructs an And node, reserved for gate-merging
// transformations; outside of gate-merging it behaves like Strict.
func NewAnd(l, r Interaction) Interaction {
	return Interaction{kind: KAnd, left: &l, right: &r}
}

// Kind reports the variant tag.
func (i Interaction) Kind() Kind { return i.kind }

func (k Kind) String() string {
	switch k {
	case KEmpty:
		return "Empty"
	case KEmission:
		return "Emission"
	case KReception:
		return "Reception"
	case KStrict:
		return "Strict"
	case KSeq:
		return "Seq"
	case KCoReg:
		return "CoReg"
	case KPar:
		return "Par"
	case KAlt:
		return "Alt"
	case KSync:
		return "Sync"
	case KLoop:
		return "Loop"
	case KAnd:
		return "And"
	default:
		return "unknown"
	}
}

// IsEmpty reports whether i is the Empty neutral.
func (i Interaction) IsEmpty() bool { return i.kind == KEmpty }

// Left and Right return a binary operator's children. Panics (I1) if i
// is not a binary operator.
func (i Interaction) Left() Interaction {
	if i.left == nil {
		panic(hiboerr.InvalidPositionError{Reason: "Left called on non-binary node"})
	}

	return *i.left
}

func (i Interaction) Right() Interaction {
	if i.right == nil {
		panic(hiboerr.InvalidPositionError{Reason: "Right called on non-binary node"})
	}

	return *i.right
}

// Body returns a Loop's child. Panics if i is not a Loop.
func (i Interaction) Body() Interaction {
	if i.kind != KLoop {
		panic(hiboerr.InvalidPositionError{Reason: "Body called on non-Loop node"})
	}

	return *i.body
}

// LoopKind returns the loop kind. Panics if i is not a Loop.
func (i Interaction) LoopKind() LoopKind {
	if i.kind != KLoop {
		panic(hiboerr.InvalidPositionError{Reason: "LoopKind called on non-Loop node"})
	}

	return i.loopKind
}

// CoRegSet returns the unordered-lifeline set of a CoReg node.
func (i Interaction) CoRegSet() LifelineSet {
	if i.kind != KCoReg {
		panic(hiboerr.InvalidPositionError{Reason: "CoRegSet called on non-CoReg node"})
	}

	return i.coreg
}

// SyncActions returns the rendezvous action set of a Sync node.
func (i Interaction) SyncActions() map[TraceAction]struct{} {
	if i.kind != KSync {
		panic(hiboerr.InvalidPositionError{Reason: "SyncActions called on non-Sync node"})
	}

	return i.syncA
}

// Origin returns an emission's origin lifeline.
func (i Interaction) Origin() Lifeline {
	if i.kind != KEmission {
		panic(hiboerr.InvalidPositionError{Reason: "Origin called on non-Emission node"})
	}

	return i.originLifeline
}

// OriginGate returns a reception's origin gate, if any.
func (i Interaction) OriginGate() (Gate, bool) {
	if i.kind != KReception {
		panic(hiboerr.InvalidPositionError{Reason: "OriginGate called on non-Reception node"})
	}

	return i.originGate, i.hasOriginGate
}

// Message returns an emission/reception's message.
func (i Interaction) Message() Message {
	if i.kind != KEmission && i.kind != KReception {
		panic(hiboerr.InvalidPositionError{Reason: "Message called on non-leaf node"})
	}

	return i.message
}

// Synchronicity returns an emission/reception's synchronicity.
func (i Interaction) Synchronicity() Synchronicity {
	if i.kind != KEmission && i.kind != KReception {
		panic(hiboerr.InvalidPositionError{Reason: "Synchronicity called on non-leaf node"})
	}

	return i.sync
}

// Targets returns an emission's ordered target list.
func (i Interaction) Targets() []Lifeline {
	if i.kind != KEmission {
		panic(hiboerr.InvalidPositionError{Reason: "Targets called on non-Emission node"})
	}

	return append([]Lifeline(nil), i.targets...)
}

// Recipients returns a reception's ordered, non-empty recipient list.
func (i Interaction) Recipients() []Lifeline {
	if i.kind != KReception {
		panic(hiboerr.InvalidPositionError{Reason: "Recipients called on non-Reception node"})
	}

	return append([]Lifeline(nil), i.recipients...)
}

// WithTargets returns a copy of an emission with a new target list.
func (i Interaction) WithTargets(targets []Lifeline) Interaction {
	if i.kind != KEmission {
		panic(hiboerr.InvalidPositionError{Reason: "WithTargets called on non-Emission node"})
	}

	cp := i
	cp.targets = append([]Lifeline(nil), targets...)

	return cp
}

// WithRecipients returns a copy of a reception with a new recipient
// list. Panics (I2) if the list is empty.
func (i Interaction) WithRecipients(recipients []Lifeline) Interaction {
	if i.kind != KReception {
		panic(hiboerr.InvalidPositionError{Reason: "WithRecipients called on non-Reception node"})
	}

	if len(recipients) == 0 {
		panic(hiboerr.EmptyRecipientListError{Reason: "WithRecipients would leave an empty recipient list"})
	}

	cp := i
	cp.recipients = append([]Lifeline(nil), recipients...)

	return cp
}
