package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibou-lang/hibou/term"
)

func TestConstructorsAndAccessors(t *testing.T) {
	t.Parallel()

	a := term.Lifeline("a")
	b := term.Lifeline("b")

	emission := term.NewEmission(a, "m", term.Async, b)
	assert.Equal(t, term.KEmission, emission.Kind())
	assert.Equal(t, a, emission.Origin())
	assert.Equal(t, []term.Lifeline{b}, emission.Targets())
	assert.Equal(t, term.Message("m"), emission.Message())
	assert.Equal(t, term.Async, emission.Synchronicity())

	reception := term.NewReception(nil, "m", term.Async, b)
	assert.Equal(t, term.KReception, reception.Kind())
	assert.Equal(t, []term.Lifeline{b}, reception.Recipients())
	_, hasGate := reception.OriginGate()
	assert.False(t, hasGate)

	strict := term.NewStrict(emission, reception)
	assert.Equal(t, term.KStrict, strict.Kind())
	assert.True(t, strict.Left().Equal(emission))
	assert.True(t, strict.Right().Equal(reception))

	loop := term.NewLoop(term.LoopW, emission)
	assert.Equal(t, term.LoopW, loop.LoopKind())
	assert.True(t, loop.Body().Equal(emission))
}

func TestEmissionRequiresAtLeastOneTarget(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		term.NewEmission("a", "m", term.Sync)
	})
}

func TestReceptionRequiresAtLeastOneRecipient(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		term.NewReception(nil, "m", term.Sync)
	})
}

func TestLeftRightPanicOnNonBinary(t *testing.T) {
	t.Parallel()

	e := term.Empty()
	assert.Panics(t, func() { e.Left() })
	assert.Panics(t, func() { e.Right() })
}

func TestKindString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		kind     term.Kind
		expected string
	}{
		{term.KEmpty, "Empty"},
		{term.KEmission, "Emission"},
		{term.KReception, "Reception"},
		{term.KStrict, "Strict"},
		{term.KSeq, "Seq"},
		{term.KCoReg, "CoReg"},
		{term.KPar, "Par"},
		{term.KAlt, "Alt"},
		{term.KSync, "Sync"},
		{term.KLoop, "Loop"},
		{term.KAnd, "And"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.kind.String())
	}
}

func TestWithTargetsAndRecipients(t *testing.T) {
	t.Parallel()

	e := term.NewEmission("a", "m", term.Async, "b")
	e2 := e.WithTargets([]term.Lifeline{"b", "c"})
	assert.Equal(t, []term.Lifeline{"b", "c"}, e2.Targets())
	assert.Equal(t, []term.Lifeline{"b"}, e.Targets(), "original emission must not be mutated")

	r := term.NewReception(nil, "m", term.Async, "b")
	r2 := r.WithRecipients([]term.Lifeline{"b", "c"})
	assert.Equal(t, []term.Lifeline{"b", "c"}, r2.Recipients())

	assert.Panics(t, func() { r.WithRecipients(nil) })
}

func TestCompareTotalOrderRespectsVariantOrder(t *testing.T) {
	t.Parallel()

	ordered := []term.Interaction{
		term.Empty(),
		term.NewEmission("a", "m", term.Sync, "b"),
		term.NewReception(nil, "m", term.Sync, "b"),
		term.NewStrict(term.Empty(), term.Empty()),
		term.NewSeq(term.Empty(), term.Empty()),
	}

	for i := 0; i < len(ordered)-1; i++ {
		require.Less(t, ordered[i].Compare(ordered[i+1]), 0)
	}
}

func TestEqualIsReflexiveAndDistinguishesDifferentTerms(t *testing.T) {
	t.Parallel()

	a := term.NewEmission("a", "m", term.Async, "b")
	b := term.NewEmission("a", "m", term.Async, "b")
	c := term.NewEmission("a", "m", term.Async, "c")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
