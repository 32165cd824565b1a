package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibou-lang/hibou/term"
)

func TestSimplLeftAndRight(t *testing.T) {
	t.Parallel()

	leaf := term.NewEmission("a", "m", term.Sync, "b")

	result, ok := simplLeft(term.NewStrict(term.Empty(), leaf))
	require.True(t, ok)
	assert.True(t, result.Equal(leaf))

	result, ok = simplRight(term.NewStrict(leaf, term.Empty()))
	require.True(t, ok)
	assert.True(t, result.Equal(leaf))

	_, ok = simplLeft(term.NewStrict(leaf, term.Empty()))
	assert.False(t, ok)
}

func TestFlushRightReassociatesStrict(t *testing.T) {
	t.Parallel()

	a := term.NewEmission("a", "m1", term.Sync, "b")
	b := term.NewEmission("b", "m2", term.Sync, "c")
	c := term.NewEmission("c", "m3", term.Sync, "d")

	nested := term.NewStrict(term.NewStrict(a, b), c)

	result, ok := flushRight(nested)
	require.True(t, ok)

	expected := term.NewStrict(a, term.NewStrict(b, c))
	assert.True(t, result.Equal(expected))
}

func TestDeduplicateAlt(t *testing.T) {
	t.Parallel()

	a := term.NewEmission("a", "m", term.Sync, "b")

	result, ok := deduplicate(term.NewAlt(a, a))
	require.True(t, ok)
	assert.True(t, result.Equal(a))

	_, ok = deduplicate(term.NewAlt(a, term.NewEmission("a", "other", term.Sync, "b")))
	assert.False(t, ok)
}

func TestLoopSimplOnEmptyBody(t *testing.T) {
	t.Parallel()

	loop := term.NewLoop(term.LoopW, term.Empty())

	result, ok := loopSimpl(loop)
	require.True(t, ok)
	assert.True(t, result.Equal(term.Empty()))
}

func TestGetOneTransformationFindsRootRuleFirst(t *testing.T) {
	t.Parallel()

	leaf := term.NewEmission("a", "m", term.Sync, "b")
	i := term.NewStrict(term.Empty(), leaf)

	transfo, ok := GetOneTransformation(phaseDefactorize(), i)
	require.True(t, ok)
	assert.True(t, transfo.Result.Equal(leaf))
}

func TestGetOneTransformationDescendsWhenRootHasNoRule(t *testing.T) {
	t.Parallel()

	deadEnd := term.NewEmission("a", "m", term.Sync, "b")
	leaf2 := term.NewEmission("b", "m2", term.Sync, "c")
	simplifiable := term.NewStrict(term.Empty(), leaf2)

	// Par, not Strict/Seq/Alt: none of the root-level rules (simpl,
	// flush, invert, defactorize) apply to this particular shape, so
	// the root itself offers nothing and the search must descend.
	i := term.NewPar(deadEnd, simplifiable)

	transfo, ok := GetOneTransformation(phaseDefactorize(), i)
	require.True(t, ok)

	expected := term.NewPar(deadEnd, leaf2)
	assert.True(t, transfo.Result.Equal(expected))
}

func TestGetOneTransformationAndRecursesButRebuildsAsStrict(t *testing.T) {
	t.Parallel()

	leaf := term.NewEmission("a", "m", term.Sync, "b")
	other := term.NewEmission("c", "m2", term.Sync, "d")

	simplifiableLeft := term.NewStrict(term.Empty(), leaf)
	and := term.NewAnd(simplifiableLeft, other)

	transfo, ok := GetOneTransformation(phaseDefactorize(), and)
	require.True(t, ok)

	assert.Equal(t, term.KStrict, transfo.Result.Kind())
	assert.True(t, transfo.Result.Left().Equal(leaf))
	assert.True(t, transfo.Result.Right().Equal(other))
}

func TestCanonizeReducesNestedEmptyStrict(t *testing.T) {
	t.Parallel()

	leaf := term.NewEmission("a", "m", term.Sync, "b")
	i := term.NewStrict(term.Empty(), term.NewStrict(term.Empty(), leaf))

	canonical, nodeCount := Canonize(i, nil)

	assert.True(t, canonical.Equal(leaf))
	assert.Positive(t, nodeCount)
}

func TestCanonizeIsIdempotentOnAnAlreadyCanonicalTerm(t *testing.T) {
	t.Parallel()

	leaf := term.NewEmission("a", "m", term.Sync, "b")

	canonical, nodeCount := Canonize(leaf, nil)

	assert.True(t, canonical.Equal(leaf))
	assert.Zero(t, nodeCount)
}
