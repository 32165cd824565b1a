package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hibou-lang/hibou/term"
)

func TestSubAtAndReplaceAt(t *testing.T) {
	t.Parallel()

	emission := term.NewEmission("a", "m", term.Sync, "b")
	reception := term.NewReception(nil, "m", term.Sync, "b")
	strict := term.NewStrict(emission, reception)

	assert.True(t, term.SubAt(strict, term.Left(term.Epsilon(nil))).Equal(emission))
	assert.True(t, term.SubAt(strict, term.Right(term.Epsilon(nil))).Equal(reception))

	replaced := term.ReplaceAt(strict, term.Left(term.Epsilon(nil)), term.Empty())
	assert.True(t, replaced.Left().Equal(term.Empty()))
	assert.True(t, replaced.Right().Equal(reception))
}

func TestSubAtPanicsOnInvalidPosition(t *testing.T) {
	t.Parallel()

	e := term.Empty()
	assert.Panics(t, func() { term.SubAt(e, term.Left(term.Epsilon(nil))) })
}

func TestLoopDepthAt(t *testing.T) {
	t.Parallel()

	emission := term.NewEmission("a", "m", term.Sync, "b")
	loop := term.NewLoop(term.LoopW, emission)
	strict := term.NewStrict(loop, term.Empty())

	depthInsideLoop := term.LoopDepthAt(strict, term.Left(term.Left(term.Epsilon(nil))))
	assert.Equal(t, uint32(1), depthInsideLoop)

	depthOutsideLoop := term.LoopDepthAt(strict, term.Right(term.Epsilon(nil)))
	assert.Equal(t, uint32(0), depthOutsideLoop)
}
