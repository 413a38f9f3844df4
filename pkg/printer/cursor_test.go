package printer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacePadsToPosition(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.place("x", 2, 3)

	assert.Equal(t, "\n   x", buf.String())
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, 4, p.Col())
}

func TestPlaceBehindCursorPadsNothing(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.emit("hello")
	p.place("y", 1, 2)

	assert.Equal(t, "helloy", buf.String())
	assert.Equal(t, 6, p.Col())
}

func TestEmitAdvancesAcrossNewlines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.emit("a\nbc")

	assert.Equal(t, "a\nbc", buf.String())
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, 2, p.Col())
}

func TestPlaceBefore(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.placeBefore("key=", 1, 10)

	assert.Equal(t, "      key=", buf.String())
	assert.Equal(t, 10, p.Col())
}

func TestPlaceBeforeClampsAtLineStart(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.placeBefore("toolong", 1, 2)

	assert.Equal(t, "toolong", buf.String())
}

func TestWindowSuppressesLinesOutside(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	p.SetWindow(2, 2)

	p.emit("one\ntwo\nthree\n")

	assert.Equal(t, "two\n", buf.String())
	// cursor bookkeeping is unaffected by the window
	assert.Equal(t, 4, p.Line())
	assert.Equal(t, 0, p.Col())
}

func TestCaptureDivertsOutput(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.emit("ab")
	text, err := p.capture(func() error {
		p.emit("inside")
		p.place("x", 5, 5) // positions are ignored while capturing
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "insidex", text)
	assert.Equal(t, "ab", buf.String())
	assert.Equal(t, 1, p.Line())
	assert.Equal(t, 2, p.Col())
}

func TestCaptureNests(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	outer, err := p.capture(func() error {
		p.emit("a")
		inner, err := p.capture(func() error {
			p.emit("b")
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "b", inner)
		p.emit("c")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ac", outer)
	assert.Empty(t, buf.String())
}

func TestCaptureRestoresOnError(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	boom := errors.New("boom")
	_, err := p.capture(func() error {
		p.emit("lost")
		return boom
	})

	assert.ErrorIs(t, err, boom)

	p.emit("z")
	assert.Equal(t, "z", buf.String())
}

func TestOperatorSpaceBeforeSameLineText(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.emit("a")
	p.opSep("+")
	// recorded position behind the cursor: the scheduled space still lands
	p.place("b", 1, 2)

	assert.Equal(t, "a + b", buf.String())
	assert.Equal(t, 5, p.Col())
}

func TestOperatorSpaceDissolvesAtNewline(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.emit("1")
	p.opSep("+")
	p.place("2", 2, 5)

	assert.Equal(t, "1 +\n     2", buf.String())
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, 6, p.Col())
}

func TestFinishClosesOpenLine(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.emit("x")
	p.Finish()

	assert.Equal(t, "x\n", buf.String())
}

func TestFinishIsNoopAtLineStart(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.emit("x\n")
	p.Finish()

	assert.Equal(t, "x\n", buf.String())
}
