package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string, terminal bool) (*Prompter, *bytes.Buffer) {
	out := new(bytes.Buffer)
	p := New(false)
	p.in = strings.NewReader(input)
	p.out = out
	p.isTerminal = func() bool { return terminal }
	return p, out
}

func TestConfirm_Yes(t *testing.T) {
	for _, answer := range []string{"y\n", "Y\n", "yes\n", "YES\n", " yes \n"} {
		p, _ := newTestPrompter(answer, true)

		ok, err := p.Confirm("continue? ")

		require.NoError(t, err)
		assert.True(t, ok, "answer %q should confirm", answer)
	}
}

func TestConfirm_No(t *testing.T) {
	for _, answer := range []string{"n\n", "no\n", "\n", "nope\n", "yess\n"} {
		p, _ := newTestPrompter(answer, true)

		ok, err := p.Confirm("continue? ")

		require.NoError(t, err)
		assert.False(t, ok, "answer %q should decline", answer)
	}
}

func TestConfirm_PrintsQuestion(t *testing.T) {
	p, out := newTestPrompter("y\n", true)

	_, err := p.Confirm("Do you want to continue? [y/N] ")

	require.NoError(t, err)
	assert.Equal(t, "Do you want to continue? [y/N] ", out.String())
}

func TestConfirm_AssumeYesSkipsPrompt(t *testing.T) {
	out := new(bytes.Buffer)
	p := New(true)
	p.out = out
	p.isTerminal = func() bool { return false }

	ok, err := p.Confirm("continue? ")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, out.Len())
}

func TestConfirm_NonTerminalRefuses(t *testing.T) {
	p, _ := newTestPrompter("y\n", false)

	ok, err := p.Confirm("continue? ")

	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestConfirm_EOFWithoutInput(t *testing.T) {
	p, _ := newTestPrompter("", true)

	ok, err := p.Confirm("continue? ")

	assert.False(t, ok)
	assert.Error(t, err)
}

func TestConfirm_AnswerWithoutTrailingNewline(t *testing.T) {
	p, _ := newTestPrompter("yes", true)

	ok, err := p.Confirm("continue? ")

	require.NoError(t, err)
	assert.True(t, ok)
}
