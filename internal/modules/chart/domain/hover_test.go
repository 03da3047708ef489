package domain_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"topicmap/internal/modules/chart/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapTextRespectsWidth(t *testing.T) {
	t.Parallel()
	text := strings.Repeat("cozy studio near the beach ", 20)
	lines := domain.WrapText(text, 40)
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 40)
		assert.Equal(t, strings.TrimSpace(line), line)
	}
	assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(lines, " "))
}

func TestWrapTextFillsLineBeforeSplittingLongWord(t *testing.T) {
	t.Parallel()
	lines := domain.WrapText("intro "+strings.Repeat("a", 250), 100)
	require.Len(t, lines, 3)
	assert.Equal(t, "intro "+strings.Repeat("a", 94), lines[0])
	assert.Equal(t, strings.Repeat("a", 100), lines[1])
	assert.Equal(t, strings.Repeat("a", 56), lines[2])
}

func TestWrapTextCountsCharactersNotCells(t *testing.T) {
	t.Parallel()
	lines := domain.WrapText(strings.Repeat("京", 150), 100)
	require.Len(t, lines, 2)
	assert.Equal(t, 100, utf8.RuneCountInString(lines[0]))
	assert.Equal(t, 50, utf8.RuneCountInString(lines[1]))
}

func TestWrapTextBreaksAfterHyphens(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"well-", "known", "place"}, domain.WrapText("well-known place", 6))
	assert.Equal(t, []string{"red loft"}, domain.WrapText("\x1b[31mred\x1b[0m loft", 100))
}

func TestWrapTextCollapsesWhitespaceAndNormalizes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"Café with view"}, domain.WrapText("  Cafe\u0301\n\twith   view ", 100))
	assert.Nil(t, domain.WrapText(" \n ", 100))
	assert.Equal(t, []string{"a b"}, domain.WrapText("a  b", 0))
}

func TestHoverLabelLines(t *testing.T) {
	t.Parallel()
	label := domain.NewHoverLabel(" views ", "river, sun", "Bright loft", 100)
	assert.Equal(t, []string{"views", "river, sun", "Bright loft"}, label.Lines)
	assert.Equal(t, "views<br>river, sun<br>Bright loft", label.Join(domain.LineBreak))

	empty := domain.NewHoverLabel("t", "k", "", 100)
	assert.Equal(t, []string{"t", "k"}, empty.Lines)
}
