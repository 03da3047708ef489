package domain

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/unicode/norm"
)

const LineBreak = "<br>"

// HoverLabel keeps hover text as separate lines; markup is only chosen when
// the figure is encoded.
type HoverLabel struct {
	Lines []string
}

func NewHoverLabel(topic, keywords, description string, width int) HoverLabel {
	lines := []string{strings.TrimSpace(topic), strings.TrimSpace(keywords)}
	lines = append(lines, WrapText(description, width)...)
	return HoverLabel{Lines: lines}
}

func (h HoverLabel) Join(sep string) string {
	return strings.Join(h.Lines, sep)
}

// WrapText fills lines greedily up to width characters. Whitespace runs
// collapse to one space, hyphenated words may break after the hyphen, and a
// word longer than width fills the rest of the current line before it
// continues on the next one. Terminal escape sequences are dropped first.
func WrapText(text string, width int) []string {
	text = strings.Join(strings.Fields(norm.NFC.String(ansi.Strip(text))), " ")
	if text == "" {
		return nil
	}
	if width <= 0 {
		return []string{text}
	}
	chunks := wrapChunks(text)
	var lines []string
	for i := 0; i < len(chunks); {
		if len(lines) > 0 && isSpaceChunk(chunks[i]) {
			i++
			continue
		}
		var line []rune
		for i < len(chunks) && len(line)+len(chunks[i]) <= width {
			line = append(line, chunks[i]...)
			i++
		}
		if i < len(chunks) && len(chunks[i]) > width {
			room := width - len(line)
			line = append(line, chunks[i][:room]...)
			chunks[i] = chunks[i][room:]
		}
		if trimmed := strings.TrimRight(string(line), " "); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// wrapChunks splits single-spaced text into words and the spaces between
// them, breaking words after a hyphen that sits between two letters.
func wrapChunks(text string) [][]rune {
	var chunks [][]rune
	for i, word := range strings.Split(text, " ") {
		if i > 0 {
			chunks = append(chunks, []rune{' '})
		}
		runes := []rune(word)
		start := 0
		for j := 1; j < len(runes)-1; j++ {
			if runes[j] == '-' && unicode.IsLetter(runes[j-1]) && unicode.IsLetter(runes[j+1]) {
				chunks = append(chunks, runes[start:j+1])
				start = j + 1
			}
		}
		chunks = append(chunks, runes[start:])
	}
	return chunks
}

func isSpaceChunk(chunk []rune) bool {
	return len(chunk) == 1 && chunk[0] == ' '
}
