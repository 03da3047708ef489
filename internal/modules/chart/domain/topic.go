package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	apperrors "topicmap/internal/platform/errors"

	"github.com/lucasb-eyer/go-colorful"
)

type AssignmentKind string

// MaxTopics bounds dense topic counts and sparse topic codes.
const MaxTopics = 1 << 16

const (
	KindDense  AssignmentKind = "dense"
	KindSparse AssignmentKind = "sparse"
)

// TopicAssignment fixes which topics exist and how they map onto a palette.
// Dense(n) covers codes 0..n-1 and indexes the palette by position; Sparse
// covers an explicit code set and indexes a palette of max(code)+1 colors by
// code, so sparse codes keep stable colors across datasets.
type TopicAssignment struct {
	kind  AssignmentKind
	count int
	codes []int
}

func DenseTopics(count int) TopicAssignment {
	return TopicAssignment{kind: KindDense, count: count}
}

// SparseTopics de-duplicates and sorts codes.
func SparseTopics(codes []int) TopicAssignment {
	seen := make(map[int]struct{}, len(codes))
	uniq := make([]int, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		uniq = append(uniq, c)
	}
	sort.Ints(uniq)
	return TopicAssignment{kind: KindSparse, codes: uniq}
}

func (a TopicAssignment) Kind() AssignmentKind {
	return a.kind
}

func (a TopicAssignment) Validate() error {
	switch a.kind {
	case KindDense:
		if a.count <= 0 {
			return fmt.Errorf("%w: topic count must be positive, got %d", apperrors.ErrInvalidInput, a.count)
		}
		if a.count > MaxTopics {
			return fmt.Errorf("%w: topic count %d exceeds %d", apperrors.ErrInvalidInput, a.count, MaxTopics)
		}
	case KindSparse:
		if len(a.codes) == 0 {
			return fmt.Errorf("%w: at least one topic code is required", apperrors.ErrInvalidInput)
		}
		if a.codes[0] < 0 {
			return fmt.Errorf("%w: topic codes must not be negative, got %d", apperrors.ErrInvalidInput, a.codes[0])
		}
		if last := a.codes[len(a.codes)-1]; last >= MaxTopics {
			return fmt.Errorf("%w: topic code %d exceeds %d", apperrors.ErrInvalidInput, last, MaxTopics-1)
		}
	default:
		return fmt.Errorf("%w: topic assignment is not set", apperrors.ErrInvalidInput)
	}
	return nil
}

// Codes lists topic codes in legend order.
func (a TopicAssignment) Codes() []int {
	if a.kind == KindSparse {
		return append([]int(nil), a.codes...)
	}
	out := make([]int, a.count)
	for i := range out {
		out[i] = i
	}
	return out
}

func (a TopicAssignment) Len() int {
	if a.kind == KindSparse {
		return len(a.codes)
	}
	return a.count
}

func (a TopicAssignment) PaletteSize() int {
	if a.kind == KindSparse {
		if len(a.codes) == 0 {
			return 0
		}
		return a.codes[len(a.codes)-1] + 1
	}
	return a.count
}

func (a TopicAssignment) String() string {
	if a.kind == KindSparse {
		parts := make([]string, len(a.codes))
		for i, c := range a.codes {
			parts[i] = strconv.Itoa(c)
		}
		return "sparse(" + strings.Join(parts, ",") + ")"
	}
	return "dense(" + strconv.Itoa(a.count) + ")"
}

// HLSPalette returns n colors evenly spaced in hue, starting just off red,
// at lightness 0.6 and saturation 0.65.
func HLSPalette(n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = hlsColor(i, n)
	}
	return out
}

// hlsColor is entry i of HLSPalette(n), computed without building the rest.
func hlsColor(i, n int) string {
	h := float64(i) * (1 / float64(n))
	h = math.Mod(h+0.01, 1)
	return colorful.Hsl(h*360, 0.65, 0.6).Hex()
}

type TopicPalette struct {
	codes  []int
	colors map[int]string
}

func NewTopicPalette(a TopicAssignment) (TopicPalette, error) {
	if err := a.Validate(); err != nil {
		return TopicPalette{}, err
	}
	size := a.PaletteSize()
	codes := a.Codes()
	colors := make(map[int]string, len(codes))
	for i, code := range codes {
		if a.kind == KindSparse {
			colors[code] = hlsColor(code, size)
			continue
		}
		colors[code] = hlsColor(i, size)
	}
	return TopicPalette{codes: codes, colors: colors}, nil
}

func (p TopicPalette) Color(code int) (string, error) {
	c, ok := p.colors[code]
	if !ok {
		return "", fmt.Errorf("%w: %d", apperrors.ErrUnknownTopic, code)
	}
	return c, nil
}

func (p TopicPalette) Codes() []int {
	return append([]int(nil), p.codes...)
}

// Colors lists colors in legend order.
func (p TopicPalette) Colors() []string {
	out := make([]string, len(p.codes))
	for i, code := range p.codes {
		out[i] = p.colors[code]
	}
	return out
}

func TopicTick(code int) string {
	return "topic_" + strconv.Itoa(code)
}
