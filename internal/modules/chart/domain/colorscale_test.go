package domain_test

import (
	"encoding/json"
	"testing"

	"topicmap/internal/modules/chart/domain"
	apperrors "topicmap/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscreteColorscaleExample(t *testing.T) {
	t.Parallel()
	got, err := domain.DiscreteColorscale([]float64{0, 0.5, 1}, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, domain.Colorscale{
		{Position: 0, Color: "a"},
		{Position: 0.5, Color: "a"},
		{Position: 0.5, Color: "b"},
		{Position: 1, Color: "b"},
	}, got)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `[[0,"a"],[0.5,"a"],[0.5,"b"],[1,"b"]]`, string(raw))
}

func TestDiscreteColorscaleShape(t *testing.T) {
	t.Parallel()
	cases := [][]float64{
		{0, 1},
		{3, 7, 11, 40},
		{-5, -1, 0, 2.5, 100},
		domain.Linspace(0, 1, 12),
	}
	for _, boundaries := range cases {
		colors := make([]string, len(boundaries)-1)
		for i := range colors {
			colors[i] = string(rune('a' + i))
		}
		got, err := domain.DiscreteColorscale(boundaries, colors)
		require.NoError(t, err)
		require.Len(t, got, 2*len(colors))
		assert.Equal(t, 0.0, got[0].Position)
		assert.Equal(t, 1.0, got[len(got)-1].Position)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].Position, got[i].Position)
		}
		for k, color := range colors {
			assert.Equal(t, color, got[2*k].Color)
			assert.Equal(t, color, got[2*k+1].Color)
		}
	}
}

func TestDiscreteColorscaleSortsWithoutMutatingInput(t *testing.T) {
	t.Parallel()
	boundaries := []float64{10, 0, 5}
	got, err := domain.DiscreteColorscale(boundaries, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 0, 5}, boundaries)
	assert.Equal(t, []float64{0, 0.5, 0.5, 1}, []float64{got[0].Position, got[1].Position, got[2].Position, got[3].Position})
}

func TestDiscreteColorscaleRejectsBadInput(t *testing.T) {
	t.Parallel()
	_, err := domain.DiscreteColorscale([]float64{0, 1, 2}, []string{"red"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = domain.DiscreteColorscale([]float64{0}, nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = domain.DiscreteColorscale(nil, nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = domain.DiscreteColorscale([]float64{2, 2}, []string{"a"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestColorStopJSONRoundTrip(t *testing.T) {
	t.Parallel()
	var scale domain.Colorscale
	require.NoError(t, json.Unmarshal([]byte(`[[0,"#db5f57"],[0.25,"#db5f57"]]`), &scale))
	assert.Equal(t, domain.Colorscale{{Position: 0, Color: "#db5f57"}, {Position: 0.25, Color: "#db5f57"}}, scale)

	require.Error(t, json.Unmarshal([]byte(`[[0]]`), &scale))
}

func TestLinspace(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, domain.Linspace(0, 1, 5))
	assert.Equal(t, []float64{2}, domain.Linspace(2, 9, 1))
	assert.Nil(t, domain.Linspace(0, 1, 0))
}
