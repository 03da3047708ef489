package domain_test

import (
	"testing"

	"topicmap/internal/modules/chart/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonSetThreeCategories(t *testing.T) {
	t.Parallel()
	got := domain.ButtonSet([]string{"X", "Y", "Z"})
	require.Len(t, got, 4)
	assert.Equal(t, domain.ButtonSpec{Label: "All", Visible: []bool{true, true, true, true}}, got[0])
	assert.Equal(t, domain.ButtonSpec{Label: "X", Visible: []bool{true, true, false, false}}, got[1])
	assert.Equal(t, domain.ButtonSpec{Label: "Y", Visible: []bool{true, false, true, false}}, got[2])
	assert.Equal(t, domain.ButtonSpec{Label: "Z", Visible: []bool{true, false, false, true}}, got[3])
}

func TestButtonSetEmpty(t *testing.T) {
	t.Parallel()
	got := domain.ButtonSet(nil)
	require.Len(t, got, 1)
	assert.Equal(t, "All", got[0].Label)
	assert.Equal(t, []bool{true}, got[0].Visible)
}

func TestButtonSetVectorsDoNotAlias(t *testing.T) {
	t.Parallel()
	got := domain.ButtonSet([]string{"A", "B"})
	got[0].Visible[1] = false
	got[1].Visible[2] = true
	assert.Equal(t, []bool{true, false, true}, got[2].Visible)
	for _, b := range got {
		assert.Len(t, b.Visible, 3)
	}
	fresh := domain.ButtonSet([]string{"A", "B"})
	assert.Equal(t, []bool{true, true, true}, fresh[0].Visible)
	assert.Equal(t, []bool{true, true, false}, fresh[1].Visible)
}
