package domain_test

import (
	"testing"

	"topicmap/internal/modules/dataset/domain"
	apperrors "topicmap/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() domain.Table {
	return domain.Table{
		Columns: []string{"City", "x", "y", "Todo", "topic_string", "lda_Topic_Keywords", "lda_Topic"},
		Rows: [][]string{
			{"Lisbon", "1.5", "-2", "Sunny loft", "views", "view, river", "0"},
			{"Porto", "0.25", "3", "Old town room", "history", "old, town", "2.0"},
			{"Lisbon", "4", "5e-1", "Quiet flat", "history", "old, town", "2"},
		},
	}
}

func TestSchemaForModelSubstitutesPlaceholders(t *testing.T) {
	t.Parallel()
	schema := domain.DefaultSchema()
	require.True(t, schema.NeedsModel())

	resolved := schema.ForModel("lda")
	assert.Equal(t, "lda_Topic_Keywords", resolved.Keywords)
	assert.Equal(t, "lda_Topic", resolved.TopicCode)
	assert.Equal(t, "topic_string", resolved.TopicLabel)
	assert.False(t, resolved.NeedsModel())
}

func TestParseListings(t *testing.T) {
	t.Parallel()
	listings, err := domain.ParseListings(sampleTable(), domain.DefaultSchema().ForModel("lda"))
	require.NoError(t, err)
	require.Len(t, listings, 3)
	assert.Equal(t, domain.Listing{
		Category: "Porto", X: 0.25, Y: 3, TopicCode: 2,
		TopicLabel: "history", Keywords: "old, town", Description: "Old town room",
	}, listings[1])
	assert.InDelta(t, 0.5, listings[2].Y, 1e-12)
}

func TestParseListingsMissingColumn(t *testing.T) {
	t.Parallel()
	_, err := domain.ParseListings(sampleTable(), domain.DefaultSchema().ForModel("nmf"))
	require.ErrorIs(t, err, apperrors.ErrMissingColumn)
	assert.Contains(t, err.Error(), "nmf_Topic")
}

func TestParseListingsRejectsMalformedCells(t *testing.T) {
	t.Parallel()
	schema := domain.DefaultSchema().ForModel("lda")

	table := sampleTable()
	table.Rows[1][1] = "east"
	_, err := domain.ParseListings(table, schema)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "row 2 column x")

	table = sampleTable()
	table.Rows[0][6] = "1.5"
	_, err = domain.ParseListings(table, schema)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	table = sampleTable()
	table.Rows[2] = table.Rows[2][:3]
	_, err = domain.ParseListings(table, schema)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestParseTopicCode(t *testing.T) {
	t.Parallel()
	for raw, want := range map[string]int{"3": 3, " 7 ": 7, "4.0": 4, "-1": -1} {
		got, err := domain.ParseTopicCode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []string{"", "x", "2.5", "NaN"} {
		_, err := domain.ParseTopicCode(raw)
		assert.Error(t, err, raw)
	}
}

func TestSummarizeKeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()
	listings, err := domain.ParseListings(sampleTable(), domain.DefaultSchema().ForModel("lda"))
	require.NoError(t, err)

	summary := domain.Summarize(listings)
	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "Lisbon", summary.Categories[0].Name)
	assert.Equal(t, 2, summary.Categories[0].Points)
	assert.Equal(t, map[int]int{0: 1, 2: 1}, summary.Categories[0].TopicCounts)
	assert.Equal(t, "Porto", summary.Categories[1].Name)
	assert.Equal(t, []int{0, 2}, summary.TopicCodes)
	assert.Equal(t, 3, summary.Points)
}

func TestTableValidateRejectsDuplicateColumns(t *testing.T) {
	t.Parallel()
	err := domain.Table{Columns: []string{"x", "x"}}.Validate()
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestTableValidateAllowsBlankHeaders(t *testing.T) {
	t.Parallel()
	table := domain.Table{
		Columns: []string{"", "x", " "},
		Rows:    [][]string{{"0", "1", ""}},
	}
	require.NoError(t, table.Validate())
}
