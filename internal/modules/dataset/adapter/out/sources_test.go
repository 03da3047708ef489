package out_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	datasetout "topicmap/internal/modules/dataset/adapter/out"
	"topicmap/internal/modules/dataset/domain"
	apperrors "topicmap/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const csvBody = "\ufeffCity,x,y,Todo,topic_string,lda_Topic_Keywords,lda_Topic\n" +
	"Lisbon,1.5,-2,\"Sunny, bright loft\",views,\"view, river\",0\n" +
	"Porto,0.25,3,Old town room,history,\"old, town\",2\n"

func TestCSVSourceLoadsHeaderAndRows(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvBody), 0o644))

	table, err := datasetout.NewCSVSource().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "City", table.Columns[0])
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Sunny, bright loft", table.Rows[0][3])
}

func TestCSVSourceMissingFile(t *testing.T) {
	t.Parallel()
	_, err := datasetout.NewCSVSource().Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCSVSourceRejectsRaggedRows(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ragged.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1\n"), 0o644))
	_, err := datasetout.NewCSVSource().Load(context.Background(), path)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCSVSourceAcceptsUnnamedIndexColumn(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "export.csv")
	body := ",City,x,y,Todo,topic_string,lda_Topic_Keywords,lda_Topic\n" +
		"0,Lisbon,1,2,Loft,views,view,0\n" +
		"1,Porto,3,4,Room,history,old,1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	table, err := datasetout.NewDefaultRouter().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	listings, err := domain.ParseListings(table, domain.DefaultSchema().ForModel("lda"))
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Porto", listings[1].Category)
	assert.Equal(t, 1, listings[1].TopicCode)
}

func TestSQLiteSourceThroughRouter(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "listings.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE rooms (City TEXT, x REAL, y REAL, lda_Topic INTEGER, note TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO rooms VALUES ('Lisbon', 1.5, -2, 3, NULL), ('Porto', 0.25, 3, 1, 'ok')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	router := datasetout.NewDefaultRouter()
	table, err := router.Load(context.Background(), "sqlite://"+dbPath+"?table=rooms")
	require.NoError(t, err)
	assert.Equal(t, []string{"City", "x", "y", "lda_Topic", "note"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Lisbon", "1.5", "-2", "3", ""}, table.Rows[0])
}

func TestSQLiteSourceMissingDatabase(t *testing.T) {
	t.Parallel()
	_, err := datasetout.NewSQLiteSource().Load(context.Background(), filepath.Join(t.TempDir(), "gone.db"))
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestParseRef(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw  string
		want datasetout.Ref
	}{
		{"data/listings.csv", datasetout.Ref{Kind: datasetout.KindCSV, Location: "data/listings.csv"}},
		{"data/airbnb.sqlite", datasetout.Ref{Kind: datasetout.KindSQLite, Location: "data/airbnb.sqlite", Table: "listings"}},
		{"sqlite:///tmp/a.db?table=rooms", datasetout.Ref{Kind: datasetout.KindSQLite, Location: "/tmp/a.db", Table: "rooms"}},
		{"sqlite://rel/a.db", datasetout.Ref{Kind: datasetout.KindSQLite, Location: "rel/a.db", Table: "listings"}},
		{
			"postgres://u:p@db:5432/airbnb?sslmode=disable&table=topics",
			datasetout.Ref{Kind: datasetout.KindPostgres, Location: "postgres://u:p@db:5432/airbnb?sslmode=disable", Table: "topics"},
		},
	}
	for _, tc := range cases {
		got, err := datasetout.ParseRef(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestParseRefRejectsUnsafeTable(t *testing.T) {
	t.Parallel()
	_, err := datasetout.ParseRef("sqlite://a.db?table=rooms-1")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = datasetout.ParseRef("  ")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
