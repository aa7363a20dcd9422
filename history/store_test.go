package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/wabbit/db"
	"github.com/teranos/wabbit/vw/wire"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionLifecycle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.BeginSession("vw --quiet -p /dev/stdout")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	sessions, err := store.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].ID)
	assert.Equal(t, "vw --quiet -p /dev/stdout", sessions[0].Command)
	assert.Nil(t, sessions[0].EndedAt, "session should still be open")
	assert.Zero(t, sessions[0].Exchanges)

	require.NoError(t, store.EndSession(id))

	sessions, err = store.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.NotNil(t, sessions[0].EndedAt)
}

func TestRecordAndRecall(t *testing.T) {
	store := openTestStore(t)

	id, err := store.BeginSession("vw --quiet")
	require.NoError(t, err)

	scalar := wire.Decode("0.734 tag_123", false)
	text := wire.Decode("some_tag", false)

	require.NoError(t, store.RecordExchange(id, "1.0 'tag_123| fuzzy ", "0.734 tag_123", scalar, 3*time.Millisecond))
	require.NoError(t, store.RecordExchange(id, " 'some_tag| fuzzy ", "some_tag", text, time.Millisecond))

	got, err := store.RecentExchanges(10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Most recent first.
	assert.Equal(t, " 'some_tag| fuzzy ", got[0].Line)
	assert.Equal(t, wire.KindText, got[0].Kind)
	assert.Nil(t, got[0].Scalar)

	assert.Equal(t, "1.0 'tag_123| fuzzy ", got[1].Line)
	assert.Equal(t, wire.KindScalar, got[1].Kind)
	require.NotNil(t, got[1].Scalar)
	assert.InDelta(t, 0.734, *got[1].Scalar, 1e-9)
	assert.Equal(t, int64(3), got[1].DurationMS)

	sessions, err := store.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 2, sessions[0].Exchanges)
}

func TestRecentExchangesLimit(t *testing.T) {
	store := openTestStore(t)

	id, err := store.BeginSession("vw --quiet")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		r := wire.Decode("0.5", false)
		require.NoError(t, store.RecordExchange(id, "x |a b ", "0.5", r, 0))
	}

	got, err := store.RecentExchanges(3)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// Zero limit falls back to the default instead of returning nothing.
	got, err = store.RecentExchanges(0)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestClosedDatabaseErrors(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	store := NewStore(mockDB)

	mock.ExpectExec("INSERT INTO sessions").
		WillReturnError(db.ErrDatabaseClosed)
	_, err = store.BeginSession("vw --quiet")
	assert.ErrorIs(t, err, db.ErrDatabaseClosed)

	mock.ExpectExec("INSERT INTO exchanges").
		WillReturnError(db.ErrDatabaseClosed)
	err = store.RecordExchange("s1", "x |a b ", "0.5", wire.Decode("0.5", false), 0)
	assert.ErrorIs(t, err, db.ErrDatabaseClosed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range []wire.ResultKind{wire.KindText, wire.KindScalar, wire.KindVector} {
		assert.Equal(t, k, parseKind(k.String()))
	}
	assert.Equal(t, wire.KindText, parseKind("garbage"))
}
