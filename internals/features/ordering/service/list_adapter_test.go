package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, be Backend) (*ListAdapter, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	a := NewListAdapter(testList, be, NewSynchronizer(be, SynchronizerOptions{}), n)
	require.NoError(t, a.Load(context.Background()))
	return a, n
}

func TestListAdapter_DragEndSuccess(t *testing.T) {
	be := newMemBackend(items("A", "B", "C", "D"))
	a, n := newTestAdapter(t, be)

	res, err := a.DragEnd(context.Background(), 0, 2)
	require.NoError(t, err)

	assert.Len(t, res.Changed, 3)
	assert.Equal(t, PhaseCommitted, a.Store().Phase())
	assert.Equal(t, []string{"B:1", "C:2", "A:3", "D:4"}, pairs(a.Current()))
	require.Len(t, n.notices, 1)
	assert.Equal(t, NotifySuccess, n.notices[0].Kind)
}

func TestListAdapter_DragEndNoOp(t *testing.T) {
	be := newMemBackend(items("A", "B"))
	a, n := newTestAdapter(t, be)

	res, err := a.DragEnd(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.True(t, res.NoOp())
	assert.Zero(t, be.writeCount())
	assert.Empty(t, n.notices)
}

func TestListAdapter_DragEndInvalidIndex(t *testing.T) {
	be := newMemBackend(items("A", "B"))
	a, _ := newTestAdapter(t, be)

	_, err := a.DragEnd(context.Background(), 0, 2)
	var iie *InvalidIndexError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, PhaseSynced, a.Store().Phase())
}

// Scenario C lewat adapter: gagal → reload dari server + notify error.
func TestListAdapter_DragEndPartialFailure(t *testing.T) {
	be := newMemBackend(items("A", "B", "C", "D"))
	be.failIDs["C"] = true
	a, n := newTestAdapter(t, be)

	_, err := a.DragEnd(context.Background(), 0, 2)

	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, []string{"C"}, perr.Failed)

	st := a.Store().State()
	assert.Equal(t, PhaseFailed, st.Phase)
	// B→1, A→3 tertulis, C tetap 3
	assert.Equal(t, []string{"B:1", "A:3", "C:3", "D:4"}, pairs(st.Items))

	require.Len(t, n.notices, 1)
	assert.Equal(t, NotifyError, n.notices[0].Kind)
}

func TestListAdapter_FailureAndReloadFailure(t *testing.T) {
	be := newMemBackend(items("A", "B"))
	be.failIDs["A"] = true
	a, n := newTestAdapter(t, be)
	be.listErr = errors.New("db down")

	_, err := a.DragEnd(context.Background(), 0, 1)
	require.Error(t, err)

	var perr *PersistError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, PhaseFailed, a.Store().Phase())
	// list optimistic dipertahankan karena server tidak bisa dibaca
	assert.Equal(t, []string{"B:1", "A:2"}, pairs(a.Current()))
	require.Len(t, n.notices, 1)
	assert.Equal(t, NotifyError, n.notices[0].Kind)
}

func TestListAdapter_UndoRedoCommits(t *testing.T) {
	be := newMemBackend(items("A", "B", "C"))
	a, n := newTestAdapter(t, be)

	_, err := a.DragEnd(context.Background(), 2, 0)
	require.NoError(t, err)

	_, ok, err := a.Undo(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	server, _ := be.ListItems(context.Background(), testList)
	assert.Equal(t, []string{"A:1", "B:2", "C:3"}, pairs(server))

	_, ok, err = a.Redo(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	server, _ = be.ListItems(context.Background(), testList)
	assert.Equal(t, []string{"C:1", "A:2", "B:3"}, pairs(server))

	assert.Len(t, n.notices, 3)
}

func TestListAdapter_NilNotifier(t *testing.T) {
	be := newMemBackend(items("A", "B"))
	a := NewListAdapter(testList, be, NewSynchronizer(be, SynchronizerOptions{}), nil)
	require.NoError(t, a.Load(context.Background()))

	_, err := a.DragEnd(context.Background(), 0, 1)
	assert.NoError(t, err)
}

func TestSessions_AcquireReusesAdapter(t *testing.T) {
	be := newMemBackend(items("A", "B"))
	sessions := NewSessions(time.Minute)
	created := 0
	factory := func() *ListAdapter {
		created++
		return NewListAdapter(testList, be, NewSynchronizer(be, SynchronizerOptions{}), nil)
	}

	a1, fresh, release := sessions.Acquire("u1:test", factory)
	assert.True(t, fresh)
	release()

	a2, fresh, release := sessions.Acquire("u1:test", factory)
	assert.False(t, fresh)
	release()

	assert.Same(t, a1, a2)
	assert.Equal(t, 1, created)
}

func TestSessions_Expire(t *testing.T) {
	sessions := NewSessions(time.Minute)
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	_, _, release := sessions.Acquire("k", func() *ListAdapter { return &ListAdapter{} })
	release()
	assert.Equal(t, 1, sessions.Len())

	now = now.Add(2 * time.Minute)
	_, fresh, release := sessions.Acquire("k", func() *ListAdapter { return &ListAdapter{} })
	release()
	assert.True(t, fresh)
}
