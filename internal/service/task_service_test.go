package service

import (
	"context"
	"testing"
	"time"

	"github.com/anmshpython/to-do-list/internal/cache"
	dom "github.com/anmshpython/to-do-list/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaskRepo struct {
	nextID int64
	tasks  []dom.Task
	lists  int // ListByAuthor call count, for cache assertions
}

func (r *fakeTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	r.nextID++
	t.ID = r.nextID
	r.tasks = append(r.tasks, t)
	return t, nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (dom.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return dom.Task{}, pgx.ErrNoRows
}

func (r *fakeTaskRepo) ListByAuthor(_ context.Context, authorID int64) ([]dom.Task, error) {
	r.lists++
	var out []dom.Task
	for _, t := range r.tasks {
		if t.AuthorID == authorID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestCreateStampsDates(t *testing.T) {
	repo := &fakeTaskRepo{}
	svc := NewTaskService(repo, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	created, err := svc.Create(context.Background(), 1, "Buy milk", "June 05, 2025")
	require.NoError(t, err)
	assert.Equal(t, "June 01, 2025", created.Date)
	assert.Equal(t, "June 05, 2025", created.TaskDate)

	// Blank task date defaults to today.
	created, err = svc.Create(context.Background(), 1, "Walk dog", "")
	require.NoError(t, err)
	assert.Equal(t, "June 01, 2025", created.TaskDate)

	_, err = svc.Create(context.Background(), 1, "   ", "June 05, 2025")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestListIsScopedToUser(t *testing.T) {
	repo := &fakeTaskRepo{}
	svc := NewTaskService(repo, nil)

	_, err := svc.Create(context.Background(), 1, "Ann's task", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 2, "Bob's task", "")
	require.NoError(t, err)

	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ann's task", list[0].Title)

	list, err = svc.List(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteChecksOwnership(t *testing.T) {
	repo := &fakeTaskRepo{}
	svc := NewTaskService(repo, nil)

	created, err := svc.Create(context.Background(), 1, "Ann's task", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), 2, created.ID), ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), 1, created.ID))

	// Gone now, and deleting an unknown id is a reported error, not a crash.
	assert.ErrorIs(t, svc.Delete(context.Background(), 1, created.ID), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 9999), ErrNotFound)
}

func TestFlushDrafts(t *testing.T) {
	repo := &fakeTaskRepo{}
	svc := NewTaskService(repo, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	drafts := []dom.Draft{
		{Title: "one", Date: "May 30, 2025", TaskDate: "May 31, 2025"},
		{Title: "two"},
		{Title: "three", TaskDate: "June 02, 2025"},
	}
	require.NoError(t, svc.FlushDrafts(context.Background(), 7, drafts))

	list, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "May 31, 2025", list[0].TaskDate)
	assert.Equal(t, "June 01, 2025", list[1].Date, "unstamped drafts get today")
	assert.Equal(t, "June 01, 2025", list[1].TaskDate)
	for _, task := range list {
		assert.Equal(t, int64(7), task.AuthorID)
	}

	// Flushing nothing is a no-op.
	require.NoError(t, svc.FlushDrafts(context.Background(), 7, nil))
	list, err = svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestListUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := &fakeTaskRepo{}
	svc := NewTaskService(repo, cache.NewTaskCache(rdb, time.Minute))

	_, err := svc.Create(context.Background(), 1, "cached", "")
	require.NoError(t, err)

	first, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.lists, "second read must come from cache")

	// Writes invalidate, so the next read hits the repo again.
	_, err = svc.Create(context.Background(), 1, "fresh", "")
	require.NoError(t, err)
	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, repo.lists)
}
