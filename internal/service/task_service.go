package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/anmshpython/to-do-list/internal/cache"
	dom "github.com/anmshpython/to-do-list/internal/domain"
	"github.com/anmshpython/to-do-list/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("task belongs to another user")
	ErrEmptyTitle = errors.New("title is required")
)

type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
	now   func() time.Time
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c, now: time.Now}
}

// Create persists a task for userID. The creation date is stamped to today;
// a blank taskDate defaults to today as well.
func (s *TaskService) Create(ctx context.Context, userID int64, title, taskDate string) (dom.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Task{}, ErrEmptyTitle
	}
	today := s.now().Format(dom.DateLayout)
	taskDate = strings.TrimSpace(taskDate)
	if taskDate == "" {
		taskDate = today
	}
	t, err := s.repo.Create(ctx, dom.Task{
		AuthorID: userID,
		Title:    title,
		Date:     today,
		TaskDate: taskDate,
	})
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// List returns the user's tasks, serving repeated reads from the cache.
func (s *TaskService) List(ctx context.Context, userID int64) ([]dom.Task, error) {
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(userID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListByAuthor(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.repo.ListByAuthor(ctx, userID)
}

// Delete removes the task with the given id if userID owns it.
func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if t.AuthorID != userID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// FlushDrafts persists every draft under userID. Empty input is a no-op.
// Drafts whose dates were never stamped get today for both fields.
func (s *TaskService) FlushDrafts(ctx context.Context, userID int64, drafts []dom.Draft) error {
	if len(drafts) == 0 {
		return nil
	}
	today := s.now().Format(dom.DateLayout)
	for _, d := range drafts {
		t := dom.Task{
			AuthorID: userID,
			Title:    d.Title,
			Date:     d.Date,
			TaskDate: d.TaskDate,
		}
		if t.Date == "" {
			t.Date = today
		}
		if t.TaskDate == "" {
			t.TaskDate = today
		}
		if _, err := s.repo.Create(ctx, t); err != nil {
			return err
		}
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}
