package repo

import (
	"context"

	dom "github.com/anmshpython/to-do-list/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]dom.Task, error)
	Delete(ctx context.Context, id int64) error
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (author_id, title, date, task_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, author_id, title, date, task_date`
	var out dom.Task
	err := r.db.QueryRow(ctx, query, t.AuthorID, t.Title, t.Date, t.TaskDate).Scan(
		&out.ID, &out.AuthorID, &out.Title, &out.Date, &out.TaskDate,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	query := `
		SELECT id, author_id, title, date, task_date
		FROM tasks WHERE id = $1`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.AuthorID, &t.Title, &t.Date, &t.TaskDate,
	)
	return t, err
}

// ListByAuthor returns the author's tasks in insertion order.
func (r *PGTaskRepo) ListByAuthor(ctx context.Context, authorID int64) ([]dom.Task, error) {
	query := `
		SELECT id, author_id, title, date, task_date
		FROM tasks WHERE author_id = $1 ORDER BY id ASC`
	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.AuthorID, &t.Title, &t.Date, &t.TaskDate); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}
