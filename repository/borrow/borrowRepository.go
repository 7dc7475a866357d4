// repository/borrow/borrowRepository.go
package borrowrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bookborrow/model"
)

// Filter narrows List. Zero fields are ignored.
type Filter struct {
	BookID int64
	UserID int64
	Status model.BorrowStatus
}

type Repo interface {
	BookExists(ctx context.Context, bookID int64) (bool, error)

	CreateRequest(ctx context.Context, r *model.BorrowRequest) error
	GetRequest(ctx context.Context, id int64) (*model.BorrowRequest, error)

	// ListByBook returns requests for the book, oldest first.
	// Empty status means all statuses.
	ListByBook(ctx context.Context, bookID int64, status model.BorrowStatus) ([]model.BorrowRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]model.BorrowRequest, error)
	List(ctx context.Context, f Filter) ([]model.BorrowRequest, error)

	// UpdateStatus transitions id from one status to another and records
	// who decided. Returns false when the row is missing or no longer in
	// the expected status, so a lost race can never clobber a decided row.
	UpdateStatus(ctx context.Context, id int64, from, to model.BorrowStatus, decidedBy int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) BookExists(ctx context.Context, bookID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(&ok)
	return ok, err
}

func (r *repo) CreateRequest(ctx context.Context, br *model.BorrowRequest) error {
	const q = `
		INSERT INTO borrow_requests (user_id, book_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		br.UserID, br.BookID, br.StartDate, br.EndDate, br.Status,
	).Scan(&br.ID, &br.CreatedAt)
}

const selectCols = `
		id, user_id, book_id, start_date, end_date, status,
		decided_by, created_at, decided_at`

func (r *repo) GetRequest(ctx context.Context, id int64) (*model.BorrowRequest, error) {
	q := `SELECT ` + selectCols + `
		FROM borrow_requests
		WHERE id = $1`
	br, err := scanRequest(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return br, nil
}

func (r *repo) ListByBook(ctx context.Context, bookID int64, status model.BorrowStatus) ([]model.BorrowRequest, error) {
	f := Filter{BookID: bookID, Status: status}
	return r.List(ctx, f)
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.BorrowRequest, error) {
	return r.List(ctx, Filter{UserID: userID})
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.BorrowRequest, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.BookID > 0 {
		add("book_id = $%d", f.BookID)
	}
	if f.UserID > 0 {
		add("user_id = $%d", f.UserID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}

	q := `SELECT ` + selectCols + ` FROM borrow_requests`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at, id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BorrowRequest
	for rows.Next() {
		br, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *br)
	}
	return out, rows.Err()
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, from, to model.BorrowStatus, decidedBy int64) (bool, error) {
	const q = `
		UPDATE borrow_requests
		SET status = $3,
			decided_by = $4,
			decided_at = NOW()
		WHERE id = $1
		AND status = $2`
	res, err := r.db.ExecContext(ctx, q, id, from, to, decidedBy)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*model.BorrowRequest, error) {
	br := &model.BorrowRequest{}
	err := row.Scan(
		&br.ID, &br.UserID, &br.BookID, &br.StartDate, &br.EndDate, &br.Status,
		&br.DecidedBy, &br.CreatedAt, &br.DecidedAt,
	)
	if err != nil {
		return nil, err
	}
	return br, nil
}
