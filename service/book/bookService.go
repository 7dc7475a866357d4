package booksvc

import (
	"context"
	"errors"

	"bookborrow/model"
)

var (
	ErrBadInput  = errors.New("invalid payload")
	ErrForbidden = errors.New("librarian role required")
	ErrNotFound  = errors.New("book not found")
)

type Repo interface {
	CreateBook(ctx context.Context, title, author string) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type Service interface {
	Create(ctx context.Context, caller model.Caller, title, author string) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, caller model.Caller, title, author string) (int64, error) {
	if !caller.IsLibrarian() {
		return 0, ErrForbidden
	}
	if title == "" || author == "" {
		return 0, ErrBadInput
	}
	return s.r.CreateBook(ctx, title, author)
}

func (s *service) List(ctx context.Context) ([]model.Book, error) { return s.r.List(ctx) }

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}
