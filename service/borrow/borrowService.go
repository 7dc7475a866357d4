package borrowsvc

import (
	"context"
	"errors"
	"sync"

	"bookborrow/model"
	brepo "bookborrow/repository/borrow"
)

// errors used by controllers

type ErrCode string

const (
	ErrInvalidRange      ErrCode = "INVALID_RANGE"
	ErrBookNotFound      ErrCode = "BOOK_NOT_FOUND"
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrConflict          ErrCode = "CONFLICT"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
	ErrInvalidOutcome    ErrCode = "INVALID_OUTCOME"
	ErrUnauthorized      ErrCode = "UNAUTHORIZED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Filter = repository shape
type Filter = brepo.Filter

// Repo is the request store the engine runs against. The store is the
// sole source of truth; approved-interval sets are re-read on every
// admissibility check, never cached across calls.
type Repo interface {
	BookExists(ctx context.Context, bookID int64) (bool, error)

	CreateRequest(ctx context.Context, r *model.BorrowRequest) error
	GetRequest(ctx context.Context, id int64) (*model.BorrowRequest, error)
	ListByBook(ctx context.Context, bookID int64, status model.BorrowStatus) ([]model.BorrowRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]model.BorrowRequest, error)
	List(ctx context.Context, f Filter) ([]model.BorrowRequest, error)

	UpdateStatus(ctx context.Context, id int64, from, to model.BorrowStatus, decidedBy int64) (bool, error)
}

type Service interface {
	// Submit creates a PENDING request for [start, end), both YYYY-MM-DD.
	// The interval must not overlap any APPROVED interval for the book;
	// overlapping PENDING requests may coexist.
	Submit(ctx context.Context, userID, bookID int64, start, end string) (*model.BorrowRequest, error)

	// Decide transitions a PENDING request to APPROVED or DENIED.
	// Librarians only. APPROVED re-checks admissibility at decision time.
	Decide(ctx context.Context, caller model.Caller, requestID int64, outcome model.BorrowStatus) error

	// Get returns one request; owners and librarians only.
	Get(ctx context.Context, caller model.Caller, requestID int64) (*model.BorrowRequest, error)

	// List returns requests in creation order. Non-librarians are
	// restricted to their own requests regardless of the filter.
	List(ctx context.Context, caller model.Caller, f Filter) ([]model.BorrowRequest, error)

	// MyHistory lists the caller's requests in creation order.
	MyHistory(ctx context.Context, userID int64) ([]model.BorrowRequest, error)
}

// ----- Service implementation -----

type service struct {
	r Repo

	// mu guards bookLocks; each book gets its own mutex so the
	// check-then-commit in Decide is serialized per book.
	mu        sync.Mutex
	bookLocks map[int64]*sync.Mutex
}

func New(r Repo) Service {
	return &service{r: r, bookLocks: make(map[int64]*sync.Mutex)}
}

func (s *service) lockBook(bookID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lk, ok := s.bookLocks[bookID]
	if !ok {
		lk = &sync.Mutex{}
		s.bookLocks[bookID] = lk
	}
	return lk
}

// isAdmissible reports whether the candidate interval overlaps no
// APPROVED interval for the book. excludeID skips the request being
// re-evaluated; pass 0 for submissions. Always reads fresh state:
// approvals may have landed since the request was submitted.
func (s *service) isAdmissible(ctx context.Context, bookID int64, iv model.Interval, excludeID int64) (bool, error) {
	approved, err := s.r.ListByBook(ctx, bookID, model.BorrowApproved)
	if err != nil {
		return false, err
	}
	for i := range approved {
		if approved[i].ID == excludeID {
			continue
		}
		if iv.Overlaps(approved[i].Interval()) {
			return false, nil
		}
	}
	return true, nil
}

func (s *service) Submit(ctx context.Context, userID, bookID int64, start, end string) (*model.BorrowRequest, error) {
	iv, err := model.ParseInterval(start, end)
	if err != nil {
		return nil, makeErr(ErrInvalidRange)
	}

	exists, err := s.r.BookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, makeErr(ErrBookNotFound)
	}

	// Early admissibility check so doomed requests never pile up.
	// No book lock here: losing a race at submission only creates a
	// pending request that a later approval will reject.
	admissible, err := s.isAdmissible(ctx, bookID, iv, 0)
	if err != nil {
		return nil, err
	}
	if !admissible {
		return nil, makeErr(ErrConflict)
	}

	req := &model.BorrowRequest{
		UserID:    userID,
		BookID:    bookID,
		StartDate: iv.Start,
		EndDate:   iv.End,
		Status:    model.BorrowPending,
	}
	if err := s.r.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) Decide(ctx context.Context, caller model.Caller, requestID int64, outcome model.BorrowStatus) error {
	if !caller.IsLibrarian() {
		return makeErr(ErrUnauthorized)
	}
	if outcome != model.BorrowApproved && outcome != model.BorrowDenied {
		return makeErr(ErrInvalidOutcome)
	}

	req, err := s.r.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return makeErr(ErrNotFound)
	}
	if req.Status.Terminal() {
		return makeErr(ErrInvalidTransition)
	}

	if outcome == model.BorrowDenied {
		// Denial never checks admissibility.
		return s.commit(ctx, requestID, model.BorrowDenied, caller.ID)
	}

	// Serialize check-then-commit per book so two concurrent approvals
	// of overlapping requests can never both pass the check.
	lk := s.lockBook(req.BookID)
	lk.Lock()
	defer lk.Unlock()

	admissible, err := s.isAdmissible(ctx, req.BookID, req.Interval(), requestID)
	if err != nil {
		return err
	}
	if !admissible {
		// Request stays PENDING; the librarian may deny it instead.
		return makeErr(ErrConflict)
	}
	return s.commit(ctx, requestID, model.BorrowApproved, caller.ID)
}

func (s *service) commit(ctx context.Context, requestID int64, to model.BorrowStatus, decidedBy int64) error {
	ok, err := s.r.UpdateStatus(ctx, requestID, model.BorrowPending, to, decidedBy)
	if err != nil {
		return err
	}
	if !ok {
		// Decided out from under us between the read and the write.
		return makeErr(ErrInvalidTransition)
	}
	return nil
}

func (s *service) Get(ctx context.Context, caller model.Caller, requestID int64) (*model.BorrowRequest, error) {
	req, err := s.r.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, makeErr(ErrNotFound)
	}
	if req.UserID != caller.ID && !caller.IsLibrarian() {
		return nil, makeErr(ErrUnauthorized)
	}
	return req, nil
}

func (s *service) List(ctx context.Context, caller model.Caller, f Filter) ([]model.BorrowRequest, error) {
	if !caller.IsLibrarian() {
		f.UserID = caller.ID
	}
	return s.r.List(ctx, f)
}

func (s *service) MyHistory(ctx context.Context, userID int64) ([]model.BorrowRequest, error) {
	return s.r.ListByUser(ctx, userID)
}
