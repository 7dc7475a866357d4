// model/borrow.go
package model

import "time"

type BorrowStatus string

const (
	BorrowPending  BorrowStatus = "PENDING"
	BorrowApproved BorrowStatus = "APPROVED"
	BorrowDenied   BorrowStatus = "DENIED"
)

// Terminal reports whether no further transition is permitted.
func (s BorrowStatus) Terminal() bool {
	return s == BorrowApproved || s == BorrowDenied
}

type BorrowRequest struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	BookID    int64        `json:"book_id"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	Status    BorrowStatus `json:"status"`
	DecidedBy *int64       `json:"decided_by,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	DecidedAt *time.Time   `json:"decided_at,omitempty"`
}

// Interval returns the requested date range as a half-open interval.
// Rows come from the store already validated, so no re-check here.
func (r *BorrowRequest) Interval() Interval {
	return Interval{Start: r.StartDate, End: r.EndDate}
}
