package borrow

type SubmitBorrowReq struct {
	BookID    int64  `json:"book_id" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type DecideBorrowReq struct {
	Outcome string `json:"outcome" validate:"required,oneof=APPROVED DENIED"`
}
