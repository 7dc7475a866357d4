package borrow

import (
	"log/slog"
	"net/http"
	"strconv"

	"bookborrow/model"
	bs "bookborrow/service/borrow"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

func callerOf(c echo.Context) model.Caller {
	caller, _ := c.Get("caller").(model.Caller)
	return caller
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch bs.Code(err) {
	case bs.ErrInvalidRange:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date range"})
	case bs.ErrInvalidOutcome:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid outcome"})
	case bs.ErrUnauthorized:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case bs.ErrBookNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
	case bs.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "request not found"})
	case bs.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": "dates conflict with an approved borrow"})
	case bs.ErrInvalidTransition:
		return c.JSON(http.StatusConflict, echo.Map{"message": "request already decided"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// Submit a borrow request
// @Summary      Submit borrow request
// @Description  Request a book for [start_date, end_date); rejected when the dates overlap an approved borrow
// @Tags         borrows
// @Accept       json
// @Produce      json
// @Param        payload  body  SubmitBorrowReq  true  "Borrow payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "invalid date range"
// @Failure      404  {object}  map[string]any "book not found"
// @Failure      409  {object}  map[string]any "dates conflict"
// @Router       /v1/borrows [post]
func (h *Controller) Submit(c echo.Context) error {
	var req SubmitBorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	caller := callerOf(c)
	out, err := h.Svc.Submit(c.Request().Context(), caller.ID, req.BookID, req.StartDate, req.EndDate)
	if err != nil {
		return h.fail(c, "borrow submit", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"request_id": out.ID,
		"status":     out.Status,
		"start_date": out.StartDate.Format(model.DateLayout),
		"end_date":   out.EndDate.Format(model.DateLayout),
	})
}

// Decide a borrow request
// @Summary      Approve or deny a borrow request
// @Description  Librarian-only; approval re-checks date conflicts at decision time
// @Tags         borrows
// @Accept       json
// @Produce      json
// @Param        id       path  int              true  "Request ID"
// @Param        payload  body  DecideBorrowReq  true  "Decision payload"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any "not a librarian"
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any "conflict or already decided"
// @Router       /v1/borrows/{id}/decision [post]
func (h *Controller) Decide(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req DecideBorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	if err := h.Svc.Decide(c.Request().Context(), callerOf(c), id, model.BorrowStatus(req.Outcome)); err != nil {
		return h.fail(c, "borrow decide", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "decided", "status": req.Outcome})
}

// GET /v1/borrows/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	req, err := h.Svc.Get(c.Request().Context(), callerOf(c), id)
	if err != nil {
		return h.fail(c, "borrow get", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": req})
}

// GET /v1/borrows?book_id=&user_id=&status=
func (h *Controller) List(c echo.Context) error {
	var f bs.Filter
	if v := c.QueryParam("book_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid book_id"})
		}
		f.BookID = id
	}
	if v := c.QueryParam("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user_id"})
		}
		f.UserID = id
	}
	if v := c.QueryParam("status"); v != "" {
		switch s := model.BorrowStatus(v); s {
		case model.BorrowPending, model.BorrowApproved, model.BorrowDenied:
			f.Status = s
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status"})
		}
	}

	rows, err := h.Svc.List(c.Request().Context(), callerOf(c), f)
	if err != nil {
		return h.fail(c, "borrow list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/borrows/my
func (h *Controller) MyHistory(c echo.Context) error {
	rows, err := h.Svc.MyHistory(c.Request().Context(), callerOf(c).ID)
	if err != nil {
		return h.fail(c, "borrow history", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
