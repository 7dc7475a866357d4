package echoServer

import (
	"net/http"

	"bookborrow/app/echoServer/controller/auth"
	"bookborrow/app/echoServer/controller/book"
	"bookborrow/app/echoServer/controller/borrow"
	"bookborrow/app/echoServer/jwtx"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Borrow    *borrow.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	authed.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			caller, err := jwtx.CallerFromContext(ctx)
			if err != nil {
				rid := ctx.Response().Header().Get(echo.HeaderXRequestID)
				ctx.Logger().Warnf("[AUTH] bad claims req_id=%s ip=%s err=%v", rid, ctx.RealIP(), err)
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("caller", caller)
			return next(ctx)
		}
	})

	// Books
	authed.GET("/books", c.Book.List)
	authed.GET("/books/:id", c.Book.Detail)
	// Librarian endpoint; the service enforces the role itself.
	authed.POST("/books", c.Book.Create)

	// Borrow requests
	authed.POST("/borrows", c.Borrow.Submit)
	authed.POST("/borrows/:id/decision", c.Borrow.Decide)
	authed.GET("/borrows", c.Borrow.List)
	authed.GET("/borrows/my", c.Borrow.MyHistory)
	authed.GET("/borrows/:id", c.Borrow.Get)
}
