// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"bookborrow/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func claimsFromContext(c echo.Context) (jwt.MapClaims, error) {
	switch tok := c.Get("user").(type) {
	case *jwt.Token:
		if claims, ok := tok.Claims.(jwt.MapClaims); ok {
			return claims, nil
		}
	case jwt.MapClaims:
		return tok, nil
	}
	return nil, errors.New("no jwt claims in context")
}

// CallerFromContext builds the authenticated caller from the verified
// token. Handlers pass it explicitly into services; no handler reads
// claims on its own.
func CallerFromContext(c echo.Context) (model.Caller, error) {
	claims, err := claimsFromContext(c)
	if err != nil {
		return model.Caller{}, err
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return model.Caller{}, errors.New("sub missing in claims")
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = model.RoleUser
	}
	return model.Caller{ID: int64(sub), Role: role}, nil
}
