package handler

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var errInvalidToken = errors.New("invalid token claims")

// currentUserID extracts the authenticated caller's user ID from the JWT
// placed in the context by the auth middleware. The middleware runs before
// every secured handler, so a missing or malformed token here means the
// route was wired outside the secured group.
func currentUserID(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, errInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errInvalidToken
	}
	return uint(userID), nil
}
