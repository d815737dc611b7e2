package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is the authenticated identity attached to every core operation.
// Handlers build it once from the verified JWT and pass it down explicitly;
// business logic never digs into tokens itself.
type Session struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// FromContext extracts the session from the JWT the middleware verified.
func FromContext(c *fiber.Ctx) (Session, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return Session{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Session{}, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Session{}, err
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return Session{UserID: userID, Email: email, Role: role}, nil
}
