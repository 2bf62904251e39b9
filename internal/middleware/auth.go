package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jozemario/todos-backend/internal/auth"
	"github.com/jozemario/todos-backend/internal/config"
	"github.com/jozemario/todos-backend/internal/dto"
)

func Protected(cfg *config.Config) fiber.Handler {
	audiences := cfg.JWTAudiences
	if len(audiences) == 0 {
		audiences = auth.DefaultAudiences
	}
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		// The signature check alone does not look at the audience claim;
		// a token signed for another consumer of the same secret must
		// still be rejected.
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return unauthorized(c)
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c)
			}
			aud, err := claims.GetAudience()
			if err != nil || !auth.AudienceAllowed(aud, audiences) {
				return unauthorized(c)
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}

// CurrentUser extracts the authenticated identity from JWT claims in
// context.
func CurrentUser(c *fiber.Ctx) (*auth.Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("missing user_id claim")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, err
	}

	email, _ := claims["email"].(string)
	isSuperuser, _ := claims["is_superuser"].(bool)

	return &auth.Identity{
		UserID:      userID,
		Email:       email,
		IsSuperuser: isSuperuser,
	}, nil
}
