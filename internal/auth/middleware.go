package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var parseMiddlewareClaimsFn = jwt.ParseWithClaims

// RequireJWT validates bearer tokens and stores user_id and username in
// locals. Requests without a valid token are rejected.
func RequireJWT(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		claims, err := claimsFromRequest(c, secretBytes)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}

// OptionalJWT populates locals when a valid bearer token is present and lets
// the request through either way. Listing and profile views use it to tailor
// their payload for an authenticated viewer.
func OptionalJWT(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		if claims, err := claimsFromRequest(c, secretBytes); err == nil {
			c.Locals("user_id", claims.UserID)
			c.Locals("username", claims.Username)
		}
		return c.Next()
	}
}

func claimsFromRequest(c *fiber.Ctx, secret []byte) (*Claims, error) {
	token := bearerFromHeader(c.Get("Authorization"))
	if token == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	parsed, err := parseMiddlewareClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "token invalid")
	}
	return claims, nil
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
