package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRequireJWT(t *testing.T) {
	app := fiber.New()
	app.Get("/private", RequireJWT("secret"), func(c *fiber.Ctx) error {
		if c.Locals("user_id") != "user-1" || c.Locals("username") != "leo" {
			return fiber.NewError(fiber.StatusUnauthorized)
		}
		return c.SendStatus(http.StatusOK)
	})

	svc := NewService("secret", nil)

	// missing token
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized")
	}

	// malformed header
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for malformed header")
	}

	// valid token
	token, _ := svc.signToken("user-1", "leo", accessTokenTTL)
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok")
	}

	// wrong signature
	otherToken, _ := NewService("other", nil).signToken("user-1", "leo", accessTokenTTL)
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for wrong signature")
	}
}

func TestOptionalJWT(t *testing.T) {
	app := fiber.New()
	app.Get("/listing", OptionalJWT("secret"), func(c *fiber.Ctx) error {
		if id, ok := c.Locals("user_id").(string); ok {
			return c.JSON(fiber.Map{"viewer": id})
		}
		return c.JSON(fiber.Map{"viewer": nil})
	})

	// anonymous request passes through
	req := httptest.NewRequest(http.MethodGet, "/listing", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok for anonymous request")
	}

	// bad token also passes through without locals
	req = httptest.NewRequest(http.MethodGet, "/listing", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok for bad token")
	}

	// valid token populates locals
	token, _ := NewService("secret", nil).signToken("user-1", "leo", accessTokenTTL)
	req = httptest.NewRequest(http.MethodGet, "/listing", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok for valid token")
	}
}

func TestBearerFromHeader(t *testing.T) {
	if bearerFromHeader("Bearer abc") != "abc" {
		t.Fatalf("expected token")
	}
	if bearerFromHeader("bearer abc") != "abc" {
		t.Fatalf("expected case-insensitive scheme")
	}
	if bearerFromHeader("") != "" || bearerFromHeader("abc") != "" {
		t.Fatalf("expected empty token")
	}
}
