package cache

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/clear", authMiddleware, func(c *fiber.Ctx) error {
		cleared, err := svc.Clear(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"cleared": cleared})
	})
}
