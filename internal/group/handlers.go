package group

import (
	"backend-quillhub/internal/db"
	"backend-quillhub/internal/shared/forms"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		groups, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"groups": groups})
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var input GroupInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if fields := forms.Check(input); fields != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": fields})
		}

		g, err := svc.Create(c.Context(), input)
		if db.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "slug already taken")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(g)
	})

	r.Get("/:slug", func(c *fiber.Ctx) error {
		g, err := svc.BySlug(c.Context(), c.Params("slug"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "group not found")
		}
		return c.JSON(g)
	})
}
