package follow

import (
	"errors"

	"backend-quillhub/internal/db"
	"backend-quillhub/internal/shared/paginate"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/profiles/:username/follow", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		err := svc.Follow(c.Context(), userID, c.Params("username"))
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		case errors.Is(err, ErrSelfFollow):
			username, _ := c.Locals("username").(string)
			return c.Redirect("/profiles/"+username, fiber.StatusSeeOther)
		case db.IsUniqueViolation(err):
			return fiber.NewError(fiber.StatusConflict, "already following")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Redirect("/posts", fiber.StatusSeeOther)
	})

	r.Delete("/profiles/:username/follow", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		if err := svc.Unfollow(c.Context(), userID, c.Params("username")); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fiber.NewError(fiber.StatusNotFound, "user not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Redirect("/posts", fiber.StatusSeeOther)
	})

	r.Get("/feed", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		page := paginate.ParsePage(c.Query("page"))

		feed, err := svc.Feed(c.Context(), userID, page)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(feed)
	})
}
