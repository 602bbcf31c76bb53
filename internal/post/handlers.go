package post

import (
	"context"
	"errors"

	"backend-quillhub/internal/shared/forms"
	"backend-quillhub/internal/shared/paginate"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// FollowChecker reports whether a viewer follows an author. Implemented by
// follow.Service; profiles use it to tag their payload.
type FollowChecker interface {
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
}

func RegisterRoutes(r fiber.Router, svc *Service, follows FollowChecker, pageCache, requireAuth, optionalAuth fiber.Handler) {
	r.Get("/posts", pageCache, func(c *fiber.Ctx) error {
		page := paginate.ParsePage(c.Query("page"))
		listing, err := svc.ListAll(c.Context(), page)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(listing)
	})

	r.Post("/posts", requireAuth, func(c *fiber.Ctx) error {
		var input PostInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if fields := forms.Check(input); fields != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": fields})
		}

		authorID, _ := c.Locals("user_id").(string)
		if _, err := svc.Create(c.Context(), authorID, input); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fiber.NewError(fiber.StatusNotFound, "group not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		username, _ := c.Locals("username").(string)
		return c.Redirect("/profiles/"+username, fiber.StatusSeeOther)
	})

	r.Get("/posts/:id", func(c *fiber.Ctx) error {
		detail, err := svc.Detail(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fiber.NewError(fiber.StatusNotFound, "post not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(detail)
	})

	r.Put("/posts/:id", requireAuth, func(c *fiber.Ctx) error {
		id := c.Params("id")

		var input PostInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if fields := forms.Check(input); fields != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": fields})
		}

		requesterID, _ := c.Locals("user_id").(string)
		if err := svc.Update(c.Context(), id, requesterID, input); err != nil {
			switch {
			case errors.Is(err, ErrNotAuthor):
				// not an error page: non-authors land back on the detail view
				return c.Redirect("/posts/"+id, fiber.StatusSeeOther)
			case errors.Is(err, pgx.ErrNoRows):
				return fiber.NewError(fiber.StatusNotFound, "post not found")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.Redirect("/posts/"+id, fiber.StatusSeeOther)
	})

	r.Delete("/posts/:id", requireAuth, func(c *fiber.Ctx) error {
		id := c.Params("id")
		requesterID, _ := c.Locals("user_id").(string)

		if err := svc.Delete(c.Context(), id, requesterID); err != nil {
			switch {
			case errors.Is(err, ErrNotAuthor):
				return c.Redirect("/posts/"+id, fiber.StatusSeeOther)
			case errors.Is(err, pgx.ErrNoRows):
				return fiber.NewError(fiber.StatusNotFound, "post not found")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.JSON(fiber.Map{"deleted": id})
	})

	r.Post("/posts/:id/comments", requireAuth, func(c *fiber.Ctx) error {
		id := c.Params("id")

		var input CommentInput
		if err := c.BodyParser(&input); err == nil && forms.Check(input) == nil {
			authorID, _ := c.Locals("user_id").(string)
			if _, err := svc.AddComment(c.Context(), id, authorID, input); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fiber.NewError(fiber.StatusNotFound, "post not found")
				}
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		// invalid input is dropped without surfacing errors
		return c.Redirect("/posts/"+id, fiber.StatusSeeOther)
	})

	r.Get("/groups/:slug/posts", func(c *fiber.Ctx) error {
		page := paginate.ParsePage(c.Query("page"))
		listing, err := svc.ListByGroup(c.Context(), c.Params("slug"), page)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fiber.NewError(fiber.StatusNotFound, "group not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(listing)
	})

	r.Get("/profiles/:username", optionalAuth, func(c *fiber.Ctx) error {
		page := paginate.ParsePage(c.Query("page"))
		profile, err := svc.Profile(c.Context(), c.Params("username"), page)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fiber.NewError(fiber.StatusNotFound, "user not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if viewerID, ok := c.Locals("user_id").(string); ok && viewerID != "" && follows != nil {
			following, err := follows.IsFollowing(c.Context(), viewerID, profile.Author.ID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			profile.Following = &following
		}
		return c.JSON(profile)
	})
}
