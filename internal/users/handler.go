// Package users renders the read-only customer listing.
package users

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/flowerstore/admin-dashboard/internal/api"
	"github.com/flowerstore/admin-dashboard/internal/auth"
	"github.com/flowerstore/admin-dashboard/internal/paging"
	"github.com/flowerstore/admin-dashboard/internal/session"
	"github.com/flowerstore/admin-dashboard/internal/ui"
)

const pageSize = 8

// Backend is the slice of the REST client this view needs.
type Backend interface {
	ListUsers(ctx context.Context, token string, pageNo, pageSize int) (api.UserPage, error)
}

type Handler struct {
	backend Backend
	store   session.Store
	log     logrus.FieldLogger
}

func NewHandler(backend Backend, store session.Store, log logrus.FieldLogger) *Handler {
	return &Handler{backend: backend, store: store, log: log}
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Get("/users", h.list)
}

func (h *Handler) list(c *fiber.Ctx) error {
	sess := auth.FromCtx(c)
	pageNo, _ := strconv.Atoi(c.Query("page"))
	if pageNo < 0 {
		pageNo = 0
	}

	page, err := h.backend.ListUsers(c.UserContext(), sess.Token, pageNo, pageSize)
	if err != nil {
		if api.IsUnauthorized(err) {
			return auth.Expire(c, h.store)
		}
		h.log.WithField("error", err).Error("failed to fetch users")
		// degrade to an empty table; the banner tells failure apart from
		// zero rows
		return c.Render("users", fiber.Map{
			"Title":     "Users",
			"Active":    "users",
			"User":      sess.User,
			"Users":     []api.User{},
			"Cursor":    paging.NewCursor(0, pageSize, 1),
			"ListPath":  "/dashboard/users",
			"LoadError": true,
		})
	}

	return c.Render("users", fiber.Map{
		"Title":    "Users",
		"Active":   "users",
		"User":     sess.User,
		"Flash":    ui.PopFlash(c),
		"Users":    page.Users,
		"Cursor":   paging.NewCursor(pageNo, pageSize, page.TotalPages),
		"ListPath": "/dashboard/users",
	})
}
