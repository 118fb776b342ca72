// Package dashboard renders the overview page behind the shell's first tab.
package dashboard

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/flowerstore/admin-dashboard/internal/api"
	"github.com/flowerstore/admin-dashboard/internal/auth"
	"github.com/flowerstore/admin-dashboard/internal/session"
	"github.com/flowerstore/admin-dashboard/internal/ui"
)

// Backend is the slice of the REST client this view needs.
type Backend interface {
	DashboardStats(ctx context.Context, token string) (api.Stats, error)
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
	r.Get("/", h.overview)
}

func (h *Handler) overview(c *fiber.Ctx) error {
	sess := auth.FromCtx(c)

	stats, err := h.backend.DashboardStats(c.UserContext(), sess.Token)
	if err != nil {
		if api.IsUnauthorized(err) {
			return auth.Expire(c, h.store)
		}
		// the cards degrade to zeros, same as the lists degrade to empty
		h.log.WithField("error", err).Error("failed to fetch dashboard stats")
		stats = api.Stats{}
	}

	return c.Render("overview", fiber.Map{
		"Title":  "Dashboard",
		"Active": "dashboard",
		"User":   sess.User,
		"Flash":  ui.PopFlash(c),
		"Stats":  stats,
	})
}
