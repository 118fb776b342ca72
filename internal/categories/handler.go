// Package categories implements the category table and its add/edit modal.
package categories

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/flowerstore/admin-dashboard/internal/api"
	"github.com/flowerstore/admin-dashboard/internal/auth"
	"github.com/flowerstore/admin-dashboard/internal/session"
	"github.com/flowerstore/admin-dashboard/internal/ui"
)

// Backend is the slice of the REST client this view needs.
type Backend interface {
	ListCategories(ctx context.Context) ([]api.Category, error)
	CreateCategory(ctx context.Context, token, name string) (api.Category, error)
	UpdateCategory(ctx context.Context, token string, categoryID int, name string) (api.Category, error)
	DeleteCategory(ctx context.Context, token string, categoryID int) error
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
	r.Get("/categories", h.list)
	r.Post("/categories", h.create)
	r.Post("/categories/:id", h.update)
	r.Post("/categories/:id/delete", h.delete)
}

// modalState describes whether the add/edit overlay is open and with what.
type modalState struct {
	Open    bool
	Editing *api.Category
	Name    string
	Error   string
}

func (h *Handler) list(c *fiber.Ctx) error {
	modal := modalState{}
	if c.Query("new") != "" {
		modal.Open = true
	}
	if idStr := c.Query("edit"); idStr != "" {
		if id, err := strconv.Atoi(idStr); err == nil {
			modal.Open = true
			modal.Editing = &api.Category{CategoryID: id}
		}
	}
	return h.render(c, modal)
}

// render fetches the collection and draws the page, resolving the edit
// target from the fetched rows.
func (h *Handler) render(c *fiber.Ctx, modal modalState) error {
	sess := auth.FromCtx(c)

	categories, err := h.backend.ListCategories(c.UserContext())
	loadError := false
	if err != nil {
		if api.IsUnauthorized(err) {
			return auth.Expire(c, h.store)
		}
		h.log.WithField("error", err).Error("failed to fetch categories")
		categories = []api.Category{}
		loadError = true
	}

	if modal.Editing != nil {
		found := false
		for i := range categories {
			if categories[i].CategoryID == modal.Editing.CategoryID {
				if modal.Name == "" {
					modal.Name = categories[i].CategoryName
				}
				modal.Editing = &categories[i]
				found = true
				break
			}
		}
		if !found && modal.Error == "" {
			modal.Open = false
			modal.Editing = nil
		}
	}

	return c.Render("categories", fiber.Map{
		"Title":      "Categories",
		"Active":     "categories",
		"User":       sess.User,
		"Flash":      ui.PopFlash(c),
		"Categories": categories,
		"Modal":      modal,
		"LoadError":  loadError,
	})
}

func (h *Handler) create(c *fiber.Ctx) error {
	sess := auth.FromCtx(c)
	name := c.FormValue("categoryName")

	if _, err := h.backend.CreateCategory(c.UserContext(), sess.Token, name); err != nil {
		if api.IsUnauthorized(err) {
			return auth.Expire(c, h.store)
		}
		h.log.WithField("error", err).Error("failed to create category")
		// keep the modal open for a retry
		return h.render(c, modalState{Open: true, Name: name, Error: "Failed to save category"})
	}
	return c.Redirect("/dashboard/categories", fiber.StatusFound)
}

func (h *Handler) update(c *fiber.Ctx) error {
	sess := auth.FromCtx(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	name := c.FormValue("categoryName")

	if _, err := h.backend.UpdateCategory(c.UserContext(), sess.Token, id, name); err != nil {
		if api.IsUnauthorized(err) {
			return auth.Expire(c, h.store)
		}
		h.log.WithFields(logrus.Fields{"categoryId": id, "error": err}).Error("failed to update category")
		return h.render(c, modalState{Open: true, Editing: &api.Category{CategoryID: id}, Name: name, Error: "Failed to save category"})
	}
	return c.Redirect("/dashboard/categories", fiber.StatusFound)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	sess := auth.FromCtx(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if err := h.backend.DeleteCategory(c.UserContext(), sess.Token, id); err != nil {
		if api.IsUnauthorized(err) {
			return auth.Expire(c, h.store)
		}
		// the list refetch below shows the row still present
		h.log.WithFields(logrus.Fields{"categoryId": id, "error": err}).Error("failed to delete category")
	}
	return c.Redirect("/dashboard/categories", fiber.StatusFound)
}
