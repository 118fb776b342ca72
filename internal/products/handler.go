// Package products implements the catalog table and its add/edit modal,
// including the staged image upload/removal flow.
package products

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/flowerstore/admin-dashboard/internal/api"
	"github.com/flowerstore/admin-dashboard/internal/auth"
	"github.com/flowerstore/admin-dashboard/internal/paging"
	"github.com/flowerstore/admin-dashboard/internal/session"
	"github.com/flowerstore/admin-dashboard/internal/ui"
)

const (
	pageSize       = 6
	descriptionMax = 50
)

// Backend is the slice of the REST client this view needs. Categories are
// fetched too, to fill the modal's category select.
type Backend interface {
	ListProducts(ctx context.Context, pageNo, pageSize int) (api.ProductPage, error)
	GetProduct(ctx context.Context, productID int) (api.Product, error)
	CreateProduct(ctx context.Context, token string, form api.ProductForm) (api.Product, error)
	UpdateProduct(ctx context.Context, token string, productID int, form api.ProductForm) (api.Product, error)
	DeleteProduct(ctx context.Context, token string, productID int) error
	ListCategories(ctx context.Context) ([]api.Category, error)
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
	r.Get("/products", h.list)
	r.Post("/products", h.create)
	r.Post("/products/:id", h.update)
	r.Post("/products/:id/delete", h.delete)
}

// modalState describes the add/edit overlay. Editing carries the fetched
// product (and with it the existing image set) when an edit is open.
type modalState struct {
	Open    bool
	Editing *api.Product
	Form    formValues
	Error   string
}

type formValues struct {
	ProductName string
	Description string
	Stock       int
	Price       float64
	Discount    float64
	CategoryID  int
}

func formFromProduct(p *api.Product) formValues {
	if p == nil {
		return formValues{}
	}
	return formValues{
		ProductName: p.ProductName,
		Description: p.Description,
		Stock:       p.Stock,
		Price:       p.Price,
		Discount:    p.Discount,
		CategoryID:  p.CategoryID,
	}
}

func (h *Handler) list(c *fiber.Ctx) error {
	modal := modalState{}
	if c.Query("new") != "" {
		modal.Open = true
	}
	if idStr := c.Query("edit"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err == nil {
			// the edit modal works on the full entity, fetched by ID the way
			// the list's edit action did
			p, err := h.backend.GetProduct(c.UserContext(), id)
			if err != nil {
				h.log.WithFields(logrus.Fields{"productId": id, "error": err}).Error("failed to fetch product")
			} else {
				modal.Open = true
				modal.Editing = &p
				modal.Form = formFromProduct(&p)
			}
		}
	}
	return h.render(c, pageFromQuery(c), modal)
}

func pageFromQuery(c *fiber.Ctx) int {
	pageNo, _ := strconv.Atoi(c.Query("page"))
	if pageNo < 0 {
		pageNo = 0
	}
	return pageNo
}

func (h *Handler) render(c *fiber.Ctx, pageNo int, modal modalState) error {
	sess := auth.FromCtx(c)

	page, err := h.backend.ListProducts(c.UserContext(), pageNo, pageSize)
	loadError := false
	if err != nil {
		if api.IsUnauthorized(err) {
			return auth.Expire(c, h.store)
		}
		h.log.WithField("error", err).Error("failed to fetch products")
		page = api.ProductPage{Products: []api.Product{}, TotalPages: 1}
		loadError = true
	}

	var categories []api.Category
	if modal.Open {
		categories, err = h.backend.ListCategories(c.UserContext())
		if err != nil {
			h.log.WithField("error", err).Error("failed to fetch categories for product form")
			categories = []api.Category{}
		}
	}

	return c.Render("products", fiber.Map{
		"Title":      "Products",
		"Active":     "products",
		"User":       sess.User,
		"Flash":      ui.PopFlash(c),
		"Products":   page.Products,
		"Cursor":     paging.NewCursor(pageNo, pageSize, page.TotalPages),
		"Modal":      modal,
		"Categories": categories,
		"ListPath":   "/dashboard/products",
		"DescMax":    descriptionMax,
		"LoadError":  loadError,
	})
}

func (h *Handler) create(c *fiber.Ctx) error {
	sess := auth.FromCtx(c)
	pageNo := pageFromForm(c)

	form, err := h.parseForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if _, err := h.backend.CreateProduct(c.UserContext(), sess.Token, form); err != nil {
		if api.IsUnauthorized(err) {
			return auth.Expire(c, h.store)
		}
		h.log.WithField("error", err).Error("failed to create product")
		return h.render(c, pageNo, modalState{Open: true, Form: formFromRequest(form), Error: "Failed to save product"})
	}

	return h.redirectWithFlash(c, pageNo, "Product added successfully!")
}

func (h *Handler) update(c *fiber.Ctx) error {
	sess := auth.FromCtx(c)
	pageNo := pageFromForm(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	form, err := h.parseForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if _, err := h.backend.UpdateProduct(c.UserContext(), sess.Token, id, form); err != nil {
		if api.IsUnauthorized(err) {
			return auth.Expire(c, h.store)
		}
		h.log.WithFields(logrus.Fields{"productId": id, "error": err}).Error("failed to update product")
		modal := modalState{Open: true, Form: formFromRequest(form), Error: "Failed to save product"}
		if p, getErr := h.backend.GetProduct(c.UserContext(), id); getErr == nil {
			modal.Editing = &p
		} else {
			modal.Editing = &api.Product{ProductID: id}
		}
		return h.render(c, pageNo, modal)
	}

	return h.redirectWithFlash(c, pageNo, "Product updated successfully!")
}

func (h *Handler) delete(c *fiber.Ctx) error {
	sess := auth.FromCtx(c)
	pageNo := pageFromForm(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if err := h.backend.DeleteProduct(c.UserContext(), sess.Token, id); err != nil {
		if api.IsUnauthorized(err) {
			return auth.Expire(c, h.store)
		}
		h.log.WithFields(logrus.Fields{"productId": id, "error": err}).Error("failed to delete product")
	}
	// refetch the current page unconditionally; after deleting the last row
	// of the last page this can land on a page that no longer exists
	return c.Redirect(fmt.Sprintf("/dashboard/products?page=%d", pageNo), fiber.StatusFound)
}

func (h *Handler) redirectWithFlash(c *fiber.Ctx, pageNo int, message string) error {
	ui.SetFlash(c, message)
	return c.Redirect(fmt.Sprintf("/dashboard/products?page=%d", pageNo), fiber.StatusFound)
}

func pageFromForm(c *fiber.Ctx) int {
	pageNo, _ := strconv.Atoi(c.FormValue("page"))
	if pageNo < 0 {
		pageNo = 0
	}
	return pageNo
}

func formFromRequest(form api.ProductForm) formValues {
	return formValues{
		ProductName: form.ProductName,
		Description: form.Description,
		Stock:       form.Stock,
		Price:       form.Price,
		Discount:    form.Discount,
		CategoryID:  form.CategoryID,
	}
}
