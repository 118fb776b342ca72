// Package orders implements the order listing, the read-only details view
// and the status update sub-flow.
package orders

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

const pageSize = 7

// Backend is the slice of the REST client this view needs.
type Backend interface {
	ListOrders(ctx context.Context, token string, pageNo, pageSize int) (api.OrderPage, error)
	UpdateOrderStatus(ctx context.Context, token string, userID, orderID int, status string) error
	UpdatePaymentStatus(ctx context.Context, token string, userID, orderID int, status string) error
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
	r.Get("/orders", h.list)
	r.Post("/orders/:userID/:orderID/status", h.updateStatus)
}

// statusModal is the open status form: the target order plus an optional
// inline error from a failed submit.
type statusModal struct {
	Order *api.Order
	Error string
}

func (h *Handler) list(c *fiber.Ctx) error {
	pageNo, _ := strconv.Atoi(c.Query("page"))
	if pageNo < 0 {
		pageNo = 0
	}

	statusID, _ := strconv.Atoi(c.Query("status"))
	detailsID, _ := strconv.Atoi(c.Query("details"))
	return h.render(c, pageNo, statusID, detailsID, "")
}

func (h *Handler) render(c *fiber.Ctx, pageNo, statusID, detailsID int, statusError string) error {
	sess := auth.FromCtx(c)

	page, err := h.backend.ListOrders(c.UserContext(), sess.Token, pageNo, pageSize)
	loadError := false
	if err != nil {
		if api.IsUnauthorized(err) {
			return auth.Expire(c, h.store)
		}
		h.log.WithField("error", err).Error("failed to fetch orders")
		page = api.OrderPage{Orders: []api.Order{}, TotalPages: 1}
		loadError = true
	}

	// the modals work on rows from the current page only
	var modal *statusModal
	var details *api.Order
	for i := range page.Orders {
		if statusID != 0 && page.Orders[i].OrderID == statusID {
			modal = &statusModal{Order: &page.Orders[i], Error: statusError}
		}
		if detailsID != 0 && page.Orders[i].OrderID == detailsID {
			details = &page.Orders[i]
		}
	}

	return c.Render("orders", fiber.Map{
		"Title":           "Orders",
		"Active":          "orders",
		"User":            sess.User,
		"Flash":           ui.PopFlash(c),
		"Orders":          page.Orders,
		"Cursor":          paging.NewCursor(pageNo, pageSize, page.TotalPages),
		"StatusModal":     modal,
		"Details":         details,
		"ListPath":        "/dashboard/orders",
		"OrderStatuses":   OrderStatuses,
		"PaymentStatuses": PaymentStatuses,
		"LoadError":       loadError,
	})
}

// updateStatus issues at most two backend writes: the order status first,
// then the payment status, each only when its select differs from the value
// the modal opened with. A failure after the first write succeeded is not
// rolled back; the user sees a generic error and can retry.
func (h *Handler) updateStatus(c *fiber.Ctx) error {
	sess := auth.FromCtx(c)

	userID, err := strconv.Atoi(c.Params("userID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	orderID, err := strconv.Atoi(c.Params("orderID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	pageNo, _ := strconv.Atoi(c.FormValue("page"))
	if pageNo < 0 {
		pageNo = 0
	}

	orderStatus := OrderStatus(c.FormValue("orderStatus"))
	paymentStatus := PaymentStatus(c.FormValue("paymentStatus"))
	origOrder := OrderStatus(c.FormValue("origOrderStatus"))
	origPayment := PaymentStatus(c.FormValue("origPaymentStatus"))

	if !orderStatus.Valid() || !paymentStatus.Valid() {
		return c.Status(fiber.StatusBadRequest).SendString("invalid status value")
	}

	if orderStatus != origOrder {
		if err := h.backend.UpdateOrderStatus(c.UserContext(), sess.Token, userID, orderID, string(orderStatus)); err != nil {
			if api.IsUnauthorized(err) {
				return auth.Expire(c, h.store)
			}
			h.log.WithFields(logrus.Fields{"orderId": orderID, "error": err}).Error("failed to update order status")
			return h.render(c, pageNo, orderID, 0, "Failed to update status")
		}
	}
	if paymentStatus != origPayment {
		if err := h.backend.UpdatePaymentStatus(c.UserContext(), sess.Token, userID, orderID, string(paymentStatus)); err != nil {
			if api.IsUnauthorized(err) {
				return auth.Expire(c, h.store)
			}
			h.log.WithFields(logrus.Fields{"orderId": orderID, "error": err}).Error("failed to update payment status")
			return h.render(c, pageNo, orderID, 0, "Failed to update status")
		}
	}

	ui.SetFlash(c, "Order status updated!")
	return c.Redirect(fmt.Sprintf("/dashboard/orders?page=%d", pageNo), fiber.StatusFound)
}
