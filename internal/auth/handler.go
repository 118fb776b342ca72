// Package auth owns the login/logout flow and the session guard in front of
// the dashboard routes.
package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flowerstore/admin-dashboard/internal/api"
	"github.com/flowerstore/admin-dashboard/internal/session"
)

// two days, the lifetime the storefront issues tokens for
const cookieMaxAge = 60 * 60 * 48

// Backend is the slice of the REST client the auth flow needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

type Handler struct {
	backend Backend
	store   session.Store
	log     logrus.FieldLogger
}

func NewHandler(backend Backend, store session.Store, log logrus.FieldLogger) *Handler {
	return &Handler{backend: backend, store: store, log: log}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/login", h.loginPage)
	app.Post("/login", h.loginSubmit)
	app.Post("/logout", h.logout)
}

func (h *Handler) loginPage(c *fiber.Ctx) error {
	if sid := c.Cookies(CookieName); sid != "" {
		if sess, err := h.store.Get(c.UserContext(), sid); err == nil && sess.Authenticated() {
			return c.Redirect("/dashboard", fiber.StatusFound)
		}
	}
	return c.Render("login", fiber.Map{})
}

func (h *Handler) loginSubmit(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	result, err := h.backend.Login(c.UserContext(), email, password)
	if err != nil {
		h.log.WithFields(logrus.Fields{"email": email, "error": err}).Warn("login failed")
		return c.Render("login", fiber.Map{
			"Error": "Invalid email or password",
			"Email": email,
		})
	}

	// reuse the browser's session ID when it already has one, so a re-login
	// overwrites the same persisted entry
	sid := c.Cookies(CookieName)
	if sid == "" {
		sid = uuid.NewString()
	}
	if err := h.store.Set(c.UserContext(), sid, session.Session{Token: result.Token, User: result.User}); err != nil {
		h.log.WithField("error", err).Error("failed to persist session")
		return c.Render("login", fiber.Map{
			"Error": "Something went wrong, please try again",
			"Email": email,
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   cookieMaxAge,
	})
	h.log.WithField("email", email).Info("user logged in")
	return c.Redirect("/dashboard", fiber.StatusFound)
}

func (h *Handler) logout(c *fiber.Ctx) error {
	sid := c.Cookies(CookieName)
	if sid != "" {
		if sess, err := h.store.Get(c.UserContext(), sid); err == nil && sess.Authenticated() {
			// best effort: the local session is cleared even when the backend
			// call fails
			if err := h.backend.Logout(c.UserContext(), sess.Token); err != nil {
				h.log.WithField("error", err).Warn("backend logout failed")
			}
		}
		if err := h.store.Clear(c.UserContext(), sid); err != nil {
			h.log.WithField("error", err).Error("failed to clear session")
		}
	}
	return c.Redirect("/login", fiber.StatusFound)
}
