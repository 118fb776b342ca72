package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flowerstore/admin-dashboard/internal/session"
)

// CookieName is the browser cookie carrying the opaque session ID. The
// bearer token itself never leaves the server-side store.
const CookieName = "admin_sid"

const (
	localsSession = "session"
	localsSID     = "sid"
)

// RequireSession guards the dashboard subtree: requests without an
// authenticated session are redirected to /login and never reach the
// wrapped handlers. Pure read, re-evaluated on every request.
func RequireSession(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(CookieName)
		if sid == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}
		sess, err := store.Get(c.UserContext(), sid)
		if err != nil || !sess.Authenticated() {
			return c.Redirect("/login", fiber.StatusFound)
		}
		c.Locals(localsSession, sess)
		c.Locals(localsSID, sid)
		return c.Next()
	}
}

// FromCtx returns the session RequireSession stashed for this request.
func FromCtx(c *fiber.Ctx) session.Session {
	if sess, ok := c.Locals(localsSession).(session.Session); ok {
		return sess
	}
	return session.Session{}
}

// SIDFromCtx returns the request's session ID.
func SIDFromCtx(c *fiber.Ctx) string {
	if sid, ok := c.Locals(localsSID).(string); ok {
		return sid
	}
	return ""
}

// Expire clears the request's session token and bounces to the login page.
// Handlers call it when the backend rejects the token with a 401 so the user
// is never left on a broken authenticated view.
func Expire(c *fiber.Ctx, store session.Store) error {
	if sid := SIDFromCtx(c); sid != "" {
		_ = store.Clear(c.UserContext(), sid)
	}
	return c.Redirect("/login", fiber.StatusFound)
}
