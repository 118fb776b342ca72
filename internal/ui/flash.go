package ui

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "admin_flash"

// SetFlash stages a one-shot success notice for the next rendered page.
// The layout auto-dismisses it after a fixed three seconds.
func SetFlash(c *fiber.Ctx, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   60,
	})
}

// PopFlash consumes the staged notice, expiring its cookie.
func PopFlash(c *fiber.Ctx) string {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Unix(0, 0),
	})
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}
