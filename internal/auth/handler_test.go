package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/flowerstore/admin-dashboard/internal/api"
	"github.com/flowerstore/admin-dashboard/internal/session"
	"github.com/flowerstore/admin-dashboard/internal/ui"
)

func sessionCookie(sid string) *http.Cookie {
	return &http.Cookie{Name: CookieName, Value: sid}
}

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeBackend implements Backend against a fixed credential pair and counts
// logout calls.
type fakeBackend struct {
	token   string
	logouts int
}

func (f *fakeBackend) Login(_ context.Context, email, password string) (api.LoginResult, error) {
	if email != "admin@example.com" || password != "secret" {
		return api.LoginResult{}, &api.Error{StatusCode: fiber.StatusUnauthorized, Body: "bad credentials"}
	}
	return api.LoginResult{Token: f.token, User: &api.User{UserID: 1, FirstName: "Ada"}}, nil
}

func (f *fakeBackend) Logout(_ context.Context, token string) error {
	f.logouts++
	if token != f.token {
		return errors.New("unknown token")
	}
	return nil
}

func makeAuthApp(t *testing.T, backend Backend, store session.Store) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{Views: ui.NewEngine()})
	NewHandler(backend, store, testLogger()).RegisterRoutes(app)
	return app
}

func postForm(path, body string) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginSuccessPersistsSessionAndRedirects(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	backend := &fakeBackend{token: "tok-abc"}
	app := makeAuthApp(t, backend, store)

	res, err := app.Test(postForm("/login", "email=admin%40example.com&password=secret"))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302 after login, got %d", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}

	var sid string
	for _, c := range res.Cookies() {
		if c.Name == CookieName {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatalf("expected a session cookie to be set")
	}

	sess, err := store.Get(context.Background(), sid)
	if err != nil {
		t.Fatalf("session was not persisted: %v", err)
	}
	if sess.Token != "tok-abc" {
		t.Fatalf("expected persisted token, got %q", sess.Token)
	}
	if sess.User == nil || sess.User.FirstName != "Ada" {
		t.Fatalf("expected persisted user, got %+v", sess.User)
	}
}

func TestLoginFailureRerendersForm(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	app := makeAuthApp(t, &fakeBackend{token: "tok"}, store)

	res, err := app.Test(postForm("/login", "email=admin%40example.com&password=wrong"))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected the form to re-render with 200, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "Invalid email or password") {
		t.Fatalf("expected the inline error in the body")
	}
	if !strings.Contains(string(body), "admin@example.com") {
		t.Fatalf("expected the submitted email to be kept in the form")
	}
}

func TestLoginPageRedirectsAuthenticatedUsers(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.Set(context.Background(), "sid-1", session.Session{Token: "tok"}); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	app := makeAuthApp(t, &fakeBackend{token: "tok"}, store)

	req := httptest.NewRequest("GET", "/login", nil)
	req.AddCookie(sessionCookie("sid-1"))
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusFound {
		t.Fatalf("expected authed /login to redirect, got %d", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
}

func TestLoginThenBrowseThenLogout(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	backend := &fakeBackend{token: "tok-abc"}
	app := makeAuthApp(t, backend, store)
	dash := app.Group("/dashboard", RequireSession(store))
	dash.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	res, err := app.Test(postForm("/login", "email=admin%40example.com&password=secret"))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	var sid string
	for _, c := range res.Cookies() {
		if c.Name == CookieName {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatalf("expected a session cookie after login")
	}

	// authenticated request passes the guard
	req := httptest.NewRequest("GET", "/dashboard/", nil)
	req.AddCookie(sessionCookie(sid))
	res2, err := app.Test(req)
	if err != nil {
		t.Fatalf("dashboard request failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 behind the guard after login, got %d", res2.StatusCode)
	}

	// logout, then the same cookie no longer passes
	req3 := postForm("/logout", "")
	req3.AddCookie(sessionCookie(sid))
	if _, err := app.Test(req3); err != nil {
		t.Fatalf("logout request failed: %v", err)
	}
	req4 := httptest.NewRequest("GET", "/dashboard/", nil)
	req4.AddCookie(sessionCookie(sid))
	res4, err := app.Test(req4)
	if err != nil {
		t.Fatalf("dashboard request failed: %v", err)
	}
	if res4.StatusCode != fiber.StatusFound {
		t.Fatalf("expected a redirect after logout, got %d", res4.StatusCode)
	}
	if loc := res4.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestLogoutClearsSessionAndCallsBackend(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.Set(context.Background(), "sid-1", session.Session{Token: "tok-abc"}); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	backend := &fakeBackend{token: "tok-abc"}
	app := makeAuthApp(t, backend, store)

	req := postForm("/logout", "")
	req.AddCookie(sessionCookie("sid-1"))
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("logout request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302 after logout, got %d", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if backend.logouts != 1 {
		t.Fatalf("expected one backend logout call, got %d", backend.logouts)
	}

	sess, err := store.Get(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("cleared entry should still exist: %v", err)
	}
	if sess.Authenticated() {
		t.Fatalf("session must not stay authenticated after logout")
	}
}
