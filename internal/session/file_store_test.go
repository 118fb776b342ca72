package session

import (
	"context"
	"testing"

	"github.com/flowerstore/admin-dashboard/internal/api"
)

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	sess := Session{Token: "tok-123", User: &api.User{UserID: 1, FirstName: "Ada"}}
	if err := fs.Set(ctx, "sid-1", sess); err != nil {
		t.Fatalf("failed to set session: %v", err)
	}

	// a fresh store over the same directory sees the persisted entry
	fs2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	got, err := fs2.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("failed to get session after reopen: %v", err)
	}
	if got.Token != "tok-123" {
		t.Fatalf("expected persisted token, got %q", got.Token)
	}
	if got.User == nil || got.User.FirstName != "Ada" {
		t.Fatalf("expected persisted user, got %+v", got.User)
	}
	if !got.Authenticated() {
		t.Fatalf("session with a token should be authenticated")
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if _, err := fs.Get(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreClearKeepsEntryWithoutToken(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := fs.Set(ctx, "sid-1", Session{Token: "tok", User: &api.User{UserID: 2}}); err != nil {
		t.Fatalf("failed to set session: %v", err)
	}
	if err := fs.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("failed to clear session: %v", err)
	}

	got, err := fs.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("cleared entry should still exist, got %v", err)
	}
	if got.Authenticated() {
		t.Fatalf("cleared session must not be authenticated")
	}

	// clearing an unknown sid is a no-op, not an error
	if err := fs.Clear(ctx, "unknown"); err != nil {
		t.Fatalf("clearing an unknown sid should not fail: %v", err)
	}
}
