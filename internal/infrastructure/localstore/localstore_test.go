package localstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/infrastructure/storage"
)

func newKV(t *testing.T) *storage.FileStore {
	t.Helper()
	kv, err := storage.NewFileStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return kv
}

func TestUserStore_InsertAndFind(t *testing.T) {
	s := NewUserStore(newKV(t))
	ctx := context.Background()

	user := &domain.AppUser{
		Email:        "alice@x.com",
		Name:         "Alice",
		Role:         domain.RoleRider,
		PasswordHash: "digest",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Insert(ctx, user); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.FindByEmail(ctx, "ALICE@X.COM")
	if err != nil {
		t.Fatalf("FindByEmail should match case-insensitively: %v", err)
	}
	if got.Name != "Alice" || got.Role != domain.RoleRider || got.PasswordHash != "digest" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := s.FindByEmail(ctx, "ghost@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserStore_DuplicateEmailCaseInsensitive(t *testing.T) {
	s := NewUserStore(newKV(t))
	ctx := context.Background()

	if err := s.Insert(ctx, &domain.AppUser{Email: "bob@x.com", Role: domain.RoleCook}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	err := s.Insert(ctx, &domain.AppUser{Email: "BOB@X.com", Role: domain.RoleCook})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	users, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestUserStore_InsertionOrderSurvivesReload(t *testing.T) {
	kv := newKV(t)
	ctx := context.Background()

	s := NewUserStore(kv)
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if err := s.Insert(ctx, &domain.AppUser{Email: email, Role: domain.RoleRefill}); err != nil {
			t.Fatalf("Insert %s: %v", email, err)
		}
	}

	// fresh store over the same slot sees the same list
	reloaded := NewUserStore(kv)
	users, err := reloaded.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(users) != 3 || users[0].Email != "a@x.com" || users[2].Email != "c@x.com" {
		t.Fatalf("unexpected order: %+v", users)
	}
}

func TestRequestStore_NewestFirst(t *testing.T) {
	s := NewRequestStore(newKV(t))
	ctx := context.Background()

	first := &domain.RegistrationRequest{ID: "req-1", Email: "one@x.com", Role: domain.RoleCook, CreatedAt: time.Now()}
	second := &domain.RegistrationRequest{ID: "req-2", Email: "two@x.com", Role: domain.RoleRider, CreatedAt: time.Now()}

	if err := s.Insert(ctx, first); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Insert(ctx, second); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "req-2" || list[1].ID != "req-1" {
		t.Fatalf("expected newest-first ordering, got %+v", list)
	}
}

func TestRequestStore_RemoveAbsentIsNoop(t *testing.T) {
	s := NewRequestStore(newKV(t))
	ctx := context.Background()

	if err := s.Insert(ctx, &domain.RegistrationRequest{ID: "req-1", Email: "x@x.com"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Remove(ctx, "req-unknown"); err != nil {
		t.Fatalf("Remove of absent id must be a no-op, got %v", err)
	}

	if err := s.Remove(ctx, "req-1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty store, got %+v", list)
	}
}

func TestRequestStore_FindByID(t *testing.T) {
	s := NewRequestStore(newKV(t))
	ctx := context.Background()

	req := &domain.RegistrationRequest{ID: "req-9", Email: "nine@x.com", Password: "pw", Role: domain.RoleSupervisor}
	if err := s.Insert(ctx, req); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.FindByID(ctx, "req-9")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Email != "nine@x.com" || got.Password != "pw" {
		t.Fatalf("unexpected request: %+v", got)
	}

	if _, err := s.FindByID(ctx, "req-0"); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestPreferences_LanguageDefaultAndSet(t *testing.T) {
	p := NewPreferences(newKV(t))
	ctx := context.Background()

	lang, err := p.Language(ctx)
	if err != nil {
		t.Fatalf("Language: %v", err)
	}
	if lang != DefaultLanguage {
		t.Fatalf("expected default language, got %q", lang)
	}

	if err := p.SetLanguage(ctx, "es"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	if lang, _ = p.Language(ctx); lang != "es" {
		t.Fatalf("expected stored language, got %q", lang)
	}
}
