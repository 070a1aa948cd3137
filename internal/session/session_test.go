package session

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/infrastructure/storage"
)

func TestStore_SignInNotifiesOnce(t *testing.T) {
	s := New(zerolog.Nop())

	calls := 0
	var seen *Identity
	s.Subscribe(func() {
		calls++
		seen = s.Current()
	})

	s.SignIn(context.Background(), Identity{Email: "alice@x.com", Name: "Alice", Role: domain.RoleRider})

	if calls != 1 {
		t.Fatalf("expected exactly one notification, got %d", calls)
	}
	if seen == nil || seen.Email != "alice@x.com" || seen.Role != domain.RoleRider {
		t.Fatalf("observer did not see the new session: %+v", seen)
	}
}

func TestStore_SignInOverwritesPriorSession(t *testing.T) {
	s := New(zerolog.Nop())
	ctx := context.Background()

	s.SignIn(ctx, Identity{Email: "a@x.com", Role: domain.RoleCook})
	s.SignIn(ctx, Identity{Email: "b@x.com", Role: domain.RoleSupervisor})

	cur := s.Current()
	if cur == nil || cur.Email != "b@x.com" || cur.Role != domain.RoleSupervisor {
		t.Fatalf("expected second sign-in to win: %+v", cur)
	}
}

func TestStore_SignOutClearsAndNotifies(t *testing.T) {
	s := New(zerolog.Nop())
	ctx := context.Background()

	calls := 0
	s.Subscribe(func() { calls++ })

	s.SignIn(ctx, Identity{Email: "a@x.com", Role: domain.RoleCook})
	s.SignOut(ctx)

	if s.Current() != nil {
		t.Fatalf("expected signed out state")
	}
	if calls != 2 {
		t.Fatalf("expected two notifications, got %d", calls)
	}
}

func TestStore_UnsubscribeStopsNotifications(t *testing.T) {
	s := New(zerolog.Nop())
	ctx := context.Background()

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })
	unsubscribe()

	s.SignOut(ctx)

	if calls != 0 {
		t.Fatalf("unsubscribed observer must not be invoked, got %d calls", calls)
	}
}

func TestStore_PanickingObserverIsIsolated(t *testing.T) {
	s := New(zerolog.Nop())
	ctx := context.Background()

	var after int
	s.Subscribe(func() { panic("boom") })
	s.Subscribe(func() { after++ })

	s.SignIn(ctx, Identity{Email: "a@x.com", Role: domain.RoleRefill})

	if after != 1 {
		t.Fatalf("observer after the panicking one must still run, got %d", after)
	}

	// registry stays usable
	s.SignOut(ctx)
	if after != 2 {
		t.Fatalf("registry corrupted after observer panic, got %d", after)
	}
}

func TestStore_NotificationOrderFollowsSubscription(t *testing.T) {
	s := New(zerolog.Nop())

	var order []int
	s.Subscribe(func() { order = append(order, 1) })
	s.Subscribe(func() { order = append(order, 2) })
	s.Subscribe(func() { order = append(order, 3) })

	s.SignIn(context.Background(), Identity{Email: "a@x.com", Role: domain.RoleCook})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("unexpected notification order: %v", order)
	}
}

func TestStore_BootstrapRestoresPersistedSession(t *testing.T) {
	kv, err := storage.NewFileStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	first := NewPersistent(kv, zerolog.Nop())
	first.SignIn(ctx, Identity{Email: "boot@x.com", Name: "Boot", Role: domain.RoleSuperadmin})

	second := NewPersistent(kv, zerolog.Nop())
	if second.Current() != nil {
		t.Fatalf("expected fresh store to start signed out")
	}
	second.Bootstrap(ctx)

	cur := second.Current()
	if cur == nil || cur.Email != "boot@x.com" || cur.Role != domain.RoleSuperadmin {
		t.Fatalf("expected restored session, got %+v", cur)
	}
}

func TestStore_BootstrapAfterSignOutStaysSignedOut(t *testing.T) {
	kv, err := storage.NewFileStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	first := NewPersistent(kv, zerolog.Nop())
	first.SignIn(ctx, Identity{Email: "gone@x.com", Role: domain.RoleRider})
	first.SignOut(ctx)

	second := NewPersistent(kv, zerolog.Nop())
	second.Bootstrap(ctx)
	if second.Current() != nil {
		t.Fatalf("expected signed out after persisted sign-out")
	}
}
