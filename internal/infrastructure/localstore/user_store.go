// Package localstore implements the durable stores on top of the key-value
// persistence adapter. Every read-modify-write cycle is serialized by a
// per-store mutex so concurrent writers cannot lose updates.
package localstore

import (
	"context"
	"sync"
	"time"

	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/infrastructure/storage"
)

const usersKey = "app.users.v1"

type userRecord struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    int64  `json:"created_at"`
}

// UserStore is a UserDirectory persisted as a single JSON list under
// the app.users.v1 slot, kept in insertion order.
type UserStore struct {
	kv storage.Store
	mu sync.Mutex
}

func NewUserStore(kv storage.Store) *UserStore {
	return &UserStore{kv: kv}
}

func (s *UserStore) ListAll(ctx context.Context) ([]domain.AppUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]domain.AppUser, 0, len(records))
	for _, r := range records {
		users = append(users, toUser(r))
	}
	return users, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.AppUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	want := domain.NormalizeEmail(email)
	for _, r := range records {
		if domain.NormalizeEmail(r.Email) == want {
			u := toUser(r)
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) Insert(ctx context.Context, user *domain.AppUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx)
	if err != nil {
		return err
	}

	want := domain.NormalizeEmail(user.Email)
	for _, r := range records {
		if domain.NormalizeEmail(r.Email) == want {
			return domain.ErrDuplicateEmail
		}
	}

	records = append(records, userRecord{
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Role),
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.Unix(),
	})
	return s.kv.Save(ctx, usersKey, records)
}

func (s *UserStore) read(ctx context.Context) ([]userRecord, error) {
	var records []userRecord
	if _, err := s.kv.Load(ctx, usersKey, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func toUser(r userRecord) domain.AppUser {
	return domain.AppUser{
		Email:        r.Email,
		Name:         r.Name,
		Role:         domain.Role(r.Role),
		PasswordHash: r.PasswordHash,
		CreatedAt:    unixToTime(r.CreatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
