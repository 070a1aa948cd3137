package localstore

import (
	"context"
	"sync"

	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/infrastructure/storage"
)

const requestsKey = "app.registration.requests.v1"

type requestRecord struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Password  string `json:"password"`
	CreatedAt int64  `json:"created_at"`
}

// RequestStore persists pending registration requests as a single JSON
// list under the app.registration.requests.v1 slot, newest first.
type RequestStore struct {
	kv storage.Store
	mu sync.Mutex
}

func NewRequestStore(kv storage.Store) *RequestStore {
	return &RequestStore{kv: kv}
}

func (s *RequestStore) List(ctx context.Context) ([]domain.RegistrationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	requests := make([]domain.RegistrationRequest, 0, len(records))
	for _, r := range records {
		requests = append(requests, toRequest(r))
	}
	return requests, nil
}

func (s *RequestStore) FindByID(ctx context.Context, id string) (*domain.RegistrationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			req := toRequest(r)
			return &req, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (s *RequestStore) Insert(ctx context.Context, req *domain.RegistrationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx)
	if err != nil {
		return err
	}

	record := requestRecord{
		ID:        req.ID,
		Email:     req.Email,
		Name:      req.Name,
		Role:      string(req.Role),
		Password:  req.Password,
		CreatedAt: req.CreatedAt.Unix(),
	}
	records = append([]requestRecord{record}, records...)
	return s.kv.Save(ctx, requestsKey, records)
}

func (s *RequestStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx)
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		// absent id: nothing to do
		return nil
	}
	return s.kv.Save(ctx, requestsKey, kept)
}

func (s *RequestStore) read(ctx context.Context) ([]requestRecord, error) {
	var records []requestRecord
	if _, err := s.kv.Load(ctx, requestsKey, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func toRequest(r requestRecord) domain.RegistrationRequest {
	return domain.RegistrationRequest{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		Role:      domain.Role(r.Role),
		Password:  r.Password,
		CreatedAt: unixToTime(r.CreatedAt),
	}
}
