package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mealops/kitchen-system/internal/core/domain"
)

const requestsCollection = "registration_requests"

// RequestRepository is a RequestStore backed by MongoDB.
type RequestRepository struct {
	coll *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{coll: db.Collection(requestsCollection)}
}

type mongoRequest struct {
	ID        string `bson:"_id"`
	Email     string `bson:"email"`
	Name      string `bson:"name"`
	Role      string `bson:"role"`
	Password  string `bson:"password"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *RequestRepository) List(ctx context.Context) ([]domain.RegistrationRequest, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []domain.RegistrationRequest
	for cursor.Next(ctx) {
		var mr mongoRequest
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		requests = append(requests, toRequest(mr))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.RegistrationRequest, error) {
	var mr mongoRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	req := toRequest(mr)
	return &req, nil
}

func (r *RequestRepository) Insert(ctx context.Context, req *domain.RegistrationRequest) error {
	doc := mongoRequest{
		ID:        req.ID,
		Email:     domain.NormalizeEmail(req.Email),
		Name:      req.Name,
		Role:      string(req.Role),
		Password:  req.Password,
		CreatedAt: req.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// Remove deletes the request with the given id; an absent id is a no-op.
func (r *RequestRepository) Remove(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("remove request: %w", err)
	}
	return nil
}

func toRequest(mr mongoRequest) domain.RegistrationRequest {
	return domain.RegistrationRequest{
		ID:        mr.ID,
		Email:     mr.Email,
		Name:      mr.Name,
		Role:      domain.Role(mr.Role),
		Password:  mr.Password,
		CreatedAt: unixToTime(mr.CreatedAt),
	}
}
