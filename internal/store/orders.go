package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookcourier/internal/models"
)

type Orders struct {
	col *mongo.Collection
}

func NewOrders(db *mongo.Database) *Orders {
	return &Orders{col: db.Collection("bookOrders")}
}

// Insert stores the submitted order payload as-is, passthrough fields
// included.
func (s *Orders) Insert(ctx context.Context, doc bson.M) (string, error) {
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

func (s *Orders) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *Orders) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.list(ctx, bson.M{"email": email})
}

// ListPaidByEmail returns the orders the payment provider has confirmed.
func (s *Orders) ListPaidByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.list(ctx, bson.M{
		"email":         email,
		"paymentStatus": models.PaymentStatusPaid,
	})
}

func (s *Orders) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SetStatus writes the supplied status verbatim. Independent of the
// payment sub-state.
func (s *Orders) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (int64, error) {
	res, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"status": status},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// MarkPaid records the provider-confirmed payment on the order.
func (s *Orders) MarkPaid(ctx context.Context, id primitive.ObjectID, paymentID string, at time.Time) (int64, error) {
	res, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"paymentStatus": models.PaymentStatusPaid,
			"payment_add":   at,
			"paymentId":     paymentID,
		},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
