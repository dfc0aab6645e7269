package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bookcourier/internal/models"
)

type ServiceCenters struct {
	col *mongo.Collection
}

func NewServiceCenters(db *mongo.Database) *ServiceCenters {
	return &ServiceCenters{col: db.Collection("serviceCenter")}
}

func (s *ServiceCenters) List(ctx context.Context) ([]models.ServiceCenter, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	centers := make([]models.ServiceCenter, 0)
	if err := cursor.All(ctx, &centers); err != nil {
		return nil, err
	}
	return centers, nil
}
