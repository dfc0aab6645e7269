package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type ServiceCenter struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	District string             `bson:"district,omitempty" json:"district,omitempty"`
	City     string             `bson:"city,omitempty" json:"city,omitempty"`
	Region   string             `bson:"region,omitempty" json:"region,omitempty"`
	Status   string             `bson:"status,omitempty" json:"status,omitempty"`
}
