package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCancelled = "cancel"
	PaymentStatusPaid    = "paid"
)

// Order references a book by the string form of its _id. The reference is
// matched at read time only, never enforced with a constraint.
//
// Status is librarian-set free text; PaymentStatus is provider-driven. The
// two fields are independent state and are never synchronized.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookID        string             `bson:"bookId" json:"bookId"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`
	PaymentStatus string             `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	PaymentAdd    *time.Time         `bson:"payment_add,omitempty" json:"payment_add,omitempty"`
	PaymentID     string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
