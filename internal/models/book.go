package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookStatusPublished   = "published"
	BookStatusUnpublished = "unpublished"
)

// OrderEntry is the denormalized mirror of an order inside a book document.
// Informational only; the bookOrders collection is the authoritative record.
type OrderEntry struct {
	OrderUserName  string    `bson:"order_user_name" json:"order_user_name"`
	OrderUserEmail string    `bson:"order_user_email" json:"order_user_email"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// Review is unique per reviewer_email within a book.
type Review struct {
	ReviewerName  string    `bson:"reviewer_name,omitempty" json:"reviewer_name,omitempty"`
	ReviewerEmail string    `bson:"reviewer_email" json:"reviewer_email"`
	Rating        float64   `bson:"rating" json:"rating"`
	Text          string    `bson:"text,omitempty" json:"text,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// Book defines the persisted listing document.
type Book struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookName       string             `bson:"bookName" json:"bookName"`
	Author         string             `bson:"author" json:"author"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Category       string             `bson:"category,omitempty" json:"category,omitempty"`
	Price          float64            `bson:"price" json:"price"`
	LibrarianEmail string             `bson:"librarianEmail" json:"librarianEmail"`
	Status         string             `bson:"status" json:"status"`
	Orders         []OrderEntry       `bson:"orders,omitempty" json:"orders,omitempty"`
	Reviews        []Review           `bson:"reviews,omitempty" json:"reviews,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
