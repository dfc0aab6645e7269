package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookcourier/internal/models"
)

var (
	// ErrBookExists signals a duplicate bookName at creation time.
	ErrBookExists = errors.New("book exists")
	// ErrDuplicateReview signals a second review from the same reviewer.
	ErrDuplicateReview = errors.New("duplicate review")
	// ErrBookNotFound signals an id that resolves to no book.
	ErrBookNotFound = errors.New("book not found")
)

type Books struct {
	col *mongo.Collection
}

func NewBooks(db *mongo.Database) *Books {
	return &Books{col: db.Collection("books")}
}

// Create inserts a listing. bookName is a soft-unique key, backed by the
// unique index so the pre-check race cannot admit a duplicate.
func (s *Books) Create(ctx context.Context, book models.Book) (string, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"bookName": book.BookName})
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrBookExists
	}

	res, err := s.col.InsertOne(ctx, book)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrBookExists
	}
	if err != nil {
		return "", err
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

// Latest returns listings sorted newest first, capped at limit.
func (s *Books) Latest(ctx context.Context, skip, limit int64) ([]models.Book, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := make([]models.Book, 0)
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetByID returns (nil, nil) when the id resolves to no book.
func (s *Books) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// TogglePublish flips the publish state based on the stored value in one
// atomic pipeline update and returns the new status.
func (s *Books) TogglePublish(ctx context.Context, id primitive.ObjectID) (string, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"status": bson.M{
				"$cond": bson.A{
					bson.M{"$eq": bson.A{"$status", models.BookStatusPublished}},
					models.BookStatusUnpublished,
					models.BookStatusPublished,
				},
			},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var book models.Book
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return "", ErrBookNotFound
	}
	if err != nil {
		return "", err
	}
	return book.Status, nil
}

// UpdateFields applies a partial $set built by the caller. Returns the
// matched count.
func (s *Books) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	res, err := s.col.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// ListByLibrarian returns the librarian's listings, newest first.
func (s *Books) ListByLibrarian(ctx context.Context, email string) ([]models.Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.col.Find(ctx, bson.M{"librarianEmail": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := make([]models.Book, 0)
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// PushOrderEntry appends a denormalized order entry to the book's order log.
// Best effort: the bookOrders collection stays authoritative.
func (s *Books) PushOrderEntry(ctx context.Context, id primitive.ObjectID, entry models.OrderEntry) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"orders": entry},
	})
	return err
}

// AddReview appends a review in a single guarded update so two concurrent
// submissions from the same reviewer cannot both pass an existence check.
func (s *Books) AddReview(ctx context.Context, id primitive.ObjectID, review models.Review) error {
	filter := bson.M{
		"_id":                    id,
		"reviews.reviewer_email": bson.M{"$ne": review.ReviewerEmail},
	}

	res, err := s.col.UpdateOne(ctx, filter, bson.M{
		"$push": bson.M{"reviews": review},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Zero matches: either the book is missing or the reviewer already
	// reviewed it. One extra read to tell the two apart.
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Err(); err == mongo.ErrNoDocuments {
		return ErrBookNotFound
	} else if err != nil {
		return err
	}
	return ErrDuplicateReview
}

// LibrarianOrders inner-joins a librarian's books to the orders referencing
// them. Books with zero orders drop out of the result.
func (s *Books) LibrarianOrders(ctx context.Context, email string) ([]bson.M, error) {
	cursor, err := s.col.Aggregate(ctx, librarianOrdersPipeline(email))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]bson.M, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Orders store bookId as the string form of the book's _id, so the join key
// has to be stringified before the $lookup.
func librarianOrdersPipeline(email string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"librarianEmail": email}}},
		{{Key: "$addFields", Value: bson.M{
			"bookIdStr": bson.M{"$toString": "$_id"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "bookOrders",
			"localField":   "bookIdStr",
			"foreignField": "bookId",
			"as":           "order_data",
		}}},
		{{Key: "$unwind", Value: "$order_data"}},
	}
}
