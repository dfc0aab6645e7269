package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookcourier/internal/models"
	"bookcourier/internal/store"
)

// ReviewStore appends reviews, one per reviewer per book.
type ReviewStore interface {
	AddReview(ctx context.Context, id primitive.ObjectID, review models.Review) error
}

type reviewRequest struct {
	BookID        string  `json:"bookId" binding:"required"`
	ReviewerName  string  `json:"reviewer_name"`
	ReviewerEmail string  `json:"reviewer_email" binding:"required,email"`
	Rating        float64 `json:"rating" binding:"required"`
	Text          string  `json:"text"`
}

// PATCH /book-rating-review — at most one review per reviewer per book,
// enforced atomically at the store layer.
func AddReview(books ReviewStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /book-rating-review"
		defer handlePanic(c, route)

		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		bookID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.BookID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid bookId")
			return
		}

		review := models.Review{
			ReviewerName:  strings.TrimSpace(req.ReviewerName),
			ReviewerEmail: strings.TrimSpace(req.ReviewerEmail),
			Rating:        req.Rating,
			Text:          strings.TrimSpace(req.Text),
			CreatedAt:     time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err = books.AddReview(ctx, bookID, review)
		if errors.Is(err, store.ErrDuplicateReview) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "You already reviewed this book!"})
			return
		}
		if errors.Is(err, store.ErrBookNotFound) {
			respondWithError(c, http.StatusNotFound, route, "book not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[REVIEW] [INFO] review added by:", review.ReviewerEmail)
		c.JSON(http.StatusOK, gin.H{"message": "review added"})
	}
}
