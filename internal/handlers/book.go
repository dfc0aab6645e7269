package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookcourier/internal/models"
	"bookcourier/internal/store"
)

// BookStore is the slice of the catalog store these handlers need.
type BookStore interface {
	Create(ctx context.Context, book models.Book) (string, error)
	Latest(ctx context.Context, skip, limit int64) ([]models.Book, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	TogglePublish(ctx context.Context, id primitive.ObjectID) (string, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	ListByLibrarian(ctx context.Context, email string) ([]models.Book, error)
	LibrarianOrders(ctx context.Context, email string) ([]bson.M, error)
}

type createBookRequest struct {
	BookName       string  `json:"bookName" binding:"required"`
	Author         string  `json:"author" binding:"required"`
	Image          string  `json:"image"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	LibrarianEmail string  `json:"librarianEmail" binding:"required,email"`
	Status         string  `json:"status"`
}

type editBookRequest struct {
	BookName    *string  `json:"bookName"`
	Author      *string  `json:"author"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Status      *string  `json:"status"`
}

// POST /book-add — create a listing. bookName is a soft-unique key.
func CreateBook(books BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /book-add"
		defer handlePanic(c, route)

		var req createBookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		status := strings.TrimSpace(req.Status)
		if status == "" {
			status = models.BookStatusPublished
		}

		book := models.Book{
			BookName:       strings.TrimSpace(req.BookName),
			Author:         strings.TrimSpace(req.Author),
			Image:          strings.TrimSpace(req.Image),
			Description:    strings.TrimSpace(req.Description),
			Category:       strings.TrimSpace(req.Category),
			Price:          req.Price,
			LibrarianEmail: strings.TrimSpace(req.LibrarianEmail),
			Status:         status,
			CreatedAt:      time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		id, err := books.Create(ctx, book)
		if errors.Is(err, store.ErrBookExists) {
			respondWithError(c, http.StatusConflict, route, "book already exists")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[BOOK] [INFO] book created:", book.BookName)
		c.JSON(http.StatusCreated, gin.H{"insertedId": id})
	}
}

// GET /books — latest listings, default limit 6, optional pagination.
func GetBooks(books BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /books"
		defer handlePanic(c, route)

		skip := int64(0)
		limit := int64(6)

		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, perPage, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			skip = (page - 1) * perPage
			limit = perPage
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := books.Latest(ctx, skip, limit)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// GET /books/:id — book or null. An absent id is not an error.
func GetBook(books BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /books/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		book, err := books.GetByID(ctx, id)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, book)
	}
}

// PATCH /books/:id — flip the publish state. The new state derives from
// the stored value, not a caller-supplied mirror of it.
func ToggleBookStatus(books BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /books/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status, err := books.TogglePublish(ctx, id)
		if errors.Is(err, store.ErrBookNotFound) {
			respondWithError(c, http.StatusNotFound, route, "book not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "status updated", "status": status})
	}
}

// PATCH /book-edit/:id — partial field edit.
func EditBook(books BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /book-edit/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req editBookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		fields := buildBookUpdate(req)
		if len(fields) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		matched, err := books.UpdateFields(ctx, id, fields)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if matched == 0 {
			respondWithError(c, http.StatusNotFound, route, "book not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "book updated"})
	}
}

// GET /librarian-book/:librarianEmail — the librarian's own listings.
func GetLibrarianBooks(books BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /librarian-book/:librarianEmail"
		defer handlePanic(c, route)

		email := strings.TrimSpace(c.Param("librarianEmail"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := books.ListByLibrarian(ctx, email)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// GET /order-book/:email — the librarian's books joined to the orders
// referencing them. Books with no orders are absent from the result.
func GetLibrarianOrders(books BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /order-book/:email"
		defer handlePanic(c, route)

		email := strings.TrimSpace(c.Param("email"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := books.LibrarianOrders(ctx, email)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func buildBookUpdate(req editBookRequest) bson.M {
	fields := bson.M{}
	if req.BookName != nil {
		fields["bookName"] = strings.TrimSpace(*req.BookName)
	}
	if req.Author != nil {
		fields["author"] = strings.TrimSpace(*req.Author)
	}
	if req.Image != nil {
		fields["image"] = strings.TrimSpace(*req.Image)
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Status != nil {
		fields["status"] = strings.TrimSpace(*req.Status)
	}
	return fields
}
