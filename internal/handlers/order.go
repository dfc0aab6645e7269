package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookcourier/internal/models"
)

// OrderStore is the slice of the order ledger these handlers need.
type OrderStore interface {
	Insert(ctx context.Context, doc bson.M) (string, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
	ListPaidByEmail(ctx context.Context, email string) ([]models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (int64, error)
}

// OrderLog is the book-side denormalized order mirror.
type OrderLog interface {
	PushOrderEntry(ctx context.Context, id primitive.ObjectID, entry models.OrderEntry) error
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /book-order — two writes, not a transaction: the book's order log
// entry is fire-and-forget, the bookOrders insert is the authoritative one.
// bookId is not validated against the catalog.
func PlaceOrder(orders OrderStore, books OrderLog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /book-order"
		defer handlePanic(c, route)

		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		bookID, name, email := orderIdentity(body)
		if bookID == "" || name == "" || email == "" {
			respondWithError(c, http.StatusBadRequest, route, "bookId, name and email are required")
			return
		}

		now := time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if oid, err := primitive.ObjectIDFromHex(bookID); err == nil {
			entry := models.OrderEntry{
				OrderUserName:  name,
				OrderUserEmail: email,
				CreatedAt:      now,
			}
			if err := books.PushOrderEntry(ctx, oid, entry); err != nil {
				log.Println("[ORDER] [ERROR] order log push failed:", err)
			}
		} else {
			log.Println("[ORDER] [ERROR] bookId is not an object id:", bookID)
		}

		if _, ok := body["status"]; !ok {
			body["status"] = models.OrderStatusPending
		}
		body["createdAt"] = now

		id, err := orders.Insert(ctx, bson.M(body))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] order placed for book:", bookID)
		c.JSON(http.StatusCreated, gin.H{"insertedId": id})
	}
}

// GET /book-order — list every order. Unauthenticated in the current
// surface.
func GetAllOrders(orders OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /book-order"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := orders.ListAll(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// GET /book-order/:email — the caller's orders.
func GetOrdersByEmail(orders OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /book-order/:email"
		defer handlePanic(c, route)

		email := strings.TrimSpace(c.Param("email"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := orders.ListByEmail(ctx, email)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// GET /payment-book/:email — orders the provider has confirmed as paid.
func GetPaidOrders(orders OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /payment-book/:email"
		defer handlePanic(c, route)

		email := strings.TrimSpace(c.Param("email"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := orders.ListPaidByEmail(ctx, email)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// PATCH /book-order-status/:id — sets the librarian-facing status to the
// supplied string. Free text, independent of paymentStatus.
func SetOrderStatus(orders OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /book-order-status/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		matched, err := orders.SetStatus(ctx, id, req.Status)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if matched == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "status updated"})
	}
}

// PATCH /book-order-cancel/:id — unconditional cancel; no check against
// an already paid or already cancelled order.
func CancelOrder(orders OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /book-order-cancel/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		matched, err := orders.SetStatus(ctx, id, models.OrderStatusCancelled)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if matched == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
	}
}

func orderIdentity(body map[string]interface{}) (bookID, name, email string) {
	bookID, _ = body["bookId"].(string)
	name, _ = body["name"].(string)
	email, _ = body["email"].(string)
	return strings.TrimSpace(bookID), strings.TrimSpace(name), strings.TrimSpace(email)
}
