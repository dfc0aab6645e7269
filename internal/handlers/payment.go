package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookcourier/internal/payments"
)

// PaidOrderStore records provider-confirmed payments on orders.
type PaidOrderStore interface {
	MarkPaid(ctx context.Context, id primitive.ObjectID, paymentID string, at time.Time) (int64, error)
}

type checkoutRequest struct {
	Price    float64 `json:"price" binding:"required"`
	BookName string  `json:"bookName" binding:"required"`
	BookID   string  `json:"bookId" binding:"required"`
	OrderID  string  `json:"orderId" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
}

type paymentSuccessRequest struct {
	SessionID string `json:"sessionId"`
}

// POST /create-checkout-session — opens a hosted checkout session and
// returns the redirect URL. No persistent state changes here; the order
// is only touched once the session reports paid.
func CreateCheckoutSession(pay payments.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /create-checkout-session"
		defer handlePanic(c, route)

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		url, err := pay.CreateCheckoutSession(payments.CheckoutParams{
			BookName: strings.TrimSpace(req.BookName),
			Price:    req.Price,
			BookID:   strings.TrimSpace(req.BookID),
			OrderID:  strings.TrimSpace(req.OrderID),
			Email:    strings.TrimSpace(req.Email),
		})
		if err != nil {
			log.Println("[PAYMENT] [ERROR] checkout session failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "payment provider error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

// PATCH /payment-success — confirms a session with the provider. A
// session that is not paid is an advisory no-op, not an error.
func PaymentSuccess(pay payments.Provider, orders PaidOrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /payment-success"
		defer handlePanic(c, route)

		sessionID := strings.TrimSpace(c.Query("session_id"))
		if sessionID == "" {
			var req paymentSuccessRequest
			if err := c.ShouldBindJSON(&req); err == nil {
				sessionID = strings.TrimSpace(req.SessionID)
			}
		}
		if sessionID == "" {
			respondWithError(c, http.StatusBadRequest, route, "session_id is required")
			return
		}

		session, err := pay.GetSession(sessionID)
		if err != nil {
			log.Println("[PAYMENT] [ERROR] session retrieve failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "payment provider error")
			return
		}

		if session.PaymentStatus != payments.PaymentStatusPaid {
			c.JSON(http.StatusOK, gin.H{"message": "payment not completed"})
			return
		}

		orderID, err := primitive.ObjectIDFromHex(strings.TrimSpace(session.Metadata["orderId"]))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid orderId in session metadata")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		matched, err := orders.MarkPaid(ctx, orderID, session.PaymentIntentID, time.Now())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if matched == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		log.Println("[PAYMENT] [INFO] payment recorded for order:", orderID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"message":   "payment recorded",
			"paymentId": session.PaymentIntentID,
		})
	}
}
