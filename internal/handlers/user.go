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

// UserStore is the slice of the user store these handlers need.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user models.User) (string, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, displayName, photoURL string) (int64, error)
}

type createUserRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email" binding:"required,email"`
	PhotoURL    string `json:"photoURL"`
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	PhotoURL    string `json:"photoURL"`
}

// GET /users/:email — the record or null, never an error for an unknown
// email.
func GetUser(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/:email"
		defer handlePanic(c, route)

		email := strings.TrimSpace(c.Param("email"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.GetByEmail(ctx, email)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// POST /users — upsert-by-email. A second call for the same email is a
// no-op reporting "user exists".
func CreateUser(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users"
		defer handlePanic(c, route)

		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		user := models.User{
			DisplayName: strings.TrimSpace(req.DisplayName),
			Email:       strings.TrimSpace(req.Email),
			PhotoURL:    strings.TrimSpace(req.PhotoURL),
			Role:        "user",
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		id, err := users.Create(ctx, user)
		if errors.Is(err, store.ErrUserExists) {
			c.JSON(http.StatusOK, gin.H{"message": "user exists"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[USER] [INFO] user created:", user.Email)
		c.JSON(http.StatusCreated, gin.H{"insertedId": id})
	}
}

// PATCH /user/:id — profile edit, displayName and photoURL only.
func UpdateUserProfile(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /user/:id"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		matched, err := users.UpdateProfile(ctx, userID,
			strings.TrimSpace(req.DisplayName),
			strings.TrimSpace(req.PhotoURL),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if matched == 0 {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
	}
}
