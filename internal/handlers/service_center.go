package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookcourier/internal/models"
)

type ServiceCenterStore interface {
	List(ctx context.Context) ([]models.ServiceCenter, error)
}

// GET /service-center — read-only listing of service center locations.
func GetServiceCenters(centers ServiceCenterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /service-center"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := centers.List(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
