package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// respondError maps repository errors onto the response envelope. Transport
// failures carry the underlying message so staff can report it.
func respondError(c *gin.Context, err error) {
	var validationErr *repository.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    models.CodeValidationError,
				Message: validationErr.Message,
				Field:   validationErr.Field,
			},
		})
		return
	}
	if errors.Is(err, repository.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    models.CodeNotFound,
				Message: "Product not found",
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    models.CodeTransportError,
			Message: "Store operation failed: " + err.Error(),
		},
	})
}

func validationError(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    models.CodeValidationError,
			Message: message,
			Field:   field,
		},
	})
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
