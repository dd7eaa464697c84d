package handlers

import (
	"net/http"

	"rc-building-model/internal/api/models"
	"rc-building-model/internal/ventilation"

	"github.com/gin-gonic/gin"
)

// ListVentilationMethods handles GET /api/v1/ventilation-methods
func ListVentilationMethods(c *gin.Context) {
	c.JSON(http.StatusOK, models.VentilationMethodsResponse{Methods: ventilation.Regimes()})
}
