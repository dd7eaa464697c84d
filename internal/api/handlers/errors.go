package handlers

import (
	"context"
	"errors"
	"net/http"

	"rc-building-model/internal/api/models"
	"rc-building-model/internal/model"

	"github.com/gin-gonic/gin"
)

// respondError maps a calculation error onto a status code and the JSON error shape.
// Validation problems win over division by zero when a batch carries both.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	switch {
	case errors.Is(err, model.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, model.ErrMissingValue):
		status, code = http.StatusBadRequest, "MISSING_VALUE"
	case errors.Is(err, model.ErrDivisionByZero):
		status, code = http.StatusUnprocessableEntity, "DIVISION_BY_ZERO"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusServiceUnavailable, "CANCELLED"
	}

	detail := models.ErrorDetail{Code: code, Message: err.Error()}
	if cols := columnDetails(err); len(cols) > 0 {
		detail.Details = map[string]interface{}{"columns": cols}
	}
	c.JSON(status, models.ErrorResponse{Error: detail})
}

func columnDetails(err error) []models.ColumnDetail {
	var out []models.ColumnDetail
	for _, ce := range model.ColumnErrors(err) {
		out = append(out, models.ColumnDetail{
			Column:  ce.Column,
			Kind:    ce.Kind.Error(),
			Rows:    ce.Rows,
			Allowed: ce.Allowed,
			Message: ce.Message,
		})
	}
	return out
}

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}
