package handlers

import (
	"net/http"
	"time"

	"rc-building-model/internal/api/models"
	"rc-building-model/internal/assess"
	"rc-building-model/internal/cache"
	"rc-building-model/internal/config"
	"rc-building-model/internal/logging"
	"rc-building-model/internal/model"
	"rc-building-model/internal/survey"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssessmentHandler runs assessments and keeps their results for later retrieval
type AssessmentHandler struct {
	base    config.Config
	results *cache.TTL[*models.AssessmentResponse]
	log     *zap.Logger
	now     func() time.Time
}

// NewAssessmentHandler creates a new assessment handler.
// base is the service's model configuration; requests overlay their own params on it.
func NewAssessmentHandler(base config.Config, results *cache.TTL[*models.AssessmentResponse], log *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		base:    base,
		results: results,
		log:     logging.OrNop(log),
		now:     time.Now,
	}
}

// RunAssessment handles POST /api/v1/assessments
func (h *AssessmentHandler) RunAssessment(c *gin.Context) {
	var req models.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	cfg := config.MergeModel(h.base, req.Params.Config())
	if err := cfg.Validate(); err != nil {
		badRequest(c, "INVALID_CONFIG", err)
		return
	}

	rows, err := survey.Resolve(req.Buildings)
	if err != nil {
		respondError(c, err)
		return
	}

	engine, err := assess.New(cfg.Params(), assess.Options{
		ChunkSize: cfg.Engine.ChunkSize,
		Workers:   cfg.Engine.Workers,
		Logger:    h.log,
	})
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err)
		return
	}

	res, err := engine.Run(c.Request.Context(), model.Columns(rows))
	if err != nil {
		respondError(c, err)
		return
	}

	stored := &models.AssessmentResponse{
		ID:        uuid.NewString(),
		Status:    "completed",
		CreatedAt: h.now().UTC(),
		Summary:   res.Summary,
		Rows:      res.Rows,
	}
	h.results.Set(stored.ID, stored)
	h.log.Info("assessment stored",
		zap.String("assessment_id", stored.ID),
		zap.Int("buildings", res.Summary.Buildings),
	)

	resp := *stored
	if !req.Options.IncludeRows {
		resp.Rows = nil
	}
	c.JSON(http.StatusOK, resp)
}

// GetAssessment handles GET /api/v1/assessments/:id
// The stored result always carries every row.
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		badRequest(c, "INVALID_ID", err)
		return
	}

	stored, ok := h.results.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: "assessment not found or expired",
				Details: map[string]interface{}{"id": id},
			},
		})
		return
	}
	c.JSON(http.StatusOK, stored)
}
