package handlers

import (
	"net/http"

	"rc-building-model/internal/api/models"
	"rc-building-model/internal/config"
	"rc-building-model/internal/demand"

	"github.com/gin-gonic/gin"
)

// DemandHandler serves the monthly demand model on its own
type DemandHandler struct {
	base config.Config
}

func NewDemandHandler(base config.Config) *DemandHandler {
	return &DemandHandler{base: base}
}

// AnnualDemand handles POST /api/v1/annual-demand
func (h *DemandHandler) AnnualDemand(c *gin.Context) {
	var req models.AnnualDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	cfg := h.base
	cfg.Demand = config.MergeDemand(h.base.Demand, req.DemandConfig())

	annual, err := demand.AnnualHeatDemand(req.HeatLossCoefficient, cfg.Params().Demand)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AnnualDemandResponse{
		AnnualHeatDemand: annual,
		Unit:             "kWh",
	})
}

// GetProfiles handles GET /api/v1/profiles
func (h *DemandHandler) GetProfiles(c *gin.Context) {
	p := h.base.Params().Demand
	c.JSON(http.StatusOK, models.ProfilesResponse{
		InternalTemperatures: p.Internal,
		ExternalTemperatures: p.External,
		HoursPerMonth:        demand.HoursPerMonth(),
		HeatingSeason:        p.Season,
	})
}
