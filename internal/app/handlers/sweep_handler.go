package handlers

import (
	"net/http"

	"lendsafe/internal/service/sweeps"

	"github.com/gin-gonic/gin"
)

// SweepHandler exposes the penalty sweeps to the external scheduler.
type SweepHandler struct {
	sweepService *sweeps.SweepService
}

func NewSweepHandler(sweepService *sweeps.SweepService) *SweepHandler {
	return &SweepHandler{
		sweepService: sweepService,
	}
}

func (h *SweepHandler) RunMissedDueDateSweep(c *gin.Context) {
	summary, err := h.sweepService.RunMissedDueDateSweep(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "missed due date sweep completed", summary)
}

func (h *SweepHandler) RunWeeklyOverduePenaltySweep(c *gin.Context) {
	summary, err := h.sweepService.RunWeeklyOverduePenaltySweep(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "weekly overdue sweep completed", summary)
}
