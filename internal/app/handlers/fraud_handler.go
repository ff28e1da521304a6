package handlers

import (
	"net/http"

	"lendsafe/internal/service/fraud"

	"github.com/gin-gonic/gin"
)

type FraudHandler struct {
	fraudService *fraud.FraudService
}

func NewFraudHandler(fraudService *fraud.FraudService) *FraudHandler {
	return &FraudHandler{
		fraudService: fraudService,
	}
}

func (h *FraudHandler) ResolveAlert(c *gin.Context) {
	faid, ok := parseIDParam(c, "faid")
	if !ok {
		return
	}

	if err := h.fraudService.ResolveAlert(c.Request.Context(), faid); err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "fraud alert resolved", gin.H{"faid": faid})
}
