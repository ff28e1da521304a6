package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"lendsafe/internal/pkg/models"
	"lendsafe/internal/service/borrowers"
	"lendsafe/internal/service/fraud"
	"lendsafe/internal/service/interfaces"

	"github.com/gin-gonic/gin"
)

type BorrowerHandler struct {
	borrowerService *borrowers.BorrowerService
	trustScore      interfaces.TrustScoreServiceInterface
	fraudService    *fraud.FraudService
	transactionRepo interfaces.TransactionRepositoryInterface
}

func NewBorrowerHandler(
	borrowerService *borrowers.BorrowerService,
	trustScore interfaces.TrustScoreServiceInterface,
	fraudService *fraud.FraudService,
	transactionRepo interfaces.TransactionRepositoryInterface,
) *BorrowerHandler {
	return &BorrowerHandler{
		borrowerService: borrowerService,
		trustScore:      trustScore,
		fraudService:    fraudService,
		transactionRepo: transactionRepo,
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, models.InvalidInputError(fmt.Sprintf("%s must be a positive integer", name)))
		return 0, false
	}
	return id, true
}

func (h *BorrowerHandler) Register(c *gin.Context) {
	var req models.RegisterBorrowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, models.InvalidInputError(err.Error()))
		return
	}

	borrower, err := h.borrowerService.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusCreated, "borrower registered", borrower)
}

func (h *BorrowerHandler) GetBorrower(c *gin.Context) {
	bid, ok := parseIDParam(c, "bid")
	if !ok {
		return
	}

	borrower, err := h.borrowerService.GetBorrower(c.Request.Context(), bid)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "borrower found", borrower)
}

func (h *BorrowerHandler) GetTrustScore(c *gin.Context) {
	bid, ok := parseIDParam(c, "bid")
	if !ok {
		return
	}

	score, cached, err := h.borrowerService.TrustScore(c.Request.Context(), bid)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "trust score", gin.H{
		"bid":        bid,
		"trustScore": score,
		"cached":     cached,
	})
}

func (h *BorrowerHandler) RecomputeTrustScore(c *gin.Context) {
	bid, ok := parseIDParam(c, "bid")
	if !ok {
		return
	}

	if _, err := h.borrowerService.GetBorrower(c.Request.Context(), bid); err != nil {
		writeError(c, err)
		return
	}

	score, err := h.trustScore.Recompute(c.Request.Context(), bid)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "trust score recomputed", gin.H{
		"bid":        bid,
		"trustScore": score,
	})
}

func (h *BorrowerHandler) TrustScoreTimeline(c *gin.Context) {
	bid, ok := parseIDParam(c, "bid")
	if !ok {
		return
	}

	if _, err := h.borrowerService.GetBorrower(c.Request.Context(), bid); err != nil {
		writeError(c, err)
		return
	}

	events, err := h.trustScore.Timeline(c.Request.Context(), bid)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "trust score timeline", events)
}

func (h *BorrowerHandler) FraudSummary(c *gin.Context) {
	bid, ok := parseIDParam(c, "bid")
	if !ok {
		return
	}

	if _, err := h.borrowerService.GetBorrower(c.Request.Context(), bid); err != nil {
		writeError(c, err)
		return
	}

	summary, err := h.fraudService.BorrowerFraudSummary(c.Request.Context(), bid)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "fraud summary", summary)
}

func (h *BorrowerHandler) Transactions(c *gin.Context) {
	bid, ok := parseIDParam(c, "bid")
	if !ok {
		return
	}

	if _, err := h.borrowerService.GetBorrower(c.Request.Context(), bid); err != nil {
		writeError(c, err)
		return
	}

	transactions, err := h.transactionRepo.GetTransactionsByBID(c.Request.Context(), bid)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "borrower transactions", transactions)
}
