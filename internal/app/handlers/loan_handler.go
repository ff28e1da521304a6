package handlers

import (
	"net/http"
	"strconv"

	"lendsafe/internal/pkg/models"
	"lendsafe/internal/service/loans"

	"github.com/gin-gonic/gin"
)

type LoanHandler struct {
	loanService *loans.LoanService
}

func NewLoanHandler(loanService *loans.LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req models.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, models.InvalidInputError(err.Error()))
		return
	}

	result, err := h.loanService.CreateLoan(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Message: "loan created",
		Warning: result.Warning,
		Data:    result,
	})
}

func (h *LoanHandler) ListLoans(c *gin.Context) {
	mid := parseQueryID(c, "mid")
	bid := parseQueryID(c, "bid")
	status := c.Query("status")

	loanDocs, err := h.loanService.ListLoans(c.Request.Context(), mid, bid, status)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "loans", loanDocs)
}

func (h *LoanHandler) GetLoan(c *gin.Context) {
	lid, ok := parseIDParam(c, "lid")
	if !ok {
		return
	}

	loan, err := h.loanService.GetLoan(c.Request.Context(), lid)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "loan found", loan)
}

func (h *LoanHandler) ApplyPayment(c *gin.Context) {
	lid, ok := parseIDParam(c, "lid")
	if !ok {
		return
	}

	var req models.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, models.InvalidInputError(err.Error()))
		return
	}

	result, err := h.loanService.ApplyPayment(c.Request.Context(), lid, req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "payment applied", result)
}

func (h *LoanHandler) CloseLoan(c *gin.Context) {
	lid, ok := parseIDParam(c, "lid")
	if !ok {
		return
	}

	loan, err := h.loanService.CloseLoan(c.Request.Context(), lid)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "loan closed", loan)
}

func (h *LoanHandler) LoanTransactions(c *gin.Context) {
	lid, ok := parseIDParam(c, "lid")
	if !ok {
		return
	}

	transactions, err := h.loanService.LoanTransactions(c.Request.Context(), lid)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, "loan transactions", transactions)
}

// parseQueryID reads an optional numeric query filter, zero when absent or
// malformed.
func parseQueryID(c *gin.Context, name string) int64 {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
