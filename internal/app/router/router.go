package router

import (
	"context"

	"lendsafe/internal/app/handlers"
	"lendsafe/internal/app/middleware"
	"lendsafe/internal/service/borrowers"
	"lendsafe/internal/service/fraud"
	"lendsafe/internal/service/interfaces"
	"lendsafe/internal/service/loans"
	"lendsafe/internal/service/sweeps"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	ctx context.Context,
	borrowerService *borrowers.BorrowerService,
	trustScoreService interfaces.TrustScoreServiceInterface,
	loanService *loans.LoanService,
	fraudService *fraud.FraudService,
	sweepService *sweeps.SweepService,
	transactionRepo interfaces.TransactionRepositoryInterface,
) *gin.Engine {
	server := gin.Default()
	server.Use(middleware.AttachTraceID())

	healthCheckHandler := handlers.NewHealthCheckHandler()
	server.GET("/LendSafe/HealthCheck", healthCheckHandler.HealthCheck)

	borrowerHandler := handlers.NewBorrowerHandler(borrowerService, trustScoreService, fraudService, transactionRepo)
	server.POST("/LendSafe/Borrowers", borrowerHandler.Register)
	server.GET("/LendSafe/Borrowers/:bid", borrowerHandler.GetBorrower)
	server.GET("/LendSafe/Borrowers/:bid/TrustScore", borrowerHandler.GetTrustScore)
	server.POST("/LendSafe/Borrowers/:bid/TrustScore/Recompute", borrowerHandler.RecomputeTrustScore)
	server.GET("/LendSafe/Borrowers/:bid/TrustScore/Timeline", borrowerHandler.TrustScoreTimeline)
	server.GET("/LendSafe/Borrowers/:bid/FraudSummary", borrowerHandler.FraudSummary)
	server.GET("/LendSafe/Borrowers/:bid/Transactions", borrowerHandler.Transactions)

	loanHandler := handlers.NewLoanHandler(loanService)
	server.POST("/LendSafe/Loans", loanHandler.CreateLoan)
	server.GET("/LendSafe/Loans", loanHandler.ListLoans)
	server.GET("/LendSafe/Loans/:lid", loanHandler.GetLoan)
	server.POST("/LendSafe/Loans/:lid/Payments", loanHandler.ApplyPayment)
	server.POST("/LendSafe/Loans/:lid/Close", loanHandler.CloseLoan)
	server.GET("/LendSafe/Loans/:lid/Transactions", loanHandler.LoanTransactions)

	fraudHandler := handlers.NewFraudHandler(fraudService)
	server.POST("/LendSafe/FraudAlerts/:faid/Resolve", fraudHandler.ResolveAlert)

	sweepHandler := handlers.NewSweepHandler(sweepService)
	server.POST("/LendSafe/Internal/Sweeps/MissedDueDate", sweepHandler.RunMissedDueDateSweep)
	server.POST("/LendSafe/Internal/Sweeps/WeeklyOverdue", sweepHandler.RunWeeklyOverduePenaltySweep)

	return server
}
