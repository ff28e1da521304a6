package models

import "time"

// APIResponse is the common wire envelope for all endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Warning string      `json:"warning,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type RegisterBorrowerRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	MerchantID  int64  `json:"merchantId"`
}

type CreateLoanRequest struct {
	BID              int64  `json:"bid" binding:"required"`
	MID              int64  `json:"mid" binding:"required"`
	LoanAmount       int64  `json:"loanAmount" binding:"required"`
	LoanDurationDays int    `json:"loanDurationDays" binding:"required"`
	Purpose          string `json:"purpose"`
}

type ApplyPaymentRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Method string `json:"method" binding:"required,oneof=cash upi bank"`
	Note   string `json:"note"`

	// Optional caller identity, enforced against loan ownership when set.
	BID int64 `json:"bid"`
}

// SweepSummary reports the outcome of one penalty sweep invocation.
type SweepSummary struct {
	Scanned int `json:"scanned"`
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// PaymentLedgerRecord is the Kafka payload for a recorded payment.
type PaymentLedgerRecord struct {
	TID                   int64     `json:"tid"`
	LID                   int64     `json:"lid"`
	BID                   int64     `json:"bid"`
	MID                   int64     `json:"mid"`
	Amount                int64     `json:"amount"`
	Method                string    `json:"method"`
	Type                  string    `json:"type"`
	PaidAt                time.Time `json:"paidAt"`
	RemainingAfterPayment int64     `json:"remainingAfterPayment"`
}

// NotificationMessage is the Pub/Sub payload for a delivered notification.
type NotificationMessage struct {
	NID        int64     `json:"nid"`
	TargetType string    `json:"targetType"`
	BID        int64     `json:"bid,omitempty"`
	MID        int64     `json:"mid,omitempty"`
	LID        int64     `json:"lid,omitempty"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}
