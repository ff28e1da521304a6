package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Amounts are stored in minor currency units (paise).

type Borrower struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	BID         int64              `bson:"BID"`
	FullName    string             `bson:"fullName"`
	PhoneNumber string             `bson:"phoneNumber"`
	MerchantID  int64              `bson:"merchantId"`
	TotalLoans  int64              `bson:"totalLoans"`
	ActiveLoans int64              `bson:"activeLoans"`
	TrustScore  int                `bson:"trustScore"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type PaymentEntry struct {
	Amount                int64     `bson:"amount"`
	Note                  string    `bson:"note,omitempty"`
	PaidAt                time.Time `bson:"paidAt"`
	RemainingAfterPayment int64     `bson:"remainingAfterPayment"`
}

type Loan struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	LID              int64              `bson:"LID"`
	BID              int64              `bson:"BID"`
	MID              int64              `bson:"MID"`
	LoanAmount       int64              `bson:"loanAmount"`
	LoanDurationDays int                `bson:"loanDurationDays"`
	Purpose          string             `bson:"purpose,omitempty"`
	Status           string             `bson:"status"`
	TotalPaid        int64              `bson:"totalPaid"`
	DueDate          time.Time          `bson:"dueDate"`
	PaymentHistory   []PaymentEntry     `bson:"paymentHistory"`
	ClosedAt         *time.Time         `bson:"closedAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

// Transaction documents are immutable once written.
type Transaction struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	TID                   int64              `bson:"TID"`
	LID                   int64              `bson:"LID"`
	BID                   int64              `bson:"BID"`
	MID                   int64              `bson:"MID"`
	Amount                int64              `bson:"amount"`
	Method                string             `bson:"method"`
	Note                  string             `bson:"note,omitempty"`
	Type                  string             `bson:"type"`
	PaidAt                time.Time          `bson:"paidAt"`
	RemainingAfterPayment int64              `bson:"remainingAfterPayment"`
	CreatedAt             time.Time          `bson:"createdAt"`
}

// TrustScoreEvent documents are append-only.
type TrustScoreEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	BID         int64              `bson:"BID"`
	LoanID      int64              `bson:"loanId,omitempty"`
	EventType   string             `bson:"eventType"`
	Points      int                `bson:"points"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type FraudAlert struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty"`
	FAID       int64                  `bson:"FAID"`
	BID        int64                  `bson:"BID"`
	MID        int64                  `bson:"MID"`
	LID        int64                  `bson:"LID,omitempty"`
	Type       string                 `bson:"type"`
	Severity   string                 `bson:"severity"`
	Title      string                 `bson:"title"`
	Message    string                 `bson:"message"`
	Details    map[string]interface{} `bson:"details,omitempty"`
	IsResolved bool                   `bson:"isResolved"`
	ResolvedAt *time.Time             `bson:"resolvedAt,omitempty"`
	CreatedAt  time.Time              `bson:"createdAt"`
}

type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	NID        int64              `bson:"NID"`
	TargetType string             `bson:"targetType"`
	BID        int64              `bson:"BID,omitempty"`
	MID        int64              `bson:"MID,omitempty"`
	LID        int64              `bson:"LID,omitempty"`
	Type       string             `bson:"type"`
	Title      string             `bson:"title"`
	Message    string             `bson:"message"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

type SeqCounter struct {
	ID  primitive.ObjectID `bson:"_id,omitempty"`
	Key string             `bson:"key"`
	Seq int64              `bson:"seq"`
}

// TrustScorePointsSum is the aggregation result for the event points total.
type TrustScorePointsSum struct {
	Total int `bson:"total"`
}
