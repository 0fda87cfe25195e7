package models

import (
	"time"
)

// Payment methods accepted at the register.
const (
	PaymentCash = "cash"
	PaymentBank = "bank"
)

// Sale is an immutable transaction record. CostBasis and Profit are frozen
// at transaction time: editing the batch afterwards never rewrites history.
type Sale struct {
	ID            string    `bson:"id" json:"id"`
	BatchID       string    `bson:"batchid" json:"batchid"`
	BatchName     string    `bson:"batchname" json:"batchname"`
	CustomerID    string    `bson:"customerid" json:"customerid"`
	Weight        float64   `bson:"weight" json:"weight"`
	Amount        float64   `bson:"amount" json:"amount"`
	CostBasis     float64   `bson:"costbasis" json:"costbasis"`
	Profit        float64   `bson:"profit" json:"profit"`
	PaymentMethod string    `bson:"paymentmethod" json:"paymentmethod"`
	Timestamp     time.Time `bson:"timestamp" json:"timestamp"`
}

type Customer struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name" binding:"required"`
	Phone        string    `bson:"phone" json:"phone"`
	TotalSpent   float64   `bson:"totalspent" json:"totalspent"`
	LastPurchase time.Time `bson:"lastpurchase" json:"lastpurchase"`
	AvatarURL    string    `bson:"avatarurl,omitempty" json:"avatarurl,omitempty"`

	// History is an append-only copy of this customer's sales.
	// Invariant: TotalSpent == sum of History amounts.
	History []Sale `bson:"history" json:"history"`
}

// Level derives the gamified customer tier from lifetime spend.
func (c Customer) Level() int {
	switch {
	case c.TotalSpent >= 5000:
		return 5
	case c.TotalSpent >= 2000:
		return 4
	case c.TotalSpent >= 1000:
		return 3
	case c.TotalSpent >= 250:
		return 2
	case c.TotalSpent > 0:
		return 1
	}
	return 0
}

// OperationalExpense is a cash deduction not tied to a batch (drawer payout,
// supplies). Deleting one is a plain remove; day totals are recomputed from
// the surviving set, never kept as cached deltas.
type OperationalExpense struct {
	ID          string    `bson:"id" json:"id"`
	Description string    `bson:"description" json:"description"`
	Amount      float64   `bson:"amount" json:"amount"`
	Category    string    `bson:"category" json:"category"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}

// Shift ledger states.
const (
	ShiftNotStarted = "NOT_STARTED"
	ShiftOpen       = "OPEN"
	ShiftCounting   = "COUNTING"
	ShiftClosed     = "CLOSED"
)

// ShiftLedger is the per-session cash drawer state. While OPEN the expected
// cash is recomputed on every read from today's transaction log; the value
// stored here is only meaningful once the count starts and freezes it.
type ShiftLedger struct {
	State        string    `bson:"state" json:"state"`
	OpeningFloat float64   `bson:"openingfloat" json:"openingfloat"`
	OpenedAt     time.Time `bson:"openedat,omitempty" json:"openedat,omitempty"`
	ExpectedCash float64   `bson:"expectedcash" json:"expectedcash"`
	// HasCount distinguishes an entered count of 0 from no count yet.
	HasCount    bool      `bson:"hascount" json:"hascount"`
	CountedCash float64   `bson:"countedcash" json:"countedcash"`
	Variance    float64   `bson:"variance" json:"variance"`
	ClosedAt    time.Time `bson:"closedat,omitempty" json:"closedat,omitempty"`
}
