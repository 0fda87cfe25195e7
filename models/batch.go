package models

import (
	"time"
)

// Expense is an ad-hoc cost attached to a single batch (packaging, transport
// and so on). It feeds the batch's true cost per unit, not the shift ledger.
type Expense struct {
	ID          string  `bson:"id" json:"id"`
	Description string  `bson:"description" json:"description"`
	Amount      float64 `bson:"amount" json:"amount"`
}

type Batch struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name" binding:"required"`
	AcquiredWeight float64   `bson:"acquiredweight" json:"acquiredweight"`
	ProviderCut    float64   `bson:"providercut" json:"providercut"`
	PersonalUse    float64   `bson:"personaluse" json:"personaluse"`
	Loss           float64   `bson:"loss" json:"loss"`
	PurchasePrice  float64   `bson:"purchaseprice" json:"purchaseprice"`
	Fees           float64   `bson:"fees" json:"fees"`
	ExtraExpenses  []Expense `bson:"extraexpenses" json:"extraexpenses"`

	// Derived. Recomputed after every mutation of the acquisition fields,
	// never read back from storage as authoritative.
	SellableWeight  float64 `bson:"sellableweight" json:"sellableweight"`
	TrueCostPerUnit float64 `bson:"truecostperunit" json:"truecostperunit"`

	CurrentStock      float64   `bson:"currentstock" json:"currentstock"`
	TargetRetailPrice float64   `bson:"targetretailprice" json:"targetretailprice"`
	WholesalePrice    float64   `bson:"wholesaleprice" json:"wholesaleprice"`
	Tags              []string  `bson:"tags" json:"tags"`
	DateAdded         time.Time `bson:"dateadded" json:"dateadded"`
}

// SoldOut reports whether the batch has no sellable stock left. Sold-out
// batches stay in the catalogue; deletion is always an explicit action.
func (b Batch) SoldOut() bool {
	return b.CurrentStock <= 0
}
