package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"backend/models"
)

// sellableFloor keeps the cost divisor away from zero when acquisition data
// is degenerate (provider cut larger than the acquired weight and so on).
// Such data is tolerated rather than rejected; the floor is policy, not a
// validation gate.
const sellableFloor = 0.1

// RecomputeCost recomputes the batch's sellable weight and true cost per
// unit from its acquisition fields and extra expenses. It must run after
// every mutation of those fields. CurrentStock is clamped into
// [0, sellableWeight] in the same pass: if personal use or loss grows after
// creation, stock shrinks with it so weight that no longer physically
// exists cannot be sold.
func RecomputeCost(b *models.Batch) {
	var extras float64
	for _, e := range b.ExtraExpenses {
		extras += e.Amount
	}

	sellable := b.AcquiredWeight - b.ProviderCut - b.PersonalUse - b.Loss
	if sellable < sellableFloor {
		sellable = sellableFloor
	}

	b.SellableWeight = sellable
	b.TrueCostPerUnit = (b.PurchasePrice + b.Fees + extras) / sellable

	if b.CurrentStock > sellable {
		b.CurrentStock = sellable
	}
	if b.CurrentStock < 0 {
		b.CurrentStock = 0
	}
}

// BatchInput carries the operator-editable acquisition fields.
type BatchInput struct {
	Name              string   `json:"name"`
	AcquiredWeight    float64  `json:"acquiredweight"`
	ProviderCut       float64  `json:"providercut"`
	PersonalUse       float64  `json:"personaluse"`
	Loss              float64  `json:"loss"`
	PurchasePrice     float64  `json:"purchaseprice"`
	Fees              float64  `json:"fees"`
	TargetRetailPrice float64  `json:"targetretailprice"`
	WholesalePrice    float64  `json:"wholesaleprice"`
	Tags              []string `json:"tags"`
}

func (in BatchInput) sanitize() (BatchInput, error) {
	for _, v := range []float64{in.AcquiredWeight, in.ProviderCut, in.PersonalUse, in.Loss, in.PurchasePrice, in.Fees, in.TargetRetailPrice, in.WholesalePrice} {
		if !validNumber(v) {
			return in, fmt.Errorf("%w: non-numeric batch field", ErrValidation)
		}
	}
	if strings.TrimSpace(in.Name) == "" {
		return in, fmt.Errorf("%w: batch name is required", ErrValidation)
	}
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return SafeRound(v)
	}
	in.AcquiredWeight = clamp(in.AcquiredWeight)
	in.ProviderCut = clamp(in.ProviderCut)
	in.PersonalUse = clamp(in.PersonalUse)
	in.Loss = clamp(in.Loss)
	in.PurchasePrice = clamp(in.PurchasePrice)
	in.Fees = clamp(in.Fees)
	in.TargetRetailPrice = clamp(in.TargetRetailPrice)
	in.WholesalePrice = clamp(in.WholesalePrice)
	if in.Tags == nil {
		in.Tags = []string{}
	}
	return in, nil
}

// AddBatch records a newly acquired lot. The full sellable weight becomes
// the initial stock.
func (s *Store) AddBatch(in BatchInput) (models.Batch, error) {
	in, err := in.sanitize()
	if err != nil {
		return models.Batch{}, err
	}

	var created models.Batch
	err = s.mutate(func(snap *Snapshot) error {
		b := models.Batch{
			ID:                uuid.NewString(),
			Name:              in.Name,
			AcquiredWeight:    in.AcquiredWeight,
			ProviderCut:       in.ProviderCut,
			PersonalUse:       in.PersonalUse,
			Loss:              in.Loss,
			PurchasePrice:     in.PurchasePrice,
			Fees:              in.Fees,
			ExtraExpenses:     []models.Expense{},
			TargetRetailPrice: in.TargetRetailPrice,
			WholesalePrice:    in.WholesalePrice,
			Tags:              in.Tags,
			DateAdded:         s.now(),
		}
		RecomputeCost(&b)
		b.CurrentStock = b.SellableWeight
		snap.Batches = append(snap.Batches, b)
		created = b
		return nil
	})
	return created, err
}

// UpdateBatch replaces the acquisition fields of an existing batch and
// recomputes its cost. Stock can only shrink here, never grow.
func (s *Store) UpdateBatch(id string, in BatchInput) (models.Batch, error) {
	in, err := in.sanitize()
	if err != nil {
		return models.Batch{}, err
	}

	var updated models.Batch
	err = s.mutate(func(snap *Snapshot) error {
		b, err := findBatch(snap, id)
		if err != nil {
			return err
		}
		b.Name = in.Name
		b.AcquiredWeight = in.AcquiredWeight
		b.ProviderCut = in.ProviderCut
		b.PersonalUse = in.PersonalUse
		b.Loss = in.Loss
		b.PurchasePrice = in.PurchasePrice
		b.Fees = in.Fees
		b.TargetRetailPrice = in.TargetRetailPrice
		b.WholesalePrice = in.WholesalePrice
		b.Tags = in.Tags
		RecomputeCost(b)
		updated = *b
		return nil
	})
	return updated, err
}

// RecordAdjustment adds weight to personal use and/or loss. Both deltas are
// taken as non-negative; the cost recompute clamps stock down in lockstep.
func (s *Store) RecordAdjustment(id string, personalUse, loss float64) (models.Batch, error) {
	if !validNumber(personalUse) || !validNumber(loss) {
		return models.Batch{}, fmt.Errorf("%w: non-numeric adjustment", ErrValidation)
	}
	if personalUse < 0 || loss < 0 {
		return models.Batch{}, fmt.Errorf("%w: adjustment must not be negative", ErrValidation)
	}
	if personalUse == 0 && loss == 0 {
		return models.Batch{}, fmt.Errorf("%w: adjustment is empty", ErrValidation)
	}

	var updated models.Batch
	err := s.mutate(func(snap *Snapshot) error {
		b, err := findBatch(snap, id)
		if err != nil {
			return err
		}
		b.PersonalUse = SafeRound(b.PersonalUse + personalUse)
		b.Loss = SafeRound(b.Loss + loss)
		RecomputeCost(b)
		updated = *b
		return nil
	})
	return updated, err
}

// AddBatchExpense attaches an ad-hoc expense to the batch and folds it into
// the true cost per unit.
func (s *Store) AddBatchExpense(id, description string, amount float64) (models.Batch, error) {
	if !validNumber(amount) || amount <= 0 {
		return models.Batch{}, fmt.Errorf("%w: expense amount must be a positive number", ErrValidation)
	}

	var updated models.Batch
	err := s.mutate(func(snap *Snapshot) error {
		b, err := findBatch(snap, id)
		if err != nil {
			return err
		}
		b.ExtraExpenses = append(b.ExtraExpenses, models.Expense{
			ID:          uuid.NewString(),
			Description: description,
			Amount:      SafeRound(amount),
		})
		RecomputeCost(b)
		updated = *b
		return nil
	})
	return updated, err
}

func (s *Store) RemoveBatchExpense(id, expenseID string) (models.Batch, error) {
	var updated models.Batch
	err := s.mutate(func(snap *Snapshot) error {
		b, err := findBatch(snap, id)
		if err != nil {
			return err
		}
		kept := b.ExtraExpenses[:0]
		found := false
		for _, e := range b.ExtraExpenses {
			if e.ID == expenseID {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		if !found {
			return fmt.Errorf("%w: batch expense %s", ErrNotFound, expenseID)
		}
		b.ExtraExpenses = kept
		RecomputeCost(b)
		updated = *b
		return nil
	})
	return updated, err
}

// DeleteBatch is a hard remove. Historical sales keep their denormalized
// batch name and frozen cost basis, so no cascade is needed.
func (s *Store) DeleteBatch(id string) error {
	return s.mutate(func(snap *Snapshot) error {
		for i := range snap.Batches {
			if snap.Batches[i].ID == id {
				snap.Batches = append(snap.Batches[:i], snap.Batches[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: batch %s", ErrNotFound, id)
	})
}
