package engine

import (
	"fmt"

	"github.com/google/uuid"

	"backend/models"
)

// xpPerAmount converts collected cash into operator XP (1 point per 10).
const xpPerAmount = 10.0

// SaleResult is the consistent view produced by a successful sale: the
// frozen transaction plus the batch and customer as they look afterwards.
type SaleResult struct {
	Sale     models.Sale     `json:"sale"`
	Batch    models.Batch    `json:"batch"`
	Customer models.Customer `json:"customer"`
}

// ProcessSale validates and records a sale. The batch stock decrement, the
// customer ledger append and the cash position update are applied as a
// single snapshot transition; a failure at any check leaves all three
// untouched.
func (s *Store) ProcessSale(batchID, customerID string, weight, amount float64, paymentMethod string) (SaleResult, error) {
	if !validNumber(weight) || !validNumber(amount) {
		return SaleResult{}, fmt.Errorf("%w: non-numeric weight or amount", ErrValidation)
	}
	// Round before validating: a weight below half a cent of a unit would
	// otherwise pass the positivity check, round away to zero and book a
	// zero-weight sale that still collects the amount.
	weight = SafeRound(weight)
	amount = SafeRound(amount)
	if weight <= 0 {
		return SaleResult{}, fmt.Errorf("%w: weight must be positive", ErrValidation)
	}
	if amount < 0 {
		return SaleResult{}, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	if paymentMethod != models.PaymentCash && paymentMethod != models.PaymentBank {
		paymentMethod = models.PaymentCash
	}

	var result SaleResult
	err := s.mutate(func(snap *Snapshot) error {
		b, err := findBatch(snap, batchID)
		if err != nil {
			return err
		}
		c, err := findCustomer(snap, customerID)
		if err != nil {
			return err
		}

		// Selling the exact remaining stock is legal; only a shortfall
		// beyond the float tolerance is rejected.
		if weight > b.CurrentStock+StockTolerance {
			return fmt.Errorf("%w: requested %.2f, available %.2f", ErrInsufficientStock, weight, b.CurrentStock)
		}

		costBasis := SafeRound(weight * b.TrueCostPerUnit)
		sale := models.Sale{
			ID:            uuid.NewString(),
			BatchID:       b.ID,
			BatchName:     b.Name,
			CustomerID:    c.ID,
			Weight:        weight,
			Amount:        amount,
			CostBasis:     costBasis,
			Profit:        SafeRound(amount - costBasis),
			PaymentMethod: paymentMethod,
			Timestamp:     s.now(),
		}

		b.CurrentStock = SafeRound(b.CurrentStock - weight)
		if b.CurrentStock < 0 {
			b.CurrentStock = 0
		}

		c.History = append(c.History, sale)
		c.TotalSpent = SafeRound(c.TotalSpent + amount)
		c.LastPurchase = sale.Timestamp

		if paymentMethod == models.PaymentBank {
			snap.Settings.BankBalance = SafeRound(snap.Settings.BankBalance + amount)
		} else {
			snap.Settings.CashOnHand = SafeRound(snap.Settings.CashOnHand + amount)
		}
		snap.Settings.OperatorXP += int(amount / xpPerAmount)

		snap.Sales = append(snap.Sales, sale)
		result = SaleResult{Sale: sale, Batch: *b, Customer: *c}
		return nil
	})
	return result, err
}

// Sales returns the full append-only transaction log, newest last.
func (s *Store) Sales() []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Sale(nil), s.snap.Sales...)
}
