package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"backend/models"
)

// AddExpense records a cash deduction not tied to a batch.
func (s *Store) AddExpense(description, category string, amount float64) (models.OperationalExpense, error) {
	if !validNumber(amount) || amount <= 0 {
		return models.OperationalExpense{}, fmt.Errorf("%w: expense amount must be a positive number", ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return models.OperationalExpense{}, fmt.Errorf("%w: expense description is required", ErrValidation)
	}
	if category == "" {
		category = "misc"
	}

	var created models.OperationalExpense
	err := s.mutate(func(snap *Snapshot) error {
		e := models.OperationalExpense{
			ID:          uuid.NewString(),
			Description: description,
			Amount:      SafeRound(amount),
			Category:    category,
			Timestamp:   s.now(),
		}
		snap.Expenses = append(snap.Expenses, e)
		created = e
		return nil
	})
	return created, err
}

// DeleteExpense removes an expense by id. Day totals are derived from the
// surviving set on the next read, so nothing else needs touching here.
func (s *Store) DeleteExpense(id string) error {
	return s.mutate(func(snap *Snapshot) error {
		for i := range snap.Expenses {
			if snap.Expenses[i].ID == id {
				snap.Expenses = append(snap.Expenses[:i], snap.Expenses[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: expense %s", ErrNotFound, id)
	})
}

func (s *Store) Expenses() []models.OperationalExpense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.OperationalExpense(nil), s.snap.Expenses...)
}
