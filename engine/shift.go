package engine

import (
	"fmt"
	"time"

	"backend/models"
)

// ShiftView is the live reconciler state. While the shift is OPEN the
// expected cash is recomputed from the day's transaction log on every read;
// once counting starts the frozen value from the ledger is shown instead.
type ShiftView struct {
	models.ShiftLedger
	TodayRevenue    float64 `json:"todayrevenue"`
	TodayDeductions float64 `json:"todaydeductions"`
}

func (s *Store) todayTotals(snap *Snapshot) (revenue, deductions float64) {
	now := s.now()
	for _, sale := range snap.Sales {
		if SameCalendarDay(sale.Timestamp, now) {
			revenue += sale.Amount
		}
	}
	for _, e := range snap.Expenses {
		if SameCalendarDay(e.Timestamp, now) {
			deductions += e.Amount
		}
	}
	return SafeRound(revenue), SafeRound(deductions)
}

func (s *Store) expectedCash(snap *Snapshot) float64 {
	revenue, deductions := s.todayTotals(snap)
	return SafeRound(snap.Shift.OpeningFloat + revenue - deductions)
}

// Shift returns the reconciler state with today's totals recomputed.
func (s *Store) Shift() ShiftView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := ShiftView{ShiftLedger: s.snap.Shift}
	view.TodayRevenue, view.TodayDeductions = s.todayTotals(&s.snap)
	if view.State == models.ShiftOpen {
		view.ExpectedCash = s.expectedCash(&s.snap)
	}
	return view
}

// OpenShift starts the session with the operator-supplied float.
func (s *Store) OpenShift(openingFloat float64) error {
	if !validNumber(openingFloat) || openingFloat < 0 {
		return fmt.Errorf("%w: opening float must be a non-negative number", ErrValidation)
	}
	return s.mutate(func(snap *Snapshot) error {
		if snap.Shift.State != models.ShiftNotStarted {
			return fmt.Errorf("%w: shift already started", ErrValidation)
		}
		snap.Shift = models.ShiftLedger{
			State:        models.ShiftOpen,
			OpeningFloat: SafeRound(openingFloat),
			OpenedAt:     s.now(),
		}
		return nil
	})
}

// BeginCount freezes the expected cash as of this instant and moves the
// shift into the count-entry state.
func (s *Store) BeginCount() (float64, error) {
	var frozen float64
	err := s.mutate(func(snap *Snapshot) error {
		if snap.Shift.State != models.ShiftOpen {
			return fmt.Errorf("%w: shift is not open", ErrValidation)
		}
		frozen = s.expectedCash(snap)
		snap.Shift.State = models.ShiftCounting
		snap.Shift.ExpectedCash = frozen
		snap.Shift.HasCount = false
		return nil
	})
	return frozen, err
}

// SubmitCount records the counted cash and its variance against the frozen
// expected value. A bad number leaves the operator in the editable
// count-entry state.
func (s *Store) SubmitCount(countedCash float64) (float64, error) {
	if !validNumber(countedCash) {
		return 0, fmt.Errorf("%w: counted cash must be a number", ErrValidation)
	}
	var variance float64
	err := s.mutate(func(snap *Snapshot) error {
		if snap.Shift.State != models.ShiftCounting {
			return fmt.Errorf("%w: no cash count in progress", ErrValidation)
		}
		snap.Shift.CountedCash = SafeRound(countedCash)
		snap.Shift.Variance = SafeRound(snap.Shift.CountedCash - snap.Shift.ExpectedCash)
		snap.Shift.HasCount = true
		variance = snap.Shift.Variance
		return nil
	})
	return variance, err
}

// CloseShift finalizes the count.
func (s *Store) CloseShift() error {
	return s.mutate(func(snap *Snapshot) error {
		if snap.Shift.State != models.ShiftCounting {
			return fmt.Errorf("%w: no cash count in progress", ErrValidation)
		}
		if !snap.Shift.HasCount {
			return fmt.Errorf("%w: counted cash has not been entered", ErrValidation)
		}
		snap.Shift.State = models.ShiftClosed
		snap.Shift.ClosedAt = s.now()
		return nil
	})
}

// ReopenShift is the explicit correction action: it discards the counted
// state and returns the shift to live accumulation.
func (s *Store) ReopenShift() error {
	return s.mutate(func(snap *Snapshot) error {
		if snap.Shift.State != models.ShiftClosed {
			return fmt.Errorf("%w: shift is not closed", ErrValidation)
		}
		snap.Shift.State = models.ShiftOpen
		snap.Shift.ExpectedCash = 0
		snap.Shift.CountedCash = 0
		snap.Shift.Variance = 0
		snap.Shift.HasCount = false
		snap.Shift.ClosedAt = time.Time{}
		return nil
	})
}

// EndShift clears the session pointer. The global sale and expense history
// is untouched; only the shift-scoped state resets.
func (s *Store) EndShift() error {
	return s.mutate(func(snap *Snapshot) error {
		if snap.Shift.State != models.ShiftOpen && snap.Shift.State != models.ShiftClosed {
			return fmt.Errorf("%w: no shift to end", ErrValidation)
		}
		snap.Shift = models.ShiftLedger{State: models.ShiftNotStarted}
		return nil
	})
}
