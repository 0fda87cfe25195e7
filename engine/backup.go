package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"backend/models"
)

// BackupFromSnapshot stamps a snapshot into the portable document form.
func BackupFromSnapshot(snap Snapshot, at time.Time) models.BackupDocument {
	return models.BackupDocument{
		Version:   models.BackupVersion,
		Timestamp: at.Format(time.RFC3339),
		Batches:   snap.Batches,
		Customers: snap.Customers,
		Sales:     snap.Sales,
		Expenses:  snap.Expenses,
		Missions:  snap.Missions,
		Settings:  snap.Settings,
		Shift:     snap.Shift,
	}
}

// ExportBackup produces the versioned, timestamped portable copy of the
// full state graph.
func (s *Store) ExportBackup() models.BackupDocument {
	return BackupFromSnapshot(s.Snapshot(), s.now())
}

// DecodeBackup parses raw bytes into a backup document.
func DecodeBackup(raw []byte) (models.BackupDocument, error) {
	var doc models.BackupDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.BackupDocument{}, fmt.Errorf("%w: %v", ErrCorruptBackup, err)
	}
	return doc, nil
}

// RestoreBackup replaces the whole state with the document's contents.
// Older documents get field-level defaults (absent loss reads as 0 through
// the codec, absent tags become an empty list, a missing shift section
// resets to NOT_STARTED) and every derived value is recomputed. The swap is
// all-or-nothing: any structural failure leaves existing state untouched.
func (s *Store) RestoreBackup(doc models.BackupDocument) error {
	if doc.Version == "" || doc.Timestamp == "" {
		return fmt.Errorf("%w: missing version or timestamp marker", ErrCorruptBackup)
	}
	if _, err := time.Parse(time.RFC3339, doc.Timestamp); err != nil {
		return fmt.Errorf("%w: unreadable timestamp %q", ErrCorruptBackup, doc.Timestamp)
	}

	next := Snapshot{
		Batches:   make([]models.Batch, 0, len(doc.Batches)),
		Customers: make([]models.Customer, 0, len(doc.Customers)),
		Sales:     append([]models.Sale{}, doc.Sales...),
		Expenses:  append([]models.OperationalExpense{}, doc.Expenses...),
		Missions:  append([]models.Mission{}, doc.Missions...),
		Settings:  doc.Settings,
		Shift:     doc.Shift,
	}

	for _, b := range doc.Batches {
		if b.ID == "" {
			return fmt.Errorf("%w: batch without id", ErrCorruptBackup)
		}
		if b.ExtraExpenses == nil {
			b.ExtraExpenses = []models.Expense{}
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}
		RecomputeCost(&b)
		next.Batches = append(next.Batches, b)
	}

	for _, c := range doc.Customers {
		if c.ID == "" {
			return fmt.Errorf("%w: customer without id", ErrCorruptBackup)
		}
		if c.History == nil {
			c.History = []models.Sale{}
		}
		var spent float64
		for _, sale := range c.History {
			spent += sale.Amount
		}
		c.TotalSpent = SafeRound(spent)
		next.Customers = append(next.Customers, c)
	}

	for i := range next.Sales {
		if next.Sales[i].PaymentMethod == "" {
			next.Sales[i].PaymentMethod = models.PaymentCash
		}
	}

	if next.Shift.State == "" {
		next.Shift.State = models.ShiftNotStarted
	}
	if next.Settings.StoreName == "" {
		next.Settings.StoreName = "Retail Ops"
	}

	s.Replace(next)
	return nil
}
