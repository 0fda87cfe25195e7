package engine

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"backend/models"
)

func populatedStore(t *testing.T) *Store {
	t.Helper()
	s := testStore()
	batchID := mustAddBatch(t, s, standardBatch())
	c, _ := s.AddCustomer("Dana", "555-0101")
	if _, err := s.ProcessSale(batchID, c.ID, 10, 150, models.PaymentCash); err != nil {
		t.Fatalf("ProcessSale: %v", err)
	}
	if _, err := s.AddExpense("bags", "supplies", 12.5); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if _, err := s.AddMission("First hundred", models.MetricTotalRevenue, 100, 50); err != nil {
		t.Fatalf("AddMission: %v", err)
	}
	if _, err := s.EvaluateMissions(); err != nil {
		t.Fatalf("EvaluateMissions: %v", err)
	}
	return s
}

func TestBackupRoundTrip(t *testing.T) {
	src := populatedStore(t)
	doc := src.ExportBackup()

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := DecodeBackup(raw)
	if err != nil {
		t.Fatalf("DecodeBackup: %v", err)
	}

	dst := testStore()
	if err := dst.RestoreBackup(decoded); err != nil {
		t.Fatalf("RestoreBackup: %v", err)
	}

	a, b := src.Snapshot(), dst.Snapshot()
	if !reflect.DeepEqual(a.Batches, b.Batches) {
		t.Errorf("batches differ\n got %+v\nwant %+v", b.Batches, a.Batches)
	}
	if !reflect.DeepEqual(a.Customers, b.Customers) {
		t.Error("customers differ after round trip")
	}
	if !reflect.DeepEqual(a.Sales, b.Sales) {
		t.Error("sales differ after round trip")
	}
	if !reflect.DeepEqual(a.Expenses, b.Expenses) {
		t.Error("expenses differ after round trip")
	}
	if !reflect.DeepEqual(a.Missions, b.Missions) {
		t.Error("missions differ after round trip")
	}
	if a.Settings != b.Settings {
		t.Errorf("settings differ: %+v vs %+v", a.Settings, b.Settings)
	}
	if a.Shift != b.Shift {
		t.Errorf("shift differs: %+v vs %+v", a.Shift, b.Shift)
	}
}

func TestRestoreAppliesDefaultsForOlderDocuments(t *testing.T) {
	// A v1-era document: batches carried no loss or tags, customers no
	// history section, and there was no shift block at all.
	raw := []byte(`{
		"version": "1",
		"timestamp": "2023-06-01T10:00:00Z",
		"batches": [{
			"id": "b1",
			"name": "Legacy lot",
			"acquiredweight": 100,
			"providercut": 10,
			"purchaseprice": 300,
			"fees": 20,
			"currentstock": 90
		}],
		"customers": [{"id": "c1", "name": "Old friend"}]
	}`)

	doc, err := DecodeBackup(raw)
	if err != nil {
		t.Fatalf("DecodeBackup: %v", err)
	}
	s := testStore()
	if err := s.RestoreBackup(doc); err != nil {
		t.Fatalf("RestoreBackup: %v", err)
	}

	snap := s.Snapshot()
	b := snap.Batches[0]
	if b.Loss != 0 {
		t.Errorf("missing loss should default to 0, got %v", b.Loss)
	}
	if b.Tags == nil || b.ExtraExpenses == nil {
		t.Error("missing collections should default to empty, not nil")
	}
	if b.SellableWeight != 90 {
		t.Errorf("derived sellable weight = %v, want recomputed 90", b.SellableWeight)
	}
	c := snap.Customers[0]
	if c.History == nil || c.TotalSpent != 0 {
		t.Error("customer defaults not applied")
	}
	if snap.Shift.State != models.ShiftNotStarted {
		t.Errorf("missing shift block should reset to NOT_STARTED, got %q", snap.Shift.State)
	}
}

func TestRestoreRejectsCorruptDocuments(t *testing.T) {
	s := populatedStore(t)
	before := s.Snapshot()

	cases := []struct {
		name string
		doc  models.BackupDocument
	}{
		{"no version", models.BackupDocument{Timestamp: "2024-01-01T00:00:00Z"}},
		{"no timestamp", models.BackupDocument{Version: "2"}},
		{"bad timestamp", models.BackupDocument{Version: "2", Timestamp: "yesterday"}},
		{"batch without id", models.BackupDocument{
			Version:   "2",
			Timestamp: "2024-01-01T00:00:00Z",
			Batches:   []models.Batch{{Name: "anonymous"}},
		}},
	}
	for _, tc := range cases {
		if err := s.RestoreBackup(tc.doc); !errors.Is(err, ErrCorruptBackup) {
			t.Errorf("%s: err = %v, want ErrCorruptBackup", tc.name, err)
		}
		after := s.Snapshot()
		if !reflect.DeepEqual(before.Batches, after.Batches) || !reflect.DeepEqual(before.Sales, after.Sales) {
			t.Fatalf("%s: failed restore must leave state untouched", tc.name)
		}
	}

	if _, err := DecodeBackup([]byte("{not json")); !errors.Is(err, ErrCorruptBackup) {
		t.Errorf("malformed JSON: err = %v, want ErrCorruptBackup", err)
	}
}

func TestRestoreClampsStockAgainstRecomputedWeight(t *testing.T) {
	raw := []byte(`{
		"version": "2",
		"timestamp": "2024-01-01T00:00:00Z",
		"batches": [{
			"id": "b1",
			"name": "Tampered",
			"acquiredweight": 50,
			"providercut": 10,
			"currentstock": 200
		}]
	}`)
	doc, err := DecodeBackup(raw)
	if err != nil {
		t.Fatalf("DecodeBackup: %v", err)
	}
	s := testStore()
	if err := s.RestoreBackup(doc); err != nil {
		t.Fatalf("RestoreBackup: %v", err)
	}
	b := s.Snapshot().Batches[0]
	if b.CurrentStock != 40 {
		t.Errorf("stock = %v, want clamped to sellable 40", b.CurrentStock)
	}
}
