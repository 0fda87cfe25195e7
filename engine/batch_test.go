package engine

import (
	"errors"
	"math"
	"testing"
	"time"
)

func testStore() *Store {
	fixed := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	return NewAt(func() time.Time { return fixed })
}

func mustAddBatch(t *testing.T, s *Store, in BatchInput) string {
	t.Helper()
	b, err := s.AddBatch(in)
	if err != nil {
		t.Fatalf("AddBatch: %v", err)
	}
	return b.ID
}

func standardBatch() BatchInput {
	return BatchInput{
		Name:           "Kilimanjaro AA",
		AcquiredWeight: 100,
		ProviderCut:    10,
		PurchasePrice:  300,
		Fees:           20,
	}
}

func TestAddBatchDerivedValues(t *testing.T) {
	s := testStore()
	b, err := s.AddBatch(standardBatch())
	if err != nil {
		t.Fatalf("AddBatch: %v", err)
	}

	if b.SellableWeight != 90 {
		t.Errorf("sellable weight = %v, want 90", b.SellableWeight)
	}
	want := 320.0 / 90.0
	if math.Abs(b.TrueCostPerUnit-want) > 1e-9 {
		t.Errorf("true cost per unit = %v, want %v", b.TrueCostPerUnit, want)
	}
	if b.CurrentStock != 90 {
		t.Errorf("initial stock = %v, want full sellable weight", b.CurrentStock)
	}
}

func TestRecomputeCostClampsDegenerateSellableWeight(t *testing.T) {
	s := testStore()
	b, err := s.AddBatch(BatchInput{
		Name:           "Bad paperwork",
		AcquiredWeight: 5,
		ProviderCut:    20,
		PurchasePrice:  100,
	})
	if err != nil {
		t.Fatalf("AddBatch: %v", err)
	}
	if b.SellableWeight != 0.1 {
		t.Errorf("sellable weight = %v, want floor 0.1", b.SellableWeight)
	}
	if b.TrueCostPerUnit != 1000 {
		t.Errorf("true cost per unit = %v, want 1000", b.TrueCostPerUnit)
	}
}

func TestAdjustmentShrinksStockInLockstep(t *testing.T) {
	s := testStore()
	id := mustAddBatch(t, s, standardBatch())

	b, err := s.RecordAdjustment(id, 5, 15)
	if err != nil {
		t.Fatalf("RecordAdjustment: %v", err)
	}
	if b.SellableWeight != 70 {
		t.Errorf("sellable weight = %v, want 70", b.SellableWeight)
	}
	if b.CurrentStock != 70 {
		t.Errorf("stock = %v, want clamped to 70", b.CurrentStock)
	}
}

func TestBatchExpenseFoldsIntoCost(t *testing.T) {
	s := testStore()
	id := mustAddBatch(t, s, standardBatch())

	b, err := s.AddBatchExpense(id, "repackaging", 40)
	if err != nil {
		t.Fatalf("AddBatchExpense: %v", err)
	}
	want := 360.0 / 90.0
	if math.Abs(b.TrueCostPerUnit-want) > 1e-9 {
		t.Errorf("cost with expense = %v, want %v", b.TrueCostPerUnit, want)
	}

	b, err = s.RemoveBatchExpense(id, b.ExtraExpenses[0].ID)
	if err != nil {
		t.Fatalf("RemoveBatchExpense: %v", err)
	}
	want = 320.0 / 90.0
	if math.Abs(b.TrueCostPerUnit-want) > 1e-9 {
		t.Errorf("cost after removal = %v, want %v", b.TrueCostPerUnit, want)
	}
}

func TestUpdateBatchRejectsNonNumericInput(t *testing.T) {
	s := testStore()
	id := mustAddBatch(t, s, standardBatch())

	in := standardBatch()
	in.Fees = math.NaN()
	if _, err := s.UpdateBatch(id, in); !errors.Is(err, ErrValidation) {
		t.Fatalf("UpdateBatch with NaN = %v, want ErrValidation", err)
	}

	b, _ := s.GetBatch(id)
	if b.Fees != 20 {
		t.Errorf("failed update must not change state, fees = %v", b.Fees)
	}
}

func TestDeleteBatchKeepsSaleHistory(t *testing.T) {
	s := testStore()
	id := mustAddBatch(t, s, standardBatch())
	c, _ := s.AddCustomer("Dana", "")
	if _, err := s.ProcessSale(id, c.ID, 10, 150, "cash"); err != nil {
		t.Fatalf("ProcessSale: %v", err)
	}

	if err := s.DeleteBatch(id); err != nil {
		t.Fatalf("DeleteBatch: %v", err)
	}
	if _, err := s.GetBatch(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted batch still resolves: %v", err)
	}

	sales := s.Sales()
	if len(sales) != 1 || sales[0].BatchName != "Kilimanjaro AA" {
		t.Fatal("sale must retain its denormalized batch name after deletion")
	}
}
