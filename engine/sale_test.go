package engine

import (
	"errors"
	"testing"

	"backend/models"
)

func TestProcessSaleScenario(t *testing.T) {
	s := testStore()
	batchID := mustAddBatch(t, s, standardBatch())
	c, _ := s.AddCustomer("Dana", "555-0101")

	res, err := s.ProcessSale(batchID, c.ID, 10, 150, models.PaymentCash)
	if err != nil {
		t.Fatalf("ProcessSale: %v", err)
	}

	if res.Sale.CostBasis != 35.56 {
		t.Errorf("cost basis = %v, want 35.56", res.Sale.CostBasis)
	}
	if res.Sale.Profit != 114.44 {
		t.Errorf("profit = %v, want 114.44", res.Sale.Profit)
	}
	if res.Batch.CurrentStock != 80 {
		t.Errorf("stock after sale = %v, want 80", res.Batch.CurrentStock)
	}
	if res.Customer.TotalSpent != 150 {
		t.Errorf("total spent = %v, want 150", res.Customer.TotalSpent)
	}

	snap := s.Snapshot()
	if snap.Settings.CashOnHand != 150 {
		t.Errorf("cash on hand = %v, want 150", snap.Settings.CashOnHand)
	}
	if snap.Settings.BankBalance != 0 {
		t.Errorf("bank balance = %v, want untouched", snap.Settings.BankBalance)
	}
}

func TestProcessSaleBankMethodRoutesToBank(t *testing.T) {
	s := testStore()
	batchID := mustAddBatch(t, s, standardBatch())
	c, _ := s.AddCustomer("Dana", "")

	if _, err := s.ProcessSale(batchID, c.ID, 5, 80, models.PaymentBank); err != nil {
		t.Fatalf("ProcessSale: %v", err)
	}
	snap := s.Snapshot()
	if snap.Settings.BankBalance != 80 || snap.Settings.CashOnHand != 0 {
		t.Errorf("bank=%v cash=%v, want 80/0", snap.Settings.BankBalance, snap.Settings.CashOnHand)
	}
}

func TestProcessSaleInsufficientStockLeavesStateUnchanged(t *testing.T) {
	s := testStore()
	batchID := mustAddBatch(t, s, standardBatch())
	c, _ := s.AddCustomer("Dana", "")
	if _, err := s.ProcessSale(batchID, c.ID, 10, 150, models.PaymentCash); err != nil {
		t.Fatalf("setup sale: %v", err)
	}

	_, err := s.ProcessSale(batchID, c.ID, 85, 900, models.PaymentCash)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	b, _ := s.GetBatch(batchID)
	if b.CurrentStock != 80 {
		t.Errorf("stock = %v, failed sale must not touch it", b.CurrentStock)
	}
	cust, _ := s.GetCustomer(c.ID)
	if cust.TotalSpent != 150 || len(cust.History) != 1 {
		t.Error("failed sale must not touch the customer ledger")
	}
	if len(s.Sales()) != 1 {
		t.Error("failed sale must not be recorded")
	}
}

func TestProcessSaleExactRemainingStock(t *testing.T) {
	s := testStore()
	batchID := mustAddBatch(t, s, standardBatch())
	c, _ := s.AddCustomer("Dana", "")

	res, err := s.ProcessSale(batchID, c.ID, 90, 1000, models.PaymentCash)
	if err != nil {
		t.Fatalf("selling exact remaining stock must be legal: %v", err)
	}
	if res.Batch.CurrentStock != 0 {
		t.Errorf("stock = %v, want 0", res.Batch.CurrentStock)
	}
	if !res.Batch.SoldOut() {
		t.Error("zero stock should read as sold out")
	}
	if _, err := s.GetBatch(batchID); err != nil {
		t.Error("sold-out batch must not be deleted")
	}
}

func TestProcessSaleToleranceAcceptsNearEqualWeight(t *testing.T) {
	s := testStore()
	batchID := mustAddBatch(t, s, standardBatch())
	c, _ := s.AddCustomer("Dana", "")

	// 90.004 exceeds stock by less than the 0.005 tolerance.
	if _, err := s.ProcessSale(batchID, c.ID, 90.004, 900, models.PaymentCash); err != nil {
		t.Fatalf("within-tolerance sale rejected: %v", err)
	}
	b, _ := s.GetBatch(batchID)
	if b.CurrentStock < 0 {
		t.Errorf("stock = %v, must never go negative", b.CurrentStock)
	}
}

func TestProcessSaleValidation(t *testing.T) {
	s := testStore()
	batchID := mustAddBatch(t, s, standardBatch())
	c, _ := s.AddCustomer("Dana", "")

	cases := []struct {
		name    string
		batch   string
		cust    string
		weight  float64
		amount  float64
		wantErr error
	}{
		{"zero weight", batchID, c.ID, 0, 10, ErrValidation},
		{"weight rounds to zero", batchID, c.ID, 0.004, 10, ErrValidation},
		{"negative amount", batchID, c.ID, 1, -5, ErrValidation},
		{"unknown batch", "nope", c.ID, 1, 10, ErrNotFound},
		{"unknown customer", batchID, "nope", 1, 10, ErrNotFound},
	}
	for _, tc := range cases {
		if _, err := s.ProcessSale(tc.batch, tc.cust, tc.weight, tc.amount, models.PaymentCash); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestCustomerLedgerConsistency(t *testing.T) {
	s := testStore()
	batchID := mustAddBatch(t, s, standardBatch())
	c, _ := s.AddCustomer("Dana", "")

	amounts := []float64{19.99, 33.33, 0, 75.5}
	for _, a := range amounts {
		if _, err := s.ProcessSale(batchID, c.ID, 1, a, models.PaymentCash); err != nil {
			t.Fatalf("ProcessSale(%v): %v", a, err)
		}
	}

	cust, _ := s.GetCustomer(c.ID)
	var sum float64
	for _, sale := range cust.History {
		sum = SafeRound(sum + sale.Amount)
	}
	if cust.TotalSpent != sum {
		t.Errorf("totalSpent = %v, history sum = %v", cust.TotalSpent, sum)
	}
	if len(cust.History) != len(amounts) {
		t.Errorf("history length = %d, want %d", len(cust.History), len(amounts))
	}
}

func TestCostBasisFrozenAfterBatchEdit(t *testing.T) {
	s := testStore()
	batchID := mustAddBatch(t, s, standardBatch())
	c, _ := s.AddCustomer("Dana", "")

	res, err := s.ProcessSale(batchID, c.ID, 10, 150, models.PaymentCash)
	if err != nil {
		t.Fatalf("ProcessSale: %v", err)
	}

	in := standardBatch()
	in.PurchasePrice = 900
	if _, err := s.UpdateBatch(batchID, in); err != nil {
		t.Fatalf("UpdateBatch: %v", err)
	}
	if _, err := s.AddBatchExpense(batchID, "storage", 55); err != nil {
		t.Fatalf("AddBatchExpense: %v", err)
	}

	for _, sale := range s.Sales() {
		if sale.ID == res.Sale.ID && (sale.CostBasis != 35.56 || sale.Profit != 114.44) {
			t.Errorf("recorded sale changed: costBasis=%v profit=%v", sale.CostBasis, sale.Profit)
		}
	}
	cust, _ := s.GetCustomer(c.ID)
	if cust.History[0].CostBasis != 35.56 {
		t.Errorf("customer history copy changed: %v", cust.History[0].CostBasis)
	}
}
