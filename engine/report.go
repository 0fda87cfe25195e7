package engine

import (
	"sort"

	"backend/models"
)

// lowStockShare flags batches whose remaining stock fell under this share
// of their sellable weight.
const lowStockShare = 0.1

// DashboardReport is the read-only projection behind the main dashboard.
type DashboardReport struct {
	TodayRevenue    float64 `json:"todayrevenue"`
	TodayDeductions float64 `json:"todaydeductions"`
	TodayProfit     float64 `json:"todayprofit"`
	CashOnHand      float64 `json:"cashonhand"`
	BankBalance     float64 `json:"bankbalance"`
	OperatorXP      int     `json:"operatorxp"`
	ShiftState      string  `json:"shiftstate"`

	LowStock     []models.Batch    `json:"lowstock"`
	SoldOut      []models.Batch    `json:"soldout"`
	TopCustomers []models.Customer `json:"topcustomers"`
}

func (s *Store) Dashboard() DashboardReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := DashboardReport{
		CashOnHand:   s.snap.Settings.CashOnHand,
		BankBalance:  s.snap.Settings.BankBalance,
		OperatorXP:   s.snap.Settings.OperatorXP,
		ShiftState:   s.snap.Shift.State,
		LowStock:     []models.Batch{},
		SoldOut:      []models.Batch{},
		TopCustomers: []models.Customer{},
	}
	report.TodayRevenue, report.TodayDeductions = s.todayTotals(&s.snap)

	now := s.now()
	var profit float64
	for _, sale := range s.snap.Sales {
		if SameCalendarDay(sale.Timestamp, now) {
			profit += sale.Profit
		}
	}
	report.TodayProfit = SafeRound(profit)

	for _, b := range s.snap.Batches {
		switch {
		case b.SoldOut():
			report.SoldOut = append(report.SoldOut, b)
		case b.CurrentStock < b.SellableWeight*lowStockShare:
			report.LowStock = append(report.LowStock, b)
		}
	}

	customers := append([]models.Customer(nil), s.snap.Customers...)
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].TotalSpent > customers[j].TotalSpent
	})
	if len(customers) > 5 {
		customers = customers[:5]
	}
	for _, c := range customers {
		c.History = nil
		report.TopCustomers = append(report.TopCustomers, c)
	}
	return report
}
