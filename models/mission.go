package models

// Mission metric codes. Each code names a pure projection over the current
// snapshot; the engine resolves them through its metric registry so that
// missions survive backup round-trips without serializing functions.
const (
	MetricTotalRevenue       = "total_revenue"
	MetricTotalProfit        = "total_profit"
	MetricSalesCount         = "sales_count"
	MetricDistinctBatchesSold = "distinct_batches_sold"
	MetricCustomerCount      = "customer_count"
	MetricMaxCustomerLevel   = "max_customer_level"
)

type Mission struct {
	ID        string  `bson:"id" json:"id"`
	Title     string  `bson:"title" json:"title"`
	Metric    string  `bson:"metric" json:"metric"`
	GoalValue float64 `bson:"goalvalue" json:"goalvalue"`
	RewardXP  int     `bson:"rewardxp" json:"rewardxp"`

	Progress   float64 `bson:"progress" json:"progress"`
	IsComplete bool    `bson:"iscomplete" json:"iscomplete"`
	// IsClaimed only ever transitions false -> true, and only while
	// IsComplete holds. The reward is paid out exactly once.
	IsClaimed bool `bson:"isclaimed" json:"isclaimed"`
}

// Settings carries the operator profile and the running cash position.
type Settings struct {
	StoreName   string  `bson:"storename" json:"storename"`
	OperatorXP  int     `bson:"operatorxp" json:"operatorxp"`
	CashOnHand  float64 `bson:"cashonhand" json:"cashonhand"`
	BankBalance float64 `bson:"bankbalance" json:"bankbalance"`
}
