package models

// BackupVersion is stamped on every exported document. Restore accepts any
// document carrying a version and timestamp and fills in fields that did not
// exist in earlier versions.
const BackupVersion = "2"

// BackupDocument is the portable, JSON-serializable copy of the full state
// graph. Restoring it is all-or-nothing.
type BackupDocument struct {
	Version   string `bson:"version" json:"version"`
	Timestamp string `bson:"timestamp" json:"timestamp"`

	Batches   []Batch              `bson:"batches" json:"batches"`
	Customers []Customer           `bson:"customers" json:"customers"`
	Sales     []Sale               `bson:"sales" json:"sales"`
	Expenses  []OperationalExpense `bson:"operationalExpenses" json:"operationalExpenses"`
	Missions  []Mission            `bson:"missions" json:"missions"`
	Settings  Settings             `bson:"settings" json:"settings"`
	Shift     ShiftLedger          `bson:"shift" json:"shift"`
}
