package domain

// TransactionType is the direction of a stock movement
type TransactionType string

const (
	TransactionIn  TransactionType = "IN"
	TransactionOut TransactionType = "OUT"
)

// Valid reports whether t is one of the two known directions
func (t TransactionType) Valid() bool {
	return t == TransactionIn || t == TransactionOut
}

// Sign is +1 for IN and -1 for OUT
func (t TransactionType) Sign() int {
	if t == TransactionIn {
		return 1
	}
	return -1
}

// Transaction represents one stock movement event. ItemName and Category
// are copied from the item when the movement is recorded.
type Transaction struct {
	ID                   string          `json:"id" gorm:"primaryKey"`
	ItemID               string          `json:"itemId" gorm:"index"`
	ItemName             string          `json:"itemName"`
	Category             string          `json:"category"`
	Date                 string          `json:"date" gorm:"index"`
	Type                 TransactionType `json:"type" gorm:"type:varchar(3)"`
	Quantity             int             `json:"quantity"`
	Worker               string          `json:"worker"`
	Department           string          `json:"department"`
	Reason               string          `json:"reason"`
	CurrentStockSnapshot int             `json:"currentStockSnapshot"`
}

// Impact is the signed effect of the transaction on stock
func (t Transaction) Impact() int {
	return t.Type.Sign() * t.Quantity
}
