package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one line item reconstructed from a statement.
type Transaction struct {
	Date        time.Time
	PostDate    time.Time // zero when the statement has no post date column
	Reference   string
	Description string
	Amount      decimal.Decimal // non-negative as parsed, signed by Normalize
	Category    Category
}

// HasPostDate reports whether the statement supplied a post date.
func (t Transaction) HasPostDate() bool {
	return !t.PostDate.IsZero()
}

// Category is the statement section a transaction was listed under.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryPayments
	CategoryOtherCredits
	CategoryPurchases
)

// Categories lists the known categories in export order.
var Categories = []Category{CategoryPayments, CategoryOtherCredits, CategoryPurchases}

func (c Category) String() string {
	switch c {
	case CategoryPayments:
		return "payments"
	case CategoryOtherCredits:
		return "other credits"
	case CategoryPurchases:
		return "purchases"
	default:
		return "unknown"
	}
}

// IsCredit reports whether amounts in this category reduce the balance owed.
func (c Category) IsCredit() bool {
	return c == CategoryPayments || c == CategoryOtherCredits
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	return c >= CategoryPayments && c <= CategoryPurchases
}
