package statement

import (
	"regexp"
	"strings"

	"github.com/MikeTheGreat/PersonalTool/internal/model"
)

// MatchMode controls how a marker is compared against a token.
type MatchMode uint8

const (
	// MatchContains fires when the marker appears anywhere in the token.
	MatchContains MatchMode = iota
	// MatchExact fires only when the token is the marker.
	MatchExact
)

// Section is a category header printed inside the transaction listing.
type Section struct {
	Category model.Category
	Marker   string
	Match    MatchMode
}

// Layout describes the columns of one transaction line.
type Layout struct {
	// PostDate is set when each line starts with a post date ahead of the
	// transaction date.
	PostDate bool
	// Amount, when set, restricts which tokens are taken as the amount.
	// Tokens that do not match are skipped.
	Amount *regexp.Regexp
}

// Classifier picks the bucket for a transaction from a statement that has no
// section headers. rawAmount is the amount token as printed.
type Classifier func(txn model.Transaction, rawAmount string) model.Category

// Vendor is everything the engine needs to know about one statement format.
type Vendor struct {
	Name        string
	AccountName string

	// Anchor finds the statement date. The first submatch must be MM/DD/YYYY.
	Anchor *regexp.Regexp

	DetailsMarker   string
	ContinuedMarker string // empty when the format never splits the listing
	EndMarker       string

	// Sections is empty for formats that list every transaction together;
	// Classify is used for those instead.
	Sections []Section
	Classify Classifier

	Layout   Layout
	Rollover Rollover

	// Detect holds strings that all appear in this vendor's statements.
	Detect []string
}

// Unsectioned reports whether the vendor lists transactions without
// category headers.
func (v *Vendor) Unsectioned() bool {
	return len(v.Sections) == 0
}

// Venmo returns the Venmo Credit Card statement format.
func Venmo() *Vendor {
	return &Vendor{
		Name:            "venmo",
		AccountName:     "Venmo Credit Card",
		Anchor:          regexp.MustCompile(`Previous balance as of (\d\d/\d\d/\d\d\d\d)`),
		DetailsMarker:   "Transaction details",
		ContinuedMarker: "(Continued on next page)",
		EndMarker:       "Total fees charged this period",
		Sections: []Section{
			{Category: model.CategoryPayments, Marker: "Payments", Match: MatchExact},
			{Category: model.CategoryOtherCredits, Marker: "Other credits"},
			{Category: model.CategoryPurchases, Marker: "Purchases and other debits"},
		},
		Rollover: RolloverDecemberAnchor,
		Detect:   []string{"Previous balance as of", "Total fees charged this period"},
	}
}

var (
	becuAmount  = regexp.MustCompile(`-?\$(\d{1,3}(?:,\d{3})*(?:\.\d{2})?|\d+(\.\d{2})?)`)
	becuPayment = regexp.MustCompile(`PAYMENT - THANK YOU`)
)

// BECU returns the BECU VISA statement format.
func BECU() *Vendor {
	return &Vendor{
		Name:          "becu",
		AccountName:   "BECU VISA Card",
		Anchor:        regexp.MustCompile(`(\d\d/\d\d/\d\d\d\d)`),
		DetailsMarker: "Transactions",
		EndMarker:     "TOTAL FEES FOR THIS PERIOD",
		Classify:      classifyBECU,
		Layout: Layout{
			PostDate: true,
			Amount:   becuAmount,
		},
		Rollover: RolloverDecemberAnchor,
		Detect:   []string{"TOTAL FEES FOR THIS PERIOD"},
	}
}

// classifyBECU treats charges (printed as $x.xx) as purchases and splits
// credits (-$x.xx) into payments and everything else.
func classifyBECU(txn model.Transaction, rawAmount string) model.Category {
	switch {
	case strings.HasPrefix(rawAmount, "$"):
		return model.CategoryPurchases
	case becuPayment.MatchString(txn.Description):
		return model.CategoryPayments
	default:
		return model.CategoryOtherCredits
	}
}
