// Package convert runs statement documents through the parser and writes
// the resulting transactions out as CSV.
package convert

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/MikeTheGreat/PersonalTool/internal/export"
	"github.com/MikeTheGreat/PersonalTool/internal/model"
	"github.com/MikeTheGreat/PersonalTool/internal/pdftext"
	"github.com/MikeTheGreat/PersonalTool/internal/statement"
)

// ErrUnknownFormat is returned when no vendor is given and none is detected.
var ErrUnknownFormat = errors.New("statement format not recognized")

// Result is the raw outcome of reading one statement.
type Result struct {
	Vendor  *statement.Vendor
	Dates   statement.Context
	Buckets map[model.Category][]model.Transaction
	// Finished is false when the input ran out before the end marker.
	Finished bool
}

// Parse feeds pages through a Reader for v until the listing ends or the
// tokens run out.
func Parse(v *statement.Vendor, pages pdftext.Pages, log zerolog.Logger) (*Result, error) {
	r := statement.NewReader(v, log)
	for p := 0; p < len(pages) && !r.Done(); p++ {
		for i := 0; i < len(pages[p]) && !r.Done(); i++ {
			if err := r.Process(pages[p][i]); err != nil {
				return nil, fmt.Errorf("page %d token %d: %w", p+1, i+1, err)
			}
		}
	}

	if r.Context().Anchor.IsZero() {
		return nil, &statement.MalformedDateError{Reason: "statement date marker not found, cannot infer transaction years"}
	}
	if !r.Done() {
		log.Warn().Stringer("state", r.State()).Msg("input ended before the end of the transaction listing")
	}

	res := &Result{
		Vendor:   v,
		Dates:    *r.Context(),
		Buckets:  make(map[model.Category][]model.Transaction),
		Finished: r.Done(),
	}
	for _, c := range model.Categories {
		res.Buckets[c] = r.Transactions(c)
	}
	return res, nil
}

// Normalize signs credits negative and returns every transaction in date
// order. Transactions on the same date keep payments, other credits,
// purchases order, and statement order within each.
func Normalize(res *Result) []model.Transaction {
	var all []model.Transaction
	for _, c := range model.Categories {
		for _, txn := range res.Buckets[c] {
			if c.IsCredit() {
				txn.Amount = txn.Amount.Neg()
			}
			all = append(all, txn)
		}
	}
	slices.SortStableFunc(all, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return all
}

// Summary reports what a conversion produced.
type Summary struct {
	Vendor      string
	Account     string
	Source      string
	Destination string
	// StatementDate is the anchor the transaction years were inferred from.
	StatementDate time.Time
	Counts        map[model.Category]int
	Sums          map[model.Category]decimal.Decimal // unsigned, as printed on the statement
	Transactions  []model.Transaction
}

// Rows is the number of transaction rows written.
func (s *Summary) Rows() int { return len(s.Transactions) }

func summarize(res *Result, txns []model.Transaction) *Summary {
	s := &Summary{
		Vendor:        res.Vendor.Name,
		Account:       res.Vendor.AccountName,
		StatementDate: res.Dates.Anchor,
		Counts:        make(map[model.Category]int),
		Sums:          make(map[model.Category]decimal.Decimal),
		Transactions:  txns,
	}
	for _, c := range model.Categories {
		sum := decimal.Zero
		for _, txn := range res.Buckets[c] {
			sum = sum.Add(txn.Amount)
		}
		s.Counts[c] = len(res.Buckets[c])
		s.Sums[c] = sum
	}
	return s
}

// Converter turns statement files into CSV exports.
type Converter struct {
	// Vendor fixes the statement format. When nil the format is detected
	// using Registry.
	Vendor   *statement.Vendor
	Registry *statement.Registry
	Log      zerolog.Logger
}

// Convert reads source and writes the export to destination, replacing any
// existing file.
func (c *Converter) Convert(ctx context.Context, source, destination string) (*Summary, error) {
	pages, err := pdftext.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	v, err := c.vendorFor(pages)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	log := c.Log.With().Str("source", source).Logger()

	res, err := Parse(v, pages, log)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	txns := Normalize(res)

	if err := export.WriteFile(destination, v.AccountName, txns); err != nil {
		return nil, err
	}

	s := summarize(res, txns)
	s.Source = source
	s.Destination = destination
	log.Info().
		Str("vendor", v.Name).
		Str("statement_date", s.StatementDate.Format("01/02/2006")).
		Str("destination", destination).
		Int("payments", s.Counts[model.CategoryPayments]).
		Int("other_credits", s.Counts[model.CategoryOtherCredits]).
		Int("purchases", s.Counts[model.CategoryPurchases]).
		Msg("converted statement")
	return s, nil
}

func (c *Converter) vendorFor(pages pdftext.Pages) (*statement.Vendor, error) {
	if c.Vendor != nil {
		return c.Vendor, nil
	}
	reg := c.Registry
	if reg == nil {
		reg = statement.DefaultRegistry()
	}
	v := reg.Detect(pages)
	if v == nil {
		return nil, ErrUnknownFormat
	}
	c.Log.Debug().Str("vendor", v.Name).Msg("detected statement format")
	return v, nil
}
