package statement

import (
	"github.com/rs/zerolog"

	"github.com/MikeTheGreat/PersonalTool/internal/model"
)

// State is the position of a Reader within a statement.
type State uint8

const (
	StateAwaitingStatementDate State = iota
	StateAwaitingTransactionSection
	StateAwaitingSectionType
	StateInPayments
	StateInOtherCredits
	StateInPurchases
	StateInUnsectioned
	StateDone
)

func (s State) String() string {
	switch s {
	case StateAwaitingStatementDate:
		return "awaiting-statement-date"
	case StateAwaitingTransactionSection:
		return "awaiting-transaction-section"
	case StateAwaitingSectionType:
		return "awaiting-section-type"
	case StateInPayments:
		return "payments"
	case StateInOtherCredits:
		return "other-credits"
	case StateInPurchases:
		return "purchases"
	case StateInUnsectioned:
		return "transactions"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

func stateFor(c model.Category) State {
	switch c {
	case model.CategoryPayments:
		return StateInPayments
	case model.CategoryOtherCredits:
		return StateInOtherCredits
	case model.CategoryPurchases:
		return StateInPurchases
	default:
		return StateAwaitingSectionType
	}
}

func categoryFor(s State) model.Category {
	switch s {
	case StateInPayments:
		return model.CategoryPayments
	case StateInOtherCredits:
		return model.CategoryOtherCredits
	case StateInPurchases:
		return model.CategoryPurchases
	default:
		return model.CategoryUnknown
	}
}

// Reader walks the tokens of one statement and sorts completed transactions
// into per-category buckets. A Reader is used for a single statement and is
// not safe for concurrent use.
type Reader struct {
	vendor  *Vendor
	ctx     *Context
	line    *LineReader
	markers *markerSet
	log     zerolog.Logger

	state State
	// resume is the listing state to return to after a continuation. Zero
	// until the first listing state is entered.
	resume  State
	buckets map[model.Category][]model.Transaction
}

// NewReader returns a Reader for statements in vendor's format.
func NewReader(vendor *Vendor, log zerolog.Logger) *Reader {
	ctx := &Context{}
	return &Reader{
		vendor:  vendor,
		ctx:     ctx,
		line:    NewLineReader(ctx, vendor.Layout, vendor.Rollover),
		markers: newMarkerSet(vendor),
		log:     log.With().Str("vendor", vendor.Name).Logger(),
		buckets: make(map[model.Category][]model.Transaction),
	}
}

// State returns the current state.
func (r *Reader) State() State { return r.state }

// Done reports whether the end of the transaction listing was reached.
func (r *Reader) Done() bool { return r.state == StateDone }

// Context returns the dates gathered so far.
func (r *Reader) Context() *Context { return r.ctx }

// Transactions returns the completed transactions for c in statement order.
func (r *Reader) Transactions(c model.Category) []model.Transaction {
	return r.buckets[c]
}

// Process consumes one token.
func (r *Reader) Process(token string) error {
	r.log.Debug().Stringer("state", r.state).Str("token", token).Msg("token")

	switch r.state {
	case StateDone:
		return nil

	case StateAwaitingStatementDate:
		m := r.vendor.Anchor.FindStringSubmatch(token)
		if m == nil {
			return nil
		}
		anchor, err := ParseAnchor(m[1])
		if err != nil {
			return err
		}
		r.ctx.SetAnchor(anchor)
		r.log.Info().Str("anchor", anchor.Format(anchorFormat)).Msg("found statement date")
		r.transition(StateAwaitingTransactionSection)

	case StateAwaitingTransactionSection:
		if !r.markers.match(token).details {
			return nil
		}
		switch {
		case r.resume != 0:
			r.transition(r.resume)
		case r.vendor.Unsectioned():
			r.line.Reset()
			r.resume = StateInUnsectioned
			r.transition(StateInUnsectioned)
		default:
			r.transition(StateAwaitingSectionType)
		}

	case StateAwaitingSectionType:
		h := r.markers.match(token)
		if c, ok := h.otherSection(model.CategoryUnknown); ok {
			r.enterSection(c)
			return nil
		}
		switch {
		case h.continued:
			r.line.Reset()
			r.transition(StateAwaitingTransactionSection)
		case h.end:
			r.transition(StateDone)
		}

	case StateInPayments, StateInOtherCredits, StateInPurchases, StateInUnsectioned:
		h := r.markers.match(token)
		if c, ok := h.otherSection(categoryFor(r.state)); ok {
			r.enterSection(c)
			return nil
		}
		switch {
		case h.continued:
			r.line.Reset()
			r.transition(StateAwaitingTransactionSection)
		case h.end:
			r.transition(StateDone)
		default:
			return r.feed(token)
		}
	}
	return nil
}

func (r *Reader) enterSection(c model.Category) {
	r.line.Reset()
	s := stateFor(c)
	r.resume = s
	r.transition(s)
}

func (r *Reader) feed(token string) error {
	st, err := r.line.Feed(token)
	if err != nil {
		return err
	}
	if st != LineComplete {
		return nil
	}

	txn := r.line.Transaction()
	c := categoryFor(r.state)
	if r.state == StateInUnsectioned && r.vendor.Classify != nil {
		c = r.vendor.Classify(txn, r.line.RawAmount())
	}
	if !c.Valid() {
		return &UnexpectedCategoryError{Category: c, State: r.state}
	}
	txn.Category = c
	r.buckets[c] = append(r.buckets[c], txn)
	r.log.Debug().
		Stringer("category", c).
		Str("date", txn.Date.Format(anchorFormat)).
		Str("reference", txn.Reference).
		Str("amount", txn.Amount.StringFixed(2)).
		Msg("transaction")
	r.line.Reset()
	return nil
}

func (r *Reader) transition(to State) {
	if to == r.state {
		return
	}
	r.log.Debug().Stringer("from", r.state).Stringer("to", to).Msg("state change")
	r.state = to
}
