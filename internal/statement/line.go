package statement

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeTheGreat/PersonalTool/internal/model"
)

// Context carries the dates that year inference depends on. One Context is
// shared by a Reader and its LineReader for a single statement.
type Context struct {
	// Anchor is the statement's own date. It is set once.
	Anchor time.Time
	// LastResolved is the most recent transaction date seen.
	LastResolved time.Time
}

// SetAnchor records the statement date. Later calls are ignored and report false.
func (c *Context) SetAnchor(t time.Time) bool {
	if !c.Anchor.IsZero() {
		return false
	}
	c.Anchor = t
	return true
}

// LineState is the position of a LineReader within one transaction line.
type LineState uint8

const (
	LineAwaitingPostDate LineState = iota
	LineAwaitingDate
	LineAwaitingReference
	LineAwaitingDescription
	LineAwaitingAmount
	LineComplete
)

func (s LineState) String() string {
	switch s {
	case LineAwaitingPostDate:
		return "awaiting-post-date"
	case LineAwaitingDate:
		return "awaiting-date"
	case LineAwaitingReference:
		return "awaiting-reference"
	case LineAwaitingDescription:
		return "awaiting-description"
	case LineAwaitingAmount:
		return "awaiting-amount"
	case LineComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var nonAmount = regexp.MustCompile(`[^\d.]`)

// LineReader assembles one transaction from consecutive tokens.
type LineReader struct {
	ctx      *Context
	layout   Layout
	rollover Rollover

	state     LineState
	txn       model.Transaction
	rawAmount string
}

// NewLineReader returns a LineReader positioned at the start of a line.
func NewLineReader(ctx *Context, layout Layout, rollover Rollover) *LineReader {
	lr := &LineReader{ctx: ctx, layout: layout, rollover: rollover}
	lr.Reset()
	return lr
}

// Reset drops any partial transaction.
func (lr *LineReader) Reset() {
	lr.txn = model.Transaction{}
	lr.rawAmount = ""
	if lr.layout.PostDate {
		lr.state = LineAwaitingPostDate
	} else {
		lr.state = LineAwaitingDate
	}
}

// State returns the current position.
func (lr *LineReader) State() LineState { return lr.state }

// Transaction returns the assembled transaction. It is only meaningful once
// State is LineComplete.
func (lr *LineReader) Transaction() model.Transaction { return lr.txn }

// RawAmount returns the amount token exactly as printed.
func (lr *LineReader) RawAmount() string { return lr.rawAmount }

// Feed consumes one token and returns the resulting state.
func (lr *LineReader) Feed(token string) (LineState, error) {
	switch lr.state {
	case LineAwaitingPostDate:
		if !looksLikeDate(token) {
			break
		}
		d, err := ResolveDate(token, lr.ctx.LastResolved, lr.ctx.Anchor, lr.rollover)
		if err != nil {
			return lr.state, err
		}
		lr.txn.PostDate = d
		lr.state = LineAwaitingDate

	case LineAwaitingDate:
		if !looksLikeDate(token) {
			break
		}
		d, err := ResolveDate(token, lr.ctx.LastResolved, lr.ctx.Anchor, lr.rollover)
		if err != nil {
			return lr.state, err
		}
		lr.txn.Date = d
		lr.ctx.LastResolved = d
		lr.state = LineAwaitingReference

	case LineAwaitingReference:
		lr.txn.Reference = token
		lr.state = LineAwaitingDescription

	case LineAwaitingDescription:
		lr.txn.Description = token
		lr.state = LineAwaitingAmount

	case LineAwaitingAmount:
		if lr.layout.Amount != nil && !lr.layout.Amount.MatchString(token) {
			break
		}
		amt, err := decimal.NewFromString(nonAmount.ReplaceAllString(token, ""))
		if err != nil {
			return lr.state, &MalformedAmountError{Token: token, Err: err}
		}
		lr.txn.Amount = amt
		lr.rawAmount = token
		lr.state = LineComplete

	case LineComplete:
	}
	return lr.state, nil
}
