package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/MikeTheGreat/PersonalTool/internal/model"
)

// AccountPrefix starts the first row of every export. Importers such as
// KMyMoney use it to pick the target account without asking.
const AccountPrefix = "Account Name: "

const dateFormat = "01/02/2006"

// Row is one exported transaction. The post date is deliberately absent.
type Row struct {
	Date        string `csv:"Date"`
	Reference   string `csv:"Reference Num"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
}

// Write writes the account row, the column header and one row per transaction.
func Write(w io.Writer, accountName string, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{AccountPrefix + accountName}); err != nil {
		return fmt.Errorf("writing account row: %w", err)
	}

	rows := make([]Row, len(txns))
	for i, txn := range txns {
		rows[i] = MarshalRow(txn)
	}
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return fmt.Errorf("writing transactions: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates or truncates path and writes the export to it.
func WriteFile(path, accountName string, txns []model.Transaction) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return Write(f, accountName, txns)
}

// Read parses an export written by Write.
func Read(r io.Reader) (accountName string, txns []model.Transaction, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err != nil {
		return "", nil, fmt.Errorf("reading account row: %w", err)
	}
	if len(first) != 1 || !strings.HasPrefix(first[0], AccountPrefix) {
		return "", nil, fmt.Errorf("first row %q is not an account row", strings.Join(first, ","))
	}
	accountName = strings.TrimPrefix(first[0], AccountPrefix)

	var rows []Row
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return "", nil, fmt.Errorf("reading transactions: %w", err)
	}
	for i, row := range rows {
		txn, err := UnmarshalRow(row)
		if err != nil {
			return "", nil, fmt.Errorf("row %d: %w", i+3, err)
		}
		txns = append(txns, txn)
	}
	return accountName, txns, nil
}

// MarshalRow converts a Transaction to its exported form.
func MarshalRow(txn model.Transaction) Row {
	return Row{
		Date:        txn.Date.Format(dateFormat),
		Reference:   txn.Reference,
		Description: txn.Description,
		Amount:      formatAmount(txn),
	}
}

// formatAmount keeps the sign on zero credits, which decimal cannot carry.
func formatAmount(txn model.Transaction) string {
	if txn.Category.IsCredit() && txn.Amount.IsZero() {
		return "-0.00"
	}
	return txn.Amount.StringFixed(2)
}

// UnmarshalRow converts an exported row back to a Transaction. Category and
// post date are not recoverable.
func UnmarshalRow(row Row) (model.Transaction, error) {
	date, err := time.Parse(dateFormat, row.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", row.Date, err)
	}
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", row.Amount, err)
	}
	return model.Transaction{
		Date:        date,
		Reference:   row.Reference,
		Description: row.Description,
		Amount:      amount,
	}, nil
}
