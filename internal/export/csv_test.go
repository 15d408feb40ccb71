package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeTheGreat/PersonalTool/internal/model"
)

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{
			Date:        time.Date(2021, time.December, 29, 0, 0, 0, 0, time.UTC),
			PostDate:    time.Date(2021, time.December, 30, 0, 0, 0, 0, time.UTC),
			Reference:   "P9283746",
			Description: "PAYMENT - THANK YOU",
			Amount:      decimal.RequireFromString("-100"),
		},
		{
			Date:        time.Date(2022, time.January, 2, 0, 0, 0, 0, time.UTC),
			Reference:   "R5550002",
			Description: `SHELL OIL 5744, SEATTLE "WA"`,
			Amount:      decimal.RequireFromString("38.5"),
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "Venmo Credit Card", sampleTransactions()))

	want := "Account Name: Venmo Credit Card\n" +
		"Date,Reference Num,Description,Amount\n" +
		"12/29/2021,P9283746,PAYMENT - THANK YOU,-100.00\n" +
		"01/02/2022,R5550002,\"SHELL OIL 5744, SEATTLE \"\"WA\"\"\",38.50\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_NoPostDate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "BECU VISA Card", sampleTransactions()[:1]))
	assert.NotContains(t, buf.String(), "12/30/2021")
}

func TestMarshalRow_ZeroAmounts(t *testing.T) {
	tests := []struct {
		category model.Category
		want     string
	}{
		{model.CategoryPayments, "-0.00"},
		{model.CategoryOtherCredits, "-0.00"},
		{model.CategoryPurchases, "0.00"},
		{model.CategoryUnknown, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			txn := model.Transaction{
				Date:     time.Date(2022, time.January, 3, 0, 0, 0, 0, time.UTC),
				Amount:   decimal.RequireFromString("0.00").Neg(),
				Category: tt.category,
			}
			assert.Equal(t, tt.want, MarshalRow(txn).Amount)
		})
	}
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "BECU VISA Card", nil))
	assert.True(t, strings.HasPrefix(buf.String(), "Account Name: BECU VISA Card\n"))
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale\n", 100)), 0o644))

	require.NoError(t, WriteFile(path, "Venmo Credit Card", sampleTransactions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestWriteFile_BadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.csv"), "x", nil)
	assert.ErrorContains(t, err, "creating")
}

func TestRead_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	txns := sampleTransactions()
	require.NoError(t, Write(&buf, "Venmo Credit Card", txns))

	account, got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Venmo Credit Card", account)
	require.Len(t, got, 2)
	for i := range txns {
		assert.Equal(t, txns[i].Date, got[i].Date)
		assert.Equal(t, txns[i].Reference, got[i].Reference)
		assert.Equal(t, txns[i].Description, got[i].Description)
		assert.True(t, txns[i].Amount.Equal(got[i].Amount), "amount %s vs %s", txns[i].Amount, got[i].Amount)
		assert.False(t, got[i].HasPostDate())
	}
}

func TestRead_Errors(t *testing.T) {
	_, _, err := Read(strings.NewReader("Date,Reference Num,Description,Amount\n"))
	assert.ErrorContains(t, err, "not an account row")

	_, _, err = Read(strings.NewReader("Account Name: X\nDate,Reference Num,Description,Amount\n2021-12-29,R,D,1.00\n"))
	assert.ErrorContains(t, err, "parsing date")

	_, _, err = Read(strings.NewReader("Account Name: X\nDate,Reference Num,Description,Amount\n12/29/2021,R,D,lots\n"))
	assert.ErrorContains(t, err, "parsing amount")
}
