package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_DetectsVendor(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "venmo.csv")
	out, err := runTool(t, "convert", fixture(t, "venmo_statement.txt"), dst)
	require.NoError(t, err, out)

	assert.Contains(t, out, "Sum of payments: 100.00")
	assert.Contains(t, out, "Sum of other credits: 15.25")
	assert.Contains(t, out, "Sum of purchases: 1295.65")
	assert.Contains(t, out, "Wrote 6 transactions to "+dst)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	want, err := os.ReadFile(fixture(t, "venmo_statement.csv"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestConvert_ExplicitVendor(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "becu.csv")
	out, err := runTool(t, "c", "--vendor", "BECU", fixture(t, "becu_statement.txt"), dst)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Converted BECU VISA Card statement")
	assert.Contains(t, out, "Statement date: 12/01/2021")
	assert.Contains(t, out, "Wrote 5 transactions")
}

func TestConvert_Verbose(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "venmo.csv")
	out, err := runTool(t, "convert", "-v", fixture(t, "venmo_statement.txt"), dst)
	require.NoError(t, err, out)
	assert.Contains(t, out, "COSTCO WHSE #0001 SEATTLE WA")
	assert.Contains(t, out, "found statement date")
}

func TestConvert_LegacyVenmoCommand(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "venmo.csv")
	out, err := runTool(t, "v", "c", fixture(t, "venmo_statement.txt"), dst)
	require.NoError(t, err, out)
	_, err = os.Stat(dst)
	assert.NoError(t, err)
}

func TestConvert_UnknownVendor(t *testing.T) {
	out, err := runTool(t, "convert", "--vendor", "vemno", fixture(t, "venmo_statement.txt"), filepath.Join(t.TempDir(), "x.csv"))
	require.Error(t, err)
	assert.Contains(t, out, `unknown vendor "vemno" (did you mean venmo?)`)
}

func TestConvert_SourceMustBeFile(t *testing.T) {
	out, err := runTool(t, "convert", t.TempDir(), filepath.Join(t.TempDir(), "x.csv"))
	require.Error(t, err)
	assert.Contains(t, out, "must be a file")

	_, err = runTool(t, "convert", filepath.Join(t.TempDir(), "missing.pdf"), filepath.Join(t.TempDir(), "x.csv"))
	require.Error(t, err)
}

func TestConvert_MissingAnchor(t *testing.T) {
	src := filepath.Join(t.TempDir(), "broken.txt")
	require.NoError(t, os.WriteFile(src, []byte("Transaction details\nPurchases and other debits\n12/30\nR1\nX\n$1.00\nTotal fees charged this period\n"), 0o644))

	out, err := runTool(t, "convert", "--vendor", "venmo", src, filepath.Join(t.TempDir(), "x.csv"))
	require.Error(t, err)
	assert.Contains(t, out, "statement date marker not found")
}

func TestConvert_ConfigOverridesAccountName(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "personaltool.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("vendors:\n  venmo:\n    account_name: Shared Venmo\n"), 0o644))

	dst := filepath.Join(dir, "venmo.csv")
	out, err := runTool(t, "--config", cfgPath, "convert", fixture(t, "venmo_statement.txt"), dst)
	require.NoError(t, err, out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Account Name: Shared Venmo\n")
}

func TestTokens(t *testing.T) {
	out, err := runTool(t, "tokens", fixture(t, "becu_statement.txt"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "Statement Open Date 12/01/2021\n")
	assert.Contains(t, out, "\f\n01/03\n")
}

func TestVendors(t *testing.T) {
	out, err := runTool(t, "vendors")
	require.NoError(t, err, out)
	assert.Contains(t, out, "venmo")
	assert.Contains(t, out, "BECU VISA Card")
	assert.Contains(t, out, "december-anchor")
}
