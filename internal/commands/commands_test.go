package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maple-budget/maple/internal/commands"
	"github.com/maple-budget/maple/internal/config"
	"github.com/maple-budget/maple/internal/debt"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/store"
)

func runMaple(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// initDir runs maple init in a temp dir and returns the config path.
func initDir(t *testing.T) string {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	dir := t.TempDir()
	_, err := runMaple(t, "init", dir, "--province", "on")
	require.NoError(t, err)
	return filepath.Join(dir, config.FileName)
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runMaple(t, "init", dir, "--province", "bc")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized maple at")

	for _, d := range []string{"import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}
	for _, f := range []string{"maple.yaml", "categories.csv", "maple.db"} {
		_, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "%s should exist", f)
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "BC", cfg.Defaults.Province)
	assert.NoError(t, cfg.Validate())
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	cfgPath := initDir(t)
	_, err := runMaple(t, "init", filepath.Dir(cfgPath))
	assert.ErrorContains(t, err, "already exists")
}

func TestInit_BadProvince(t *testing.T) {
	_, err := runMaple(t, "init", t.TempDir(), "--province", "zz")
	assert.Error(t, err)
}

func TestCalc(t *testing.T) {
	noConfig := filepath.Join(t.TempDir(), config.FileName)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"tax", []string{"calc", "tax", "--income", "60000", "--province", "ON"}, []string{"$9,626.13", "Net income"}},
		{"min payment", []string{"calc", "min-payment", "--kind", "CreditCard", "--balance", "5000", "--limit", "10000", "--rate", "19.99"}, []string{"Credit Card", "$150.00"}},
		{"interest only", []string{"calc", "min-payment", "--kind", "LOC", "--balance", "12000", "--limit", "20000", "--rate", "6"}, []string{"$60.00", "never at the minimum"}},
		{"loan", []string{"calc", "loan", "--principal", "20000", "--rate", "6", "--years", "5"}, []string{"Payment (monthly)", "Total interest"}},
		{"mortgage", []string{"calc", "mortgage", "--price", "500000", "--down", "50000", "--rate", "5"}, []string{"CMHC premium", "Mortgage principal"}},
		{"afford", []string{"calc", "afford", "--income", "120000", "--down", "100000", "--rate", "5"}, []string{"Maximum home price", "GDS"}},
		{"rrsp", []string{"calc", "rrsp-tfsa", "--age", "35", "--income", "90000", "--contribution", "6000"}, []string{"Recommendation"}},
		{"buy vs rent", []string{"calc", "buy-vs-rent", "--price", "600000", "--down", "120000", "--rate", "5", "--rent", "2500"}, []string{"Break-even", "Renter wealth"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runMaple(t, append([]string{"--config", noConfig}, tt.args...)...)
			require.NoError(t, err, out)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestCalc_JSON(t *testing.T) {
	out, err := runMaple(t, "--config", filepath.Join(t.TempDir(), "none.yaml"),
		"calc", "tax", "--income", "60000", "--province", "ON", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalTax": "9626.13"`)
}

func TestCalc_InvalidInput(t *testing.T) {
	noConfig := filepath.Join(t.TempDir(), config.FileName)

	_, err := runMaple(t, "--config", noConfig, "calc", "tax", "--income", "lots")
	assert.Error(t, err)

	_, err = runMaple(t, "--config", noConfig, "calc", "loan", "--principal", "1e200000")
	assert.ErrorContains(t, err, "out of range")

	_, err = runMaple(t, "--config", noConfig, "calc", "loan", "--principal", "0")
	assert.ErrorContains(t, err, "Loan amount must be greater than 0")

	_, err = runMaple(t, "--config", noConfig, "calc", "min-payment", "--kind", "StudentLoan", "--balance", "100")
	assert.ErrorContains(t, err, "Loan term is required")
}

func TestUserAndDebts(t *testing.T) {
	cfgPath := initDir(t)

	out, err := runMaple(t, "--config", cfgPath, "user", "add", "Sam@Example.com", "--name", "Sam")
	require.NoError(t, err)
	assert.Contains(t, out, "Added user sam@example.com")

	_, err = runMaple(t, "--config", cfgPath, "user", "add", "sam@example.com")
	assert.ErrorIs(t, err, store.ErrConflict)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DatabasePath())
	require.NoError(t, err)
	u, err := st.GetUserByEmail(ctx, "sam@example.com")
	require.NoError(t, err)
	svc := debt.NewService(st, nil)
	_, err = svc.Create(ctx, "test", u.ID, model.Debt{
		Kind: model.DebtCreditCard, Name: "Visa", Balance: decimal.NewFromInt(5000),
		Limit: decimal.NewFromInt(10000), InterestRate: decimal.RequireFromString("19.99"),
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err = runMaple(t, "--config", cfgPath, "debts", "list", "--user", "sam@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Visa")
	assert.Contains(t, out, "$150.00")

	out, err = runMaple(t, "--config", cfgPath, "debts", "payoff", "--user", "sam@example.com", "--extra", "350", "--strategy", "snowball")
	require.NoError(t, err)
	assert.Contains(t, out, "Debt free in")
	assert.Contains(t, out, "$500.00")

	_, err = runMaple(t, "--config", cfgPath, "debts", "list", "--user", "nobody@example.com")
	assert.ErrorContains(t, err, "no user nobody@example.com")

	_, err = runMaple(t, "--config", cfgPath, "debts", "list")
	assert.ErrorContains(t, err, "--user is required")
}

func TestImport(t *testing.T) {
	cfgPath := initDir(t)
	dir := filepath.Dir(cfgPath)

	_, err := runMaple(t, "--config", cfgPath, "user", "add", "sam@example.com")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "rbc_chequing.csv"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "rbc_chequing.csv"), data, 0o644))

	out, err := runMaple(t, "--config", cfgPath, "import", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "employment")
	assert.Contains(t, out, "$3,750.00")
	_, err = os.Stat(filepath.Join(dir, "import", "rbc_chequing.csv"))
	require.NoError(t, err, "dry run leaves the file in place")

	out, err = runMaple(t, "--config", cfgPath, "import", "--user", "sam@example.com", "--name", "January")
	require.NoError(t, err)
	assert.Contains(t, out, `Created budget "January"`)
	assert.Contains(t, out, "from 10 transactions in 1 files")

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "rbc_chequing.csv"))
	require.NoError(t, err, "file should move to processed/")

	entries, err := os.ReadFile(filepath.Join(dir, "activity.csv"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(entries), "budget.create"))
	assert.True(t, strings.Contains(string(entries), "user.create"))

	out, err = runMaple(t, "--config", cfgPath, "import")
	require.NoError(t, err)
	assert.Contains(t, out, "No CSV files")
}

func TestCoach_NeedsAPIKey(t *testing.T) {
	cfgPath := initDir(t)
	_, err := runMaple(t, "--config", cfgPath, "coach", "ask", "--user", "sam@example.com", "Hello?")
	assert.ErrorContains(t, err, "coach is not configured")
}

func TestCommands_NeedConfig(t *testing.T) {
	_, err := runMaple(t, "--config", filepath.Join(t.TempDir(), config.FileName), "debts", "list", "--user", "a@b.c")
	assert.ErrorContains(t, err, "run `maple init` first")
}
