package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maple-budget/maple/internal/importer"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
)

type importOptions struct {
	email      string
	format     string
	budgetName string
	province   model.Province
	dryRun     bool
}

func newImportCommand(a *app) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build a budget from bank CSV exports in import/",
		Long: "Reads every CSV in <data dir>/import, groups the transactions by category " +
			"into monthly budget items and, unless --dry-run is set, saves them as a new " +
			"budget and moves the files to import/processed.\n\n" +
			"A file named <format>_*.csv is parsed with that format; others use --format.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), a, cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.email, "user", "u", "", "email of the user who owns the budget")
	f.StringVar(&opts.format, "format", "rbc", "bank format for files without a format prefix ("+
		strings.Join(importer.DefaultRegistry().Formats(), ", ")+")")
	f.StringVar(&opts.budgetName, "name", "Imported budget", "name of the new budget")
	provinceVar(f, &opts.province, "province", "budget province (default from config)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the budget items without saving")

	return cmd
}

func runImport(ctx context.Context, a *app, w io.Writer, opts importOptions) error {
	e, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	files, err := importer.Scan(e.cfg.DataDir())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No CSV files in import/.")
		return nil
	}

	reg := importer.DefaultRegistry()
	var txns []model.BankTransaction
	for _, f := range files {
		format := formatFor(reg, f.Name, opts.format)
		parsed, err := reg.ParseFile(format, f.Path)
		if err != nil {
			return err
		}
		a.logger.Info("parsed bank export", zap.String("file", f.Name), zap.String("format", format), zap.Int("transactions", len(parsed)))
		txns = append(txns, parsed...)
	}

	items := importer.Summarize(txns, e.categories)
	if err := writeItems(w, items); err != nil {
		return err
	}
	if opts.dryRun {
		return nil
	}

	u, err := e.user(ctx, opts.email)
	if err != nil {
		return err
	}
	b, err := e.budgets.Create(ctx, u.Email, u.ID, model.Budget{
		Name:          opts.budgetName,
		Province:      a.province(opts.province),
		LifeSituation: model.LifeSingle,
		Items:         items,
	})
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := importer.MarkProcessed(e.cfg.DataDir(), f.Name); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Created budget %q (%s) from %d transactions in %d files\n", b.Name, b.ID, len(txns), len(files))
	return nil
}

// formatFor picks the parser from a "<format>_" file name prefix.
func formatFor(reg *importer.Registry, name, fallback string) string {
	if prefix, _, ok := strings.Cut(strings.ToLower(name), "_"); ok && reg.Get(prefix) != nil {
		return prefix
	}
	return fallback
}

func writeItems(w io.Writer, items []model.BudgetItem) error {
	rows := [][]string{{"TYPE", "CATEGORY", "MONTHLY"}}
	for _, it := range items {
		rows = append(rows, []string{string(it.Type), it.Category, money.Format(it.Amount)})
	}
	return table(w, rows)
}
