package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maple-budget/maple/internal/categories"
	"github.com/maple-budget/maple/internal/config"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/store"
)

func newInitCommand(a *app) *cobra.Command {
	var province model.Province

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a maple data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(cmd.Context(), absDir, a.province(province)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized maple at %s\n", absDir)
			return nil
		},
	}

	provinceVar(cmd.Flags(), &province, "province", "default province for taxes and calculators (default ON)")

	return cmd
}

func runInit(ctx context.Context, dir string, province model.Province) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	for _, d := range []string{"import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(province)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Load again so relative paths resolve against dir.
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := categories.NewService(categories.Defaults()).Save(cfg.CategoriesPath()); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}

	st, err := store.Open(ctx, cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	return st.Close()
}
