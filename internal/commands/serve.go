package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maple-budget/maple/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}

func runServe(ctx context.Context, a *app, addr string) error {
	e, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if addr == "" {
		addr = e.cfg.Server.Addr
	}
	if e.coach == nil {
		a.logger.Warn("AI coach disabled; set the API key to enable it", zap.String("env", e.cfg.Coach.APIKeyEnv))
	}

	srv := server.New(server.Deps{
		Users:    e.store,
		Debts:    e.debts,
		NetWorth: e.netWorth,
		Budgets:  e.budgets,
		Coach:    e.coach,
		Activity: e.activity,
	}, server.Options{
		UserHeader:   e.cfg.Server.UserHeader,
		Province:     e.cfg.Province(),
		ReadTimeout:  e.cfg.ReadTimeout(),
		WriteTimeout: e.cfg.WriteTimeout(),
		Logger:       a.logger,
	})
	a.logger.Info("starting api", zap.String("addr", addr), zap.String("database", e.store.Path()))
	return srv.ListenAndServe(ctx, addr)
}
