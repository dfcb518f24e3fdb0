package commands

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/maple-budget/maple/internal/activity"
	"github.com/maple-budget/maple/internal/budget"
	"github.com/maple-budget/maple/internal/categories"
	"github.com/maple-budget/maple/internal/coach"
	"github.com/maple-budget/maple/internal/config"
	"github.com/maple-budget/maple/internal/debt"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/networth"
	"github.com/maple-budget/maple/internal/store"
)

// errNoCoach is returned when no API key is available for the coach.
var errNoCoach = errors.New("coach is not configured")

// env is an opened database with the services built on it.
type env struct {
	cfg        *config.Config
	store      *store.Store
	categories *categories.Service
	activity   *activity.Log
	debts      *debt.Service
	netWorth   *networth.Service
	budgets    *budget.Service
	coach      *coach.Service // nil without an API key
}

// open loads the config and opens the database. Callers must Close the env.
func (a *app) open(ctx context.Context) (*env, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}

	cats, err := categories.Load(cfg.CategoriesPath())
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, err
	}

	log := activity.NewLog(cfg.ActivityLogPath())
	e := &env{
		cfg:        cfg,
		store:      st,
		categories: cats,
		activity:   log,
		debts:      debt.NewService(st, log),
		netWorth:   networth.NewService(st, log),
		budgets:    budget.NewService(st, cats, log),
	}

	if key := cfg.CoachAPIKey(); key != "" {
		gen, err := coach.NewGeminiGenerator(ctx, coach.GeminiConfig{
			APIKey:          key,
			Model:           cfg.Coach.Model,
			Temperature:     cfg.Coach.Temperature,
			MaxOutputTokens: cfg.Coach.MaxOutputTokens,
		})
		if err != nil {
			st.Close()
			return nil, err
		}
		e.coach = coach.NewService(st, gen, log, a.logger, cfg.Coach.FollowUpDays)
	} else {
		a.logger.Debug("coach disabled, no API key", zap.String("env", cfg.Coach.APIKeyEnv))
	}
	return e, nil
}

func (e *env) Close() error { return e.store.Close() }

// user looks up the account the command acts for.
func (e *env) user(ctx context.Context, email string) (model.User, error) {
	if email == "" {
		return model.User{}, errors.New("--user is required")
	}
	u, err := e.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, fmt.Errorf("no user %s; add one with `maple user add`", email)
	}
	return u, err
}

func (e *env) requireCoach() (*coach.Service, error) {
	if e.coach == nil {
		return nil, fmt.Errorf("%w: set %s", errNoCoach, e.cfg.Coach.APIKeyEnv)
	}
	return e.coach, nil
}
