package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maple-budget/maple/internal/coach"
	"github.com/maple-budget/maple/internal/model"
)

func newCoachCommand(a *app) *cobra.Command {
	var email string
	var plain bool

	coachCmd := &cobra.Command{
		Use:   "coach",
		Short: "Ask the AI financial coach",
	}
	pf := coachCmd.PersistentFlags()
	pf.StringVarP(&email, "user", "u", "", "email of the user")
	pf.BoolVar(&plain, "plain", false, "print markdown without terminal styling")

	coachCmd.AddCommand(
		newCoachAuditCommand(a, &email, &plain),
		newCoachAskCommand(a, &email, &plain),
	)
	return coachCmd
}

func newCoachAuditCommand(a *app, email *string, plain *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Score your finances and get an action plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			svc, err := e.requireCoach()
			if err != nil {
				return err
			}
			u, err := e.user(ctx, *email)
			if err != nil {
				return err
			}
			audit, err := svc.Audit(ctx, u.Email, u)
			if err != nil {
				return err
			}
			return renderMarkdown(cmd.OutOrStdout(), auditMarkdown(audit), *plain)
		},
	}
}

func auditMarkdown(a model.Audit) string {
	var b strings.Builder
	rec := a.Recommendations
	fmt.Fprintf(&b, "# Financial audit: %d/%d (%s)\n\n", a.Score, coach.MaxScore, strings.ToUpper(string(a.Severity)))
	if rec.ImmediateReaction != "" {
		fmt.Fprintf(&b, "> %s\n\n", rec.ImmediateReaction)
	}
	fmt.Fprintf(&b, "%s\n\n", rec.OverallAssessment)
	if rec.DebtAnalysis != "" {
		fmt.Fprintf(&b, "## Debt\n\n%s\n\n", rec.DebtAnalysis)
	}
	if len(rec.ActionPlan) > 0 {
		b.WriteString("## Action plan\n\n")
		for i, step := range rec.ActionPlan {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		b.WriteString("\n")
	}
	for _, q := range rec.Quotes {
		fmt.Fprintf(&b, "*%s*\n\n", q)
	}
	fmt.Fprintf(&b, "Follow up on %s.\n", a.FollowUpDate.Format("January 2, 2006"))
	return b.String()
}

func newCoachAskCommand(a *app, email *string, plain *bool) *cobra.Command {
	var noData bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the coach a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			svc, err := e.requireCoach()
			if err != nil {
				return err
			}
			u, err := e.user(ctx, *email)
			if err != nil {
				return err
			}
			answer, err := svc.Ask(ctx, u, strings.Join(args, " "), !noData)
			if err != nil {
				return err
			}
			return renderMarkdown(cmd.OutOrStdout(), answer, *plain)
		},
	}

	cmd.Flags().BoolVar(&noData, "no-data", false, "do not share your financial data with the coach")

	return cmd
}
