package commands

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/maple-budget/maple/internal/activity"
	"github.com/maple-budget/maple/internal/id"
	"github.com/maple-budget/maple/internal/model"
)

func newUserCommand(a *app) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	userCmd.AddCommand(newUserAddCommand(a))
	return userCmd
}

func newUserAddCommand(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <email>",
		Short: "Add a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.ToLower(strings.TrimSpace(args[0]))
			if _, err := mail.ParseAddress(email); err != nil {
				return fmt.Errorf("invalid email %q", args[0])
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			u := model.User{ID: id.New(), Email: email, Name: name, CreatedAt: time.Now().UTC()}
			if err := e.store.CreateUser(cmd.Context(), u); err != nil {
				return err
			}
			_ = e.activity.Record(activity.Entry{Actor: u.Email, Action: "user.create", Details: "Created user " + u.Email, RecordID: u.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Added user %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")

	return cmd
}
