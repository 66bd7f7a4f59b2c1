// Command migration creates the schema and promotes admins.
//
//	go run ./scripts/migration up
//	go run ./scripts/migration promote-admin --email ops@example.com
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"marketplace-backend/config"
	"marketplace-backend/dao"
	"marketplace-backend/db"
	"marketplace-backend/model"
	"marketplace-backend/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migration",
		Short:         "Database maintenance for the marketplace backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newUpCmd(), newPromoteAdminCmd())
	return root
}

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create missing tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, deps cliDeps) error {
				if err := db.Migrate(ctx, deps.conn); err != nil {
					return err
				}
				deps.log.Info("Schema is up to date")
				return nil
			})
		},
	}
}

func newPromoteAdminCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "promote-admin",
		Short: "Give an existing user the admin role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return errors.New("--email is required")
			}
			return withDB(cmd.Context(), func(ctx context.Context, deps cliDeps) error {
				err := dao.NewUserRepository(deps.conn).UpdateRole(ctx, email, model.RoleAdmin)
				if errors.Is(err, dao.ErrNotFound) {
					return fmt.Errorf("no user registered with email %s", email)
				}
				if err != nil {
					return err
				}
				deps.log.WithField("email", email).Info("User promoted to admin")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user to promote")
	return cmd
}

type cliDeps struct {
	conn *sql.DB
	log  *logrus.Entry
}

func withDB(ctx context.Context, fn func(ctx context.Context, deps cliDeps) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.NewLogger("migration", cfg.LogLevel)

	conn, err := db.Open(ctx, cfg.MySQL)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(ctx, cliDeps{conn: conn, log: log})
}
