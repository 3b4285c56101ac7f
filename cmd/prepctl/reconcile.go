package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/interview-prep/backend/internal/config"
	"github.com/zhouzirui/interview-prep/backend/internal/database"
	"github.com/zhouzirui/interview-prep/backend/internal/repository"
	"github.com/zhouzirui/interview-prep/backend/internal/service/events"
	"github.com/zhouzirui/interview-prep/backend/internal/service/session"
)

func newReconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Delete questions whose session no longer exists",
		Args:  cobra.NoArgs,
		RunE:  runReconcileCmd,
	}

	cmd.Flags().String("db", "", "SQLite database path (defaults to DB_PATH)")

	return cmd
}

func runReconcileCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = cfg.Database.Path
	}

	db, err := database.Init(database.Config{
		Path:     path,
		LogLevel: database.ParseLogLevel(cfg.Database.LogLevel),
	})
	if err != nil {
		return err
	}
	defer database.Close(db)

	svc := session.NewService(repository.NewStore(db), events.Discard)
	removed, err := svc.ReconcileOrphans(commandContext(cmd))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render(fmt.Sprintf("removed %d orphaned question(s)", removed)))
	return nil
}
