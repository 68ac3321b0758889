package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/examcell/exam-portal-server/internal/config"
	"github.com/examcell/exam-portal-server/internal/database"
	"github.com/examcell/exam-portal-server/internal/repository"
	"github.com/examcell/exam-portal-server/internal/service"
	"github.com/examcell/exam-portal-server/internal/util"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "examctl",
		Short:        "Administrative commands for the exam portal",
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCommand(),
		newCreateSuperAdminCommand(),
		newHashPasswordCommand(),
	)
	return root
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			db, err := database.Connect(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}
			log.Info().Msg("schema applied")
			return nil
		},
	}
}

func newCreateSuperAdminCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-superadmin [username] [email] [password]",
		Short: "Create an approved superadmin account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, email, password := args[0], args[1], args[2]

			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			db, err := database.Connect(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			adminRepo := repository.NewAdminRepository(db.DB)

			return db.WithTx(cmd.Context(), func(tx *sqlx.Tx) error {
				// Bootstrapping creates the account only; no token is issued.
				svc := service.NewAdminService(adminRepo.WithTx(tx), nil, config.BcryptCost)
				admin, err := svc.CreateSuperAdmin(cmd.Context(), username, email, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created superadmin %s (%s)\n", admin.Username, admin.ID)
				return nil
			})
		},
	}
}

func newHashPasswordCommand() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := util.HashPassword(args[0], cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", config.BcryptCost, "bcrypt cost")
	return cmd
}

