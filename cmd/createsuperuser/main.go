// Package main содержит утилиту начальной регистрации SuperAdmin.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/lesson-scheduler/internal/config"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/password"
	"github.com/magabrotheeeer/lesson-scheduler/internal/migrations"
	companyservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/company"
	userservice "github.com/magabrotheeeer/lesson-scheduler/internal/services/user"
	"github.com/magabrotheeeer/lesson-scheduler/internal/storage/repository"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		envFile string
		in      userservice.SuperUserInput
	)
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create the platform SuperAdmin",
		Long:  "Creates the company (if missing) and an active SuperAdmin user in it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := godotenv.Overload(envFile); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to load env file %s: %w", envFile, err)
				}
			}
			if in.Password == "" {
				in.Password = os.Getenv("SUPERUSER_PASSWORD")
			}
			return run(cmd.Context(), in)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to env file")
	cmd.Flags().StringVar(&in.CompanyName, "company", "Platform", "Company name")
	cmd.Flags().StringVar(&in.Email, "email", "", "SuperAdmin email")
	cmd.Flags().StringVar(&in.Password, "password", "", "SuperAdmin password (or SUPERUSER_PASSWORD)")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func run(ctx context.Context, in userservice.SuperUserInput) error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return err
	}

	hasher, err := password.NewHasher(cfg.PasswordPepper, cfg.BcryptCost)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	users := userservice.New(db, db, hasher, logger)
	u, created, err := users.CreateSuperUser(ctx, companyservice.New(db, logger), in)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("superuser %s created (id %s)\n", u.Email, u.ID)
	} else {
		fmt.Printf("user %s already exists (id %s)\n", u.Email, u.ID)
	}
	return nil
}
