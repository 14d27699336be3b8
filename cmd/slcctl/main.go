package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/config"
	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository/mongodb"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
	authsvc "github.com/mamadbah2/livestockcare/internal/service/auth"
	knowledgesvc "github.com/mamadbah2/livestockcare/internal/service/knowledge"
	rationsvc "github.com/mamadbah2/livestockcare/internal/service/ration"
	"github.com/mamadbah2/livestockcare/pkg/logger"
)

// system is the actor recorded for maintenance run from the command line.
var system = models.Principal{ID: "system", Name: "slcctl", Role: models.RoleAdmin}

func main() {
	var envFile string

	rootCmd := &cobra.Command{
		Use:          "slcctl",
		Short:        "Smart Livestock Care maintenance commands",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to an env file")

	rootCmd.AddCommand(seedCmd(&envFile))
	rootCmd.AddCommand(createAdminCmd(&envFile))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withStore loads config, connects to MongoDB and runs fn.
func withStore(envFile string, fn func(ctx context.Context, cfg *config.Config, store *mongodb.Store, log *zap.Logger) error) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	log := logger.Must(logger.New())
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := mongodb.NewStore(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named(log, "repo.mongodb"))
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()
	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	return fn(ctx, cfg, store, log)
}

func seedCmd(envFile *string) *cobra.Command {
	var nutrition, knowledge bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled feed catalog, nutrition rules and reference ranges",
		Long: `Seed reference data. Each data set is only loaded into an empty collection,
so running the command twice is safe.

Examples:
  slcctl seed --nutrition
  slcctl seed --knowledge
  slcctl seed --nutrition --knowledge`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !nutrition && !knowledge {
				return errors.New("nothing to seed: pass --nutrition and/or --knowledge")
			}
			return withStore(*envFile, func(ctx context.Context, _ *config.Config, store *mongodb.Store, log *zap.Logger) error {
				recorder := audit.NewRecorder(store, logger.Named(log, "svc.audit"))

				if nutrition {
					res, err := rationsvc.NewService(store, recorder, nil, logger.Named(log, "svc.ration")).SeedCatalog(ctx, system)
					if err != nil {
						return fmt.Errorf("seed nutrition data: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "nutrition: %s (feed items: %d, rules: %d)\n", res.Message, res.FeedItems, res.NutritionRules)
				}
				if knowledge {
					res, err := knowledgesvc.NewService(store, recorder, logger.Named(log, "svc.knowledge")).SeedKnowledge(ctx, system)
					if err != nil {
						return fmt.Errorf("seed knowledge data: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "knowledge: %s (entries: %d)\n", res.Message, res.Entries)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&nutrition, "nutrition", false, "seed feed items and nutrition rules")
	cmd.Flags().BoolVar(&knowledge, "knowledge", false, "seed knowledge center reference ranges")
	return cmd
}

func createAdminCmd(envFile *string) *cobra.Command {
	var name, phone, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 6 {
				return errors.New("password must be at least 6 characters")
			}
			return withStore(*envFile, func(ctx context.Context, cfg *config.Config, store *mongodb.Store, log *zap.Logger) error {
				svc := authsvc.NewService(store, cfg.Auth, logger.Named(log, "svc.auth"))
				user, err := svc.CreateUser(ctx, models.RegisterRequest{
					Name:     name,
					Phone:    phone,
					Password: password,
					Role:     models.RoleAdmin,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (id %s)\n", user.Phone, user.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&phone, "phone", "", "login phone number")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
