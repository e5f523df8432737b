package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/seed"
	"github.com/portfolio-api/internal/service"
	"github.com/portfolio-api/pkg/logger"
)

var (
	contentFile string
	postsDir    string
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load portfolio content into the configured store",
	Long: `seed reads projects and skills from a YAML file and blog posts from a
directory of markdown files with YAML front matter, and creates them through
the same validation and publishing rules the admin API applies.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

var migrateDownCmd = &cobra.Command{
	Use:   "migrate-down",
	Short: "Roll back the last postgres migration",
	RunE:  runMigrateDown,
}

func init() {
	rootCmd.Flags().StringVar(&contentFile, "content", "", "YAML file with projects and skills")
	rootCmd.Flags().StringVar(&postsDir, "posts", "", "directory of markdown posts")
	rootCmd.AddCommand(migrateDownCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if contentFile == "" && postsDir == "" {
		return fmt.Errorf("nothing to load, pass --content and/or --posts")
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repos, closeStore, err := repository.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore(context.Background())

	loader := seed.NewLoader(service.NewServices(repos, cfg, log), log)

	var total seed.Summary
	if contentFile != "" {
		sum, err := loader.LoadContentFile(ctx, contentFile)
		if err != nil {
			return err
		}
		total.Created += sum.Created
		total.Skipped += sum.Skipped
		total.Failed += sum.Failed
	}
	if postsDir != "" {
		sum, err := loader.LoadPostsDir(ctx, postsDir)
		if err != nil {
			return err
		}
		total.Created += sum.Created
		total.Skipped += sum.Skipped
		total.Failed += sum.Failed
	}

	log.Info().
		Int("created", total.Created).
		Int("skipped", total.Skipped).
		Int("failed", total.Failed).
		Msg("Seed completed")

	if total.Failed > 0 {
		return fmt.Errorf("%d records failed to load", total.Failed)
	}
	return nil
}

func runMigrateDown(_ *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if cfg.Store.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate-down only applies to the %s driver", config.DriverPostgres)
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	return db.MigrateDown(cfg.Store.MigrationsPath)
}
