package command

// admin.go holds the commands that work on the database directly.

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bloghub/database"
	"bloghub/internal/config"
	"bloghub/internal/microservices/http-api/repository"
	"bloghub/internal/microservices/http-api/service"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the schema migrations",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		direction := database.Direction(args[0])
		if direction != database.Up && direction != database.Down {
			return fmt.Errorf("unknown direction %q, want up or down", args[0])
		}

		if err := database.Migrate(cfg, cfg.NewLogger(os.Stderr), direction); err != nil {
			return err
		}
		fmt.Printf("✓ Migrations applied (%s)\n", direction)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate an empty database with demo content",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := cfg.NewLogger(os.Stderr)

		data, err := readSeedFile(cmd)
		if err != nil {
			return err
		}

		gdb, sqlDB, err := database.Connect(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		report, err := database.Seed(cmd.Context(), gdb, data, time.Now(), logger)
		if errors.Is(err, database.ErrAlreadySeeded) {
			fmt.Println("Database already has data. Skipping seeding.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		fmt.Println("✓ Database seeded")
		fmt.Printf("  - %d admin user (username: %q)\n", report.Users, data.Admin.Username)
		fmt.Printf("  - %d categories\n", report.Categories)
		fmt.Printf("  - %d tags\n", report.Tags)
		fmt.Printf("  - %d posts\n", report.Posts)
		fmt.Printf("  - %d menu items\n", report.Menus)
		return nil
	},
}

func readSeedFile(cmd *cobra.Command) (*database.SeedData, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return database.DefaultSeedData()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return database.ReadSeedData(f)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for an existing user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		username, _ := cmd.Flags().GetString("username")

		gdb, sqlDB, err := database.Connect(cmd.Context(), cfg, cfg.NewLogger(os.Stderr))
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		user, err := repository.NewUserRepository(gdb).FindByUsername(cmd.Context(), username)
		if repository.IsNotFound(err) {
			return fmt.Errorf("user %q does not exist", username)
		}
		if err != nil {
			return err
		}

		tokens, err := service.NewTokenService(cfg)
		if err != nil {
			return err
		}
		token, expiresAt, err := tokens.Issue(user)
		if err != nil {
			return err
		}

		fmt.Println(token)
		fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringP("file", "f", "", "seed JSON file (defaults to the bundled demo data)")

	tokenCmd.Flags().StringP("username", "u", "", "user to issue the token for")
	tokenCmd.MarkFlagRequired("username")
}
