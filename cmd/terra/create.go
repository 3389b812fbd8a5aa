package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terra-rp/terra-api/internal/config"
	"github.com/terra-rp/terra-api/internal/errors"
	"github.com/terra-rp/terra-api/internal/orchestrators/creation"
	"github.com/terra-rp/terra-api/internal/pkg/idgen"
	"github.com/terra-rp/terra-api/internal/redis"
	"github.com/terra-rp/terra-api/internal/repositories/character"
)

var (
	createGender string
	createOwner  string
)

var createCmd = &cobra.Command{
	Use:   "create <selection.yml>",
	Short: "Resolve a selection and persist the character",
	Long: `Create resolves a character selection against the configured
campaign and, if it is valid, stores the character in Redis under the
given owner account.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createGender, "gender", "male", "account gender (male or female)")
	createCmd.Flags().StringVar(&createOwner, "owner", "", "owner account id")
	_ = createCmd.MarkFlagRequired("owner")
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	campaign, err := loadCampaign(cfg, log)
	if err != nil {
		return err
	}

	sel, err := readSelection(args[0])
	if err != nil {
		return err
	}
	gender, err := parseGender(createGender)
	if err != nil {
		return err
	}

	client, err := redis.NewClient(cfg.RedisAddr, &redis.Options{
		Password:        cfg.RedisPassword,
		DB:              cfg.RedisDB,
		PoolSize:        cfg.RedisPoolSize,
		ConnMaxIdleTime: cfg.RedisIdleTime,
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	repo, err := character.NewRedis(&character.RedisConfig{Client: client})
	if err != nil {
		return err
	}

	service, err := creation.NewOrchestrator(&creation.Config{
		Campaign:      campaign,
		CharacterRepo: repo,
		IDGenerator:   idgen.NewUUID("char"),
	})
	if err != nil {
		return err
	}

	out, err := service.CreateCharacter(cmd.Context(), &creation.CreateCharacterInput{
		OwnerID:   createOwner,
		Gender:    gender,
		Selection: *sel,
	})
	if err != nil {
		if field, ok := errors.FieldTag(err); ok {
			return fmt.Errorf("selection rejected: %s", field)
		}
		return err
	}

	fmt.Printf("created character %s (%s) in campaign %s\n",
		out.Character.ID, out.Character.Name, out.Character.CampaignID)
	return nil
}
