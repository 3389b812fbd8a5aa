package creation

//go:generate mockgen -destination=mock/mock_service.go -package=creationmock github.com/terra-rp/terra-api/internal/orchestrators/creation Service

import (
	"context"
	"log/slog"

	"github.com/terra-rp/terra-api/internal/catalog"
	"github.com/terra-rp/terra-api/internal/entities"
	"github.com/terra-rp/terra-api/internal/entities/terra"
	"github.com/terra-rp/terra-api/internal/errors"
	"github.com/terra-rp/terra-api/internal/pkg/clock"
	"github.com/terra-rp/terra-api/internal/pkg/idgen"
	"github.com/terra-rp/terra-api/internal/repositories/character"
)

// Service defines the interface for character creation operations
type Service interface {
	// ValidateSelection resolves a selection without persisting anything
	ValidateSelection(ctx context.Context, input *ValidateSelectionInput) (*ValidateSelectionOutput, error)

	// CreateCharacter resolves a selection and persists the character
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// GetCharacter retrieves a stored character
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// ListCharacters lists an account's characters
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
}

// ValidateSelectionInput holds the selection to resolve
type ValidateSelectionInput struct {
	Gender    terra.Gender
	Selection terra.Selection
}

// ValidateSelectionOutput holds the resolved creation record
type ValidateSelectionOutput struct {
	Data *terra.CreationData
}

// CreateCharacterInput holds the selection plus the creating account
type CreateCharacterInput struct {
	OwnerID   string
	Gender    terra.Gender
	Selection terra.Selection
}

// CreateCharacterOutput holds the persisted character
type CreateCharacterOutput struct {
	Character *entities.Character
}

// GetCharacterInput identifies a character
type GetCharacterInput struct {
	ID string
}

// GetCharacterOutput holds the retrieved character
type GetCharacterOutput struct {
	Character *entities.Character
}

// ListCharactersInput identifies an owner account
type ListCharactersInput struct {
	OwnerID string
}

// ListCharactersOutput holds the owner's characters
type ListCharactersOutput struct {
	Characters []*entities.Character
}

// Config holds the dependencies for the creation orchestrator
type Config struct {
	Campaign      *catalog.Campaign
	CharacterRepo character.Repository
	IDGenerator   idgen.Generator
	Clock         clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Campaign == nil {
		vb.RequiredField("Campaign")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	campaign      *catalog.Campaign
	characterRepo character.Repository
	idGen         idgen.Generator
	clock         clock.Clock
}

// NewOrchestrator creates a new creation orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		campaign:      cfg.Campaign,
		characterRepo: cfg.CharacterRepo,
		idGen:         cfg.IDGenerator,
		clock:         c,
	}, nil
}

func (o *orchestrator) ValidateSelection(
	_ context.Context,
	input *ValidateSelectionInput,
) (*ValidateSelectionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	data, err := Resolve(o.campaign, input.Gender, input.Selection)
	if err != nil {
		return nil, err
	}

	return &ValidateSelectionOutput{Data: data}, nil
}

func (o *orchestrator) CreateCharacter(
	ctx context.Context,
	input *CreateCharacterInput,
) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID cannot be empty")
	}

	data, err := Resolve(o.campaign, input.Gender, input.Selection)
	if err != nil {
		return nil, err
	}

	// Campaign-scoped name uniqueness. The repository claims the name
	// atomically on create as well; this check just surfaces the
	// conflict before any work is done.
	taken, err := o.characterRepo.NameTaken(ctx, character.NameTakenInput{
		CampaignID: o.campaign.ID,
		Name:       data.Name,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to check name availability")
	}
	if taken.Taken {
		return nil, errors.AlreadyExistsf("character name %q is already taken", data.Name).
			WithMeta("field", errors.FieldName)
	}

	// Role occupancy limit, 0 meaning unlimited.
	role := o.campaign.Roles[input.Selection.Role]
	if role.Limit > 0 {
		count, err := o.characterRepo.CountByRole(ctx, character.CountByRoleInput{
			CampaignID: o.campaign.ID,
			RoleID:     input.Selection.Role,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to count role holders")
		}
		if count.Count >= role.Limit {
			return nil, errors.ResourceExhausted("role is full").
				WithMeta("field", errors.FieldRole)
		}
	}

	id := o.idGen.Generate()
	data.ID = id

	char := &entities.Character{
		ID:         id,
		CampaignID: o.campaign.ID,
		OwnerID:    input.OwnerID,
		RoleID:     input.Selection.Role,
		Name:       data.Name,
		Data:       *data,
		CreatedAt:  o.clock.Now().Unix(),
	}

	created, err := o.characterRepo.Create(ctx, character.CreateInput{Character: char})
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist character")
	}

	slog.InfoContext(ctx, "character created",
		"character_id", id,
		"campaign", o.campaign.ID,
		"owner_id", input.OwnerID,
		"role", input.Selection.Role,
		"name", data.Name)

	return &CreateCharacterOutput{Character: created.Character}, nil
}

func (o *orchestrator) GetCharacter(
	ctx context.Context,
	input *GetCharacterInput,
) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	out, err := o.characterRepo.Get(ctx, character.GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	return &GetCharacterOutput{Character: out.Character}, nil
}

func (o *orchestrator) ListCharacters(
	ctx context.Context,
	input *ListCharactersInput,
) (*ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	out, err := o.characterRepo.ListByOwner(ctx, character.ListByOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, err
	}

	return &ListCharactersOutput{Characters: out.Characters}, nil
}
