// Package character provides the interface for character persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/terra-rp/terra-api/internal/repositories/character Repository

import (
	"context"

	"github.com/terra-rp/terra-api/internal/entities"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create creates a new character and registers it in the campaign
	// name and role indexes.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a character with the same ID or
	// the same campaign-scoped name exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by ID
	// Returns errors.InvalidArgument for empty/invalid IDs
	// Returns errors.NotFound if character doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete deletes a character by ID and cleans up its index entries
	// Returns errors.InvalidArgument for empty/invalid IDs
	// Returns errors.NotFound if character doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// NameTaken reports whether a character name is already registered
	// in a campaign. The check is case-insensitive.
	// Returns errors.InvalidArgument for empty campaign or name
	// Returns errors.Internal for storage failures
	NameTaken(ctx context.Context, input NameTakenInput) (*NameTakenOutput, error)

	// CountByRole returns the number of characters holding a role in a
	// campaign.
	// Returns errors.InvalidArgument for empty campaign or role IDs
	// Returns errors.Internal for storage failures
	CountByRole(ctx context.Context, input CountByRoleInput) (*CountByRoleOutput, error)

	// ListByOwner retrieves all characters belonging to an owner
	// Returns errors.InvalidArgument for empty/invalid owner IDs
	// Returns errors.Internal for storage failures
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *entities.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *entities.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct {
	// Empty for now, can be extended later
}

// NameTakenInput defines the input for a name availability check
type NameTakenInput struct {
	CampaignID string
	Name       string
}

// NameTakenOutput defines the output for a name availability check
type NameTakenOutput struct {
	Taken bool
}

// CountByRoleInput defines the input for counting role holders
type CountByRoleInput struct {
	CampaignID string
	RoleID     string
}

// CountByRoleOutput defines the output for counting role holders
type CountByRoleOutput struct {
	Count uint32
}

// ListByOwnerInput defines the input for listing characters by owner
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing characters by owner
type ListByOwnerOutput struct {
	Characters []*entities.Character
}
