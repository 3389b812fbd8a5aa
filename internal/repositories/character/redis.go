package character

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/terra-rp/terra-api/internal/entities"
	"github.com/terra-rp/terra-api/internal/errors"
	"github.com/terra-rp/terra-api/internal/pkg/clock"
	redisclient "github.com/terra-rp/terra-api/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	nameIndexPrefix    = "character:name:"
	roleIndexPrefix    = "character:role:"
	ownerIndexPrefix   = "character:owner:"

	// Error messages
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errCampaignIDEmpty  = "campaign ID cannot be empty"
	errNameEmpty        = "name cannot be empty"
	errRoleIDEmpty      = "role ID cannot be empty"
	errOwnerIDEmpty     = "owner ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Use real clock if none provided
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

// nameKey builds the campaign-scoped name index key. Names are indexed
// case-insensitively.
func nameKey(campaignID, name string) string {
	return nameIndexPrefix + campaignID + ":" + strings.ToLower(name)
}

func roleKey(campaignID, roleID string) string {
	return roleIndexPrefix + campaignID + ":" + roleID
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.Character.CampaignID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}
	if input.Character.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	key := characterKeyPrefix + input.Character.ID

	// Check if already exists
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}

	if exists > 0 {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", input.Character.ID)
	}

	character := *input.Character
	if character.CreatedAt == 0 {
		character.CreatedAt = r.clock.Now().Unix()
	}

	data, err := json.Marshal(&character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character data")
	}

	// Claim the campaign-scoped name first so two concurrent creates
	// cannot both register it.
	claimed, err := r.client.SetNX(ctx, nameKey(character.CampaignID, character.Name), character.ID, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to claim character name")
	}
	if !claimed {
		return nil, errors.AlreadyExistsf("character name %q is already taken", character.Name)
	}

	pipe := r.client.TxPipeline()

	pipe.Set(ctx, key, data, 0) // No TTL for characters

	if character.RoleID != "" {
		pipe.SAdd(ctx, roleKey(character.CampaignID, character.RoleID), character.ID)
	}
	if character.OwnerID != "" {
		pipe.SAdd(ctx, ownerIndexPrefix+character.OwnerID, character.ID)
	}

	_, err = pipe.Exec(ctx)
	if err != nil {
		// Release the name claim so a retry is not locked out.
		r.client.Del(ctx, nameKey(character.CampaignID, character.Name))
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: &character}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := characterKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var character entities.Character
	if err := json.Unmarshal([]byte(result), &character); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character data")
	}

	return &GetOutput{Character: &character}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	// Get character to find indexes
	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}
	character := getOutput.Character

	pipe := r.client.TxPipeline()

	pipe.Del(ctx, characterKeyPrefix+input.ID)
	pipe.Del(ctx, nameKey(character.CampaignID, character.Name))

	if character.RoleID != "" {
		pipe.SRem(ctx, roleKey(character.CampaignID, character.RoleID), input.ID)
	}
	if character.OwnerID != "" {
		pipe.SRem(ctx, ownerIndexPrefix+character.OwnerID, input.ID)
	}

	_, err = pipe.Exec(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) NameTaken(ctx context.Context, input NameTakenInput) (*NameTakenOutput, error) {
	if input.CampaignID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	exists, err := r.client.Exists(ctx, nameKey(input.CampaignID, input.Name)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check character name")
	}

	return &NameTakenOutput{Taken: exists > 0}, nil
}

func (r *redisRepository) CountByRole(ctx context.Context, input CountByRoleInput) (*CountByRoleOutput, error) {
	if input.CampaignID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}
	if input.RoleID == "" {
		return nil, errors.InvalidArgument(errRoleIDEmpty)
	}

	count, err := r.client.SCard(ctx, roleKey(input.CampaignID, input.RoleID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count role holders")
	}

	return &CountByRoleOutput{Count: uint32(count)}, nil // #nosec G115 // set cardinality
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	indexKey := ownerIndexPrefix + input.OwnerID
	slog.DebugContext(ctx, "listing characters by owner index",
		"owner_id", input.OwnerID,
		"index_key", indexKey)

	characters, err := r.listByIndex(ctx, indexKey)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list characters by owner index",
			"owner_id", input.OwnerID,
			"index_key", indexKey,
			"error", err.Error())
		return nil, err
	}

	return &ListByOwnerOutput{Characters: characters}, nil
}

// listByIndex is a helper function to list characters by any index
func (r *redisRepository) listByIndex(ctx context.Context, indexKey string) ([]*entities.Character, error) {
	characterIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get characters from index %s", indexKey)
	}

	characters := make([]*entities.Character, 0, len(characterIDs))
	for _, id := range characterIDs {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// If character doesn't exist, clean up the index
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "character not found, cleaning up index",
					"character_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get character %s", id)
		}
		characters = append(characters, getOutput.Character)
	}

	return characters, nil
}
