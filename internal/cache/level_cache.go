package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"skyquest/internal/model"
)

// LevelCache is a read-through Redis cache for level constraints. Constraints
// are immutable after seeding, so a long TTL is safe.
type LevelCache interface {
	Get(ctx context.Context, levelID int) (*model.LevelConstraint, error)
	Set(ctx context.Context, constraint *model.LevelConstraint) error
}

type levelCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLevelCache creates a new level constraint cache.
func NewLevelCache(client *redis.Client) LevelCache {
	return &levelCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *levelCache) key(levelID int) string {
	return fmt.Sprintf("level:%d", levelID)
}

func (c *levelCache) Get(ctx context.Context, levelID int) (*model.LevelConstraint, error) {
	data, err := c.client.Get(ctx, c.key(levelID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var constraint model.LevelConstraint
	if err := json.Unmarshal([]byte(data), &constraint); err != nil {
		return nil, err
	}
	return &constraint, nil
}

func (c *levelCache) Set(ctx context.Context, constraint *model.LevelConstraint) error {
	data, err := json.Marshal(constraint)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(constraint.LevelID), data, c.ttl).Err()
}
