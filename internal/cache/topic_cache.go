package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"lyro/internal/model"
)

// TopicCache holds per-subject topic lists for the browse pages
type TopicCache interface {
	Set(ctx context.Context, subjectID string, topics []*model.Topic) error
	Get(ctx context.Context, subjectID string) ([]*model.Topic, error)
	Invalidate(ctx context.Context, subjectID string) error
}

type topicCache struct {
	client *redis.Client
}

func NewTopicCache(client *redis.Client) TopicCache {
	return &topicCache{
		client: client,
	}
}

func (c *topicCache) key(subjectID string) string {
	return "topics:" + subjectID
}

func (c *topicCache) Set(ctx context.Context, subjectID string, topics []*model.Topic) error {
	data, err := json.Marshal(topics)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(subjectID), data, 10*time.Minute).Err()
}

func (c *topicCache) Get(ctx context.Context, subjectID string) ([]*model.Topic, error) {
	data, err := c.client.Get(ctx, c.key(subjectID)).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var topics []*model.Topic
	err = json.Unmarshal([]byte(data), &topics)
	return topics, err
}

func (c *topicCache) Invalidate(ctx context.Context, subjectID string) error {
	return c.client.Del(ctx, c.key(subjectID)).Err()
}
