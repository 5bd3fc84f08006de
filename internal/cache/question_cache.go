package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"lyro/internal/model"
)

// QuestionCache holds practice query results keyed by the normalized
// query string. Misses and failures are non-fatal for the read path.
type QuestionCache interface {
	Set(ctx context.Context, key string, questions []*model.Question) error
	Get(ctx context.Context, key string) ([]*model.Question, error)
	Flush(ctx context.Context) error
}

type questionCache struct {
	client *redis.Client
}

func NewQuestionCache(client *redis.Client) QuestionCache {
	return &questionCache{
		client: client,
	}
}

func (c *questionCache) key(k string) string {
	return "practice:" + k
}

func (c *questionCache) Set(ctx context.Context, key string, questions []*model.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), data, 5*time.Minute).Err()
}

func (c *questionCache) Get(ctx context.Context, key string) ([]*model.Question, error) {
	data, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var questions []*model.Question
	err = json.Unmarshal([]byte(data), &questions)
	return questions, err
}

// Flush drops all cached practice results, called after admin writes to
// the question bank
func (c *questionCache) Flush(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, "practice:*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
