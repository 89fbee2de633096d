package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "ideaboard:"

// incrementScript bumps the upvote counter only when the idea hash exists and
// returns the full hash. Redis runs scripts atomically, so concurrent upvotes
// on the same idea never interleave.
var incrementScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return false
end
redis.call('HINCRBY', KEYS[1], 'upvotes', 1)
return redis.call('HGETALL', KEYS[1])
`)

// RedisStore implements IdeaStore with one hash per idea plus a set indexing
// every idea id.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ IdeaStore = (*RedisStore)(nil)

// NewRedisStore creates a new Redis-backed idea store.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: defaultRedisPrefix}
}

func (s *RedisStore) ideaKey(id string) string { return s.prefix + "idea:" + id }
func (s *RedisStore) indexKey() string         { return s.prefix + "ideas" }

func (s *RedisStore) ListAll(ctx context.Context) ([]*Idea, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list idea ids: %w", err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = p.HGetAll(ctx, s.ideaKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load ideas: %w", err)
	}

	ideas := make([]*Idea, 0, len(ids))
	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		idea, err := ideaFromHash(fields)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, idea)
	}
	sortIdeas(ideas)
	return ideas, nil
}

func (s *RedisStore) GetByID(ctx context.Context, id string) (*Idea, error) {
	fields, err := s.client.HGetAll(ctx, s.ideaKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	return ideaFromHash(fields)
}

func (s *RedisStore) Insert(ctx context.Context, text string) (*Idea, error) {
	idea := &Idea{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: now(),
	}

	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, s.ideaKey(idea.ID),
			"id", idea.ID,
			"text", idea.Text,
			"upvotes", idea.Upvotes,
			"created_at", idea.CreatedAt.UnixMicro(),
		)
		p.SAdd(ctx, s.indexKey(), idea.ID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert idea: %w", err)
	}
	return idea, nil
}

func (s *RedisStore) IncrementUpvotes(ctx context.Context, id string) (*Idea, error) {
	res, err := incrementScript.Run(ctx, s.client, []string{s.ideaKey(id)}).Slice()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(res)/2)
	for i := 0; i+1 < len(res); i += 2 {
		k, _ := res[i].(string)
		v, _ := res[i+1].(string)
		fields[k] = v
	}
	return ideaFromHash(fields)
}

// Ping checks that Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func ideaFromHash(fields map[string]string) (*Idea, error) {
	upvotes, err := strconv.Atoi(fields["upvotes"])
	if err != nil {
		return nil, fmt.Errorf("parse upvotes for idea %s: %w", fields["id"], err)
	}
	micros, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for idea %s: %w", fields["id"], err)
	}
	return &Idea{
		ID:        fields["id"],
		Text:      fields["text"],
		Upvotes:   upvotes,
		CreatedAt: time.UnixMicro(micros).UTC(),
	}, nil
}
