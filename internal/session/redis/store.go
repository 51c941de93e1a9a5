// Package redis implements session.Store backed by Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/glamstore/internal/session"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

const keyPrefix = "session:"

// saveIfVersionScript atomically compares the stored session version against
// the caller's expectation before overwriting. A missing key matches
// expected version 0 so new sessions can be created through the same path.
var saveIfVersionScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
local expected = tonumber(ARGV[1])
if current == false then
    if expected ~= 0 then
        return 0
    end
else
    local stored = cjson.decode(current)
    if tonumber(stored['version']) ~= expected then
        return 0
    end
end
redis.call('SET', KEYS[1], ARGV[2], 'EX', tonumber(ARGV[3]))
return 1
`)

// Store persists sessions in Redis as JSON values with a sliding TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a Redis-backed session store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

// Get retrieves a session by ID.
func (s *Store) Get(ctx context.Context, id string) (*session.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("session", id)
		}
		return nil, fmt.Errorf("get session from redis: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &sess, nil
}

// Save writes the session unconditionally, bumping its version and
// refreshing the TTL.
func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	sess.Version++
	sess.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session to redis: %w", err)
	}

	return nil
}

// SaveIfVersion writes the session only if the stored version still equals
// expectedVersion. Returns a conflict error when another writer got there
// first.
func (s *Store) SaveIfVersion(ctx context.Context, sess *session.Session, expectedVersion int64) error {
	sess.Version = expectedVersion + 1
	sess.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ok, err := saveIfVersionScript.Run(ctx, s.client,
		[]string{sessionKey(sess.ID)},
		expectedVersion, data, int(s.ttl.Seconds()),
	).Int()
	if err != nil {
		return fmt.Errorf("save session to redis: %w", err)
	}

	if ok != 1 {
		return apperrors.Conflict("session was modified concurrently")
	}

	return nil
}

// Delete removes a session. Missing sessions are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session from redis: %w", err)
	}
	return nil
}
