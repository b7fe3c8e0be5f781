package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// SessionCache fronts the session collection with Redis so the session
// middleware does not hit Mongo on every request.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// GlobalSessionCache is nil when Redis is not configured; callers fall back
// to the database.
var GlobalSessionCache *SessionCache

func NewSessionCache(redisURL string, ttl time.Duration) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &SessionCache{client: client, ttl: ttl}, nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (sc *SessionCache) SetSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("cannot cache nil session")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %v", err)
	}

	ctx := context.Background()
	return sc.client.Set(ctx, sessionKey(session.SessionID), data, sc.ttl).Err()
}

// GetSession returns (nil, nil) on a cache miss.
func (sc *SessionCache) GetSession(sessionID string) (*model.Session, error) {
	ctx := context.Background()

	data, err := sc.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached session: %v", err)
	}
	return &session, nil
}

func (sc *SessionCache) DeleteSession(sessionID string) error {
	ctx := context.Background()
	return sc.client.Del(ctx, sessionKey(sessionID)).Err()
}
