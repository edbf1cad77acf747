package redis

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// SessionRepo хранит токены авторизации: session:<token> -> user id.
type SessionRepo struct {
	client *clients.RedisClient
}

func NewSessionRepo(client *clients.RedisClient) *SessionRepo {
	return &SessionRepo{client: client}
}

func (s *SessionRepo) Create(ctx context.Context, token string, userID string, ttl time.Duration) error {
	if err := s.client.Client.Set(ctx, sessionKey(token), userID, ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetUserID возвращает e.ErrUnauthorized для неизвестного или истёкшего токена.
func (s *SessionRepo) GetUserID(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return "", e.ErrUnauthorized
		}
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return userID, nil
}

func (s *SessionRepo) Delete(ctx context.Context, token string) error {
	if err := s.client.Client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func sessionKey(token string) string {
	return "session:" + token
}
