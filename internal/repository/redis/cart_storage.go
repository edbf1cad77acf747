package redis

import (
	"context"
	"errors"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CartStorage хранит сериализованные корзины в Redis.
// Каждая запись продлевает срок жизни ключа, так что брошенные корзины со временем истекают.
type CartStorage struct {
	client *clients.RedisClient
	cfg    *cfg.CartCfg
}

func NewCartStorage(client *clients.RedisClient, cfg *cfg.CartCfg) *CartStorage {
	return &CartStorage{client: client, cfg: cfg}
}

func (s *CartStorage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return "", false, nil
		}
		return "", false, e.Wrap(whereami.WhereAmI(), err)
	}

	return val, true, nil
}

func (s *CartStorage) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Client.Set(ctx, key, value, s.cfg.TTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
