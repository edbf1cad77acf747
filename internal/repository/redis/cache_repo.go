package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const (
	catalogKey    = "catalog:all"
	generationKey = "catalog:gen"
)

// setIfGeneration пишет KEYS[2..] значениями ARGV[3..] с TTL ARGV[2] мс,
// только если поколение KEYS[1] равно ARGV[1].
var setIfGeneration = r.NewScript(`
local cur = redis.call('GET', KEYS[1]) or '0'
if cur ~= ARGV[1] then
	return 0
end
for i = 2, #KEYS do
	redis.call('SET', KEYS[i], ARGV[i + 1], 'PX', ARGV[2])
end
return 1
`)

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCatalog возвращает закэшированный полный список товаров или e.ErrCacheMiss.
func (c *CacheRepo) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	data, err := c.client.Client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrCacheMiss
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.ProductRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Redis unmarshal failed, dropping catalog: %v", e.Wrap(whereami.WhereAmI(), err))
		c.dropKeys(catalogKey)
		return nil, e.ErrCacheMiss
	}

	products, err := c.conv.ToArrEntity(models)
	if err != nil {
		c.logger.Warnf("Cached catalog is invalid, dropping: %v", e.Wrap(whereami.WhereAmI(), err))
		c.dropKeys(catalogKey)
		return nil, e.ErrCacheMiss
	}

	return products, nil
}

// CatalogGeneration возвращает текущее поколение кэша каталога (0, если ключа нет).
func (c *CacheRepo) CatalogGeneration(ctx context.Context) (int64, error) {
	gen, err := c.client.Client.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return 0, nil
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return gen, nil
}

func (c *CacheRepo) SetCatalog(ctx context.Context, products []domain.Product, generation int64) error {
	data, err := json.Marshal(c.conv.ToArrRedisModel(products))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return c.setIfGeneration(ctx, generation, c.cfg.CatalogTTL, []string{catalogKey}, []any{data})
}

// DeleteCatalog удаляет каталог и увеличивает поколение в одной транзакции MULTI.
func (c *CacheRepo) DeleteCatalog(ctx context.Context) error {
	_, err := c.client.Client.TxPipelined(ctx, func(pipe r.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, catalogKey)
		return nil
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) setIfGeneration(ctx context.Context, generation int64, ttl time.Duration, keys []string, values []any) error {
	keys = append([]string{generationKey}, keys...)
	args := append([]any{strconv.FormatInt(generation, 10), ttlMillis(ttl)}, values...)

	written, err := setIfGeneration.Run(ctx, c.client.Client, keys, args...).Int()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if written == 0 {
		return e.ErrStaleCache
	}

	return nil
}

// ttlMillis переводит TTL в миллисекунды для PX; PX не принимает ноль.
func ttlMillis(ttl time.Duration) int64 {
	return max(ttl.Milliseconds(), 1)
}

// GetProducts возвращает закэшированные товары по ID, игнорируя промахи и логируя их.
// Если не найден ни один товар, возвращается e.ErrCacheMiss.
func (c *CacheRepo) GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	if len(ids) == 0 {
		return nil, e.ErrCacheMiss
	}

	keys := c.buildProductCacheKeys(ids)

	values, err := c.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warnf("Redis MGET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make(map[string]domain.Product, len(values))
	for i, val := range values {
		data, err := redisValueToBytes(val, keys[i])
		if err != nil {
			c.logger.Warnf("%v", e.Wrap(whereami.WhereAmI(), err))
		}

		if data == nil {
			continue // cache miss
		}

		var model converter.ProductRedisModel
		if err := json.Unmarshal(data, &model); err != nil {
			c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		if model.ID != ids[i] {
			c.logger.Warnf("Cache ID mismatch: key_id: %s, model_id: %s", ids[i], model.ID)
			c.dropKeys(keys[i])
			continue // cache miss
		}

		product, err := c.conv.ToEntity(&model)
		if err != nil {
			c.logger.Warnf("Cached product is invalid: %v", e.Wrap(whereami.WhereAmI(), err))
			continue
		}
		result[ids[i]] = *product
	}

	if len(result) == 0 {
		return nil, e.ErrCacheMiss
	}

	return result, nil
}

// SetProducts кэширует несколько товаров одним скриптом, если поколение не изменилось.
// Товары, которые не удалось сериализовать, пропускаются с предупреждением.
func (c *CacheRepo) SetProducts(ctx context.Context, products []domain.Product, generation int64) error {
	models := c.conv.ToArrRedisModel(products)

	keys := make([]string, 0, len(models))
	values := make([]any, 0, len(models))
	for _, model := range models {
		data, err := json.Marshal(model)
		if err != nil {
			c.logger.Warnf("Failed to marshal product for caching (Product ID: %s): %v", model.ID, e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		keys = append(keys, productKey(model.ID))
		values = append(values, data)
	}

	if len(keys) == 0 {
		return nil
	}

	return c.setIfGeneration(ctx, generation, c.cfg.ProductTTL, keys, values)
}

// DeleteProducts удаляет товары из кэша по ID
func (c *CacheRepo) DeleteProducts(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	if err := c.client.Client.Del(ctx, c.buildProductCacheKeys(ids)...).Err(); err != nil {
		c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

func (c *CacheRepo) dropKeys(keys ...string) {
	if err := c.client.Client.Del(context.Background(), keys...).Err(); err != nil {
		c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

func (c *CacheRepo) buildProductCacheKeys(ids []string) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}

	return keys
}

func productKey(id string) string {
	return "product:" + id
}

// redisValueToBytes конвертирует значение из Redis в []byte.
// Поддерживает string и []byte, возвращает ошибку для неизвестных типов.
func redisValueToBytes(val interface{}, key string) ([]byte, error) {
	switch v := val.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil // cache miss
	default:
		return nil, fmt.Errorf("unexpected Redis value type for key %s: %T", key, val)
	}
}
