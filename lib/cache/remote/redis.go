package remote

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache"
)

type RedisConfig struct {
	Host string
	Port int
	TTL  time.Duration
}

func NewRedisClient(conf RedisConfig) Client {
	return &redisClient{
		Client: redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("%s:%d", conf.Host, conf.Port)}),
		ttl: conf.TTL,
	}
}

type redisClient struct {
	*redis.Client
	ttl time.Duration
}

func (r *redisClient) Ready() bool {
	return r.Ping().Err() == nil
}

func (r *redisClient) Get(key string) (*cache.Lookup, error) {
	b, err := r.Client.Get(key).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var lookup cache.Lookup
	if err := json.Unmarshal(b, &lookup); err != nil {
		return nil, err
	}
	return &lookup, nil
}

func (r *redisClient) Set(key string, lookup *cache.Lookup) error {
	b, err := json.Marshal(lookup)
	if err != nil {
		return err
	}
	return r.Client.Set(key, b, r.ttl).Err()
}
