package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/config"
)

const clientNameRedis = "[redis client]"

type RedisApi struct {
	client *goredis.Client
}

var (
	instance *RedisApi
	once     sync.Once
)

// GetInstance lazily builds the shared client from configuration. A Redis
// that is down does not fail startup; the service runs degraded without
// session persistence and callers must check IsConnected.
func GetInstance() *RedisApi {
	once.Do(func() {
		cfg := config.GetInstance()
		conf := &RedisConfig{
			Addr:     fmt.Sprintf("%s:%d", cfg.GetString(config.RedisHost), cfg.GetInt(config.RedisPort)),
			Password: cfg.GetString(config.RedisPassword),
			Db:       cfg.GetInt(config.RedisDb),
		}
		conf.DefaultConfig()

		api, err := newRedisSingleApi(conf)
		if err != nil {
			log.Warnf("%s unavailable, continuing without session store: %v", clientNameRedis, err)
			instance = &RedisApi{}
			return
		}
		instance = api
	})
	return instance
}

func newRedisSingleApi(conf *RedisConfig) (*RedisApi, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         conf.Addr,
		Password:     conf.Password,
		DB:           conf.Db,
		PoolSize:     conf.PoolSize,
		MaxRetries:   conf.MaxRetries,
		DialTimeout:  time.Duration(conf.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(conf.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(conf.WriteTimeout) * time.Second,
		MinIdleConns: conf.MinIdleConns,
		PoolTimeout:  time.Duration(conf.PoolTimeout) * time.Second,
		IdleTimeout:  time.Duration(conf.IdleTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "ping redis %s", conf.Addr)
	}
	log.Infof("%s connected to %s db %d", clientNameRedis, conf.Addr, conf.Db)
	return &RedisApi{client: client}, nil
}

// Client returns the underlying go-redis client, nil when disconnected.
func (r *RedisApi) Client() *goredis.Client {
	return r.client
}

func (r *RedisApi) IsConnected() bool {
	if r == nil || r.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return r.client.Ping(ctx).Err() == nil
}

func (r *RedisApi) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
