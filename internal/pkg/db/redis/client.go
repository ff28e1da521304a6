package redis

import (
	"context"
	"crypto/tls"
	"log/slog"

	"lendsafe/internal/pkg/config"
	"lendsafe/internal/pkg/consts"
	"lendsafe/internal/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

type RedisConnector interface {
	Connect(ctx context.Context, opts *goredis.Options) (*goredis.Client, error)
	Ping(ctx context.Context, client *goredis.Client) error
}

type DefaultRedisConnector struct{}

func (d *DefaultRedisConnector) Connect(ctx context.Context, opts *goredis.Options) (*goredis.Client, error) {
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func (d *DefaultRedisConnector) Ping(ctx context.Context, client *goredis.Client) error {
	return client.Ping(ctx).Err()
}

func ConnectToRedis(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	return connectWithConnector(ctx, cfg, &DefaultRedisConnector{})
}

func connectWithConnector(ctx context.Context, cfg config.RedisConfig, connector RedisConnector) (*goredis.Client, error) {
	opts := &goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.ConnectTimeout,
	}
	if cfg.EnableTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client, err := connector.Connect(ctx, opts)
	if err != nil {
		logger.CtxError(ctx, consts.RedisConnectFailure, err, slog.String("addr", cfg.Addr))
		return nil, err
	}

	logger.CtxInfo(ctx, consts.RedisConnectSuccess, slog.String("addr", cfg.Addr))
	return client, nil
}
