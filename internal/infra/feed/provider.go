package feed

import (
	"context"
	"log/slog"

	"yearbook/config"
	"yearbook/internal/domain/lifecycle"
	"yearbook/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params holds dependencies for the ChangeFeed, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewChangeFeed uses redis pub/sub when redis.addr is set and an in-process broker otherwise.
func NewChangeFeed(params Params) service.ChangeFeed {
	cfg := params.Config.Redis
	logger := params.Logger

	var feed service.ChangeFeed
	if cfg == nil || cfg.Addr == "" {
		logger.Info("Redis not configured, using in-process change feed")
		feed = NewMemoryBroker(logger)
	} else {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		feed = NewRedisBroker(client, logger)

		params.Lc.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
				defer cancel()

				if err := client.Ping(ctx).Err(); err != nil {
					return errors.Wrap(err, "redis ping failed")
				}
				logger.Info("Using redis change feed", slog.String("addr", cfg.Addr))

				return nil
			},
		})
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("Closing change feed")

			return feed.Close()
		},
	})

	return feed
}
