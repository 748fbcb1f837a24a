package cache

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pairdesk/internal/config"
)

// New builds the summary cache selected by cfg.Cache.Backend.
func New(cfg *config.Config, logger *logrus.Logger) SummaryCache {
	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisCache(cfg.Redis, cfg.CacheTTL(), logger)
	case "none":
		return Noop{}
	default:
		return NewMemoryCache(cfg.CacheTTL())
	}
}
