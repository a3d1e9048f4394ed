package tools

import (
	"github.com/usestring/hargen/internal/cache"
	"github.com/usestring/hargen/internal/config"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config *config.Config
	Cache  *cache.BodyCache
}

// NewDeps builds the dependency set from configuration.
func NewDeps(cfg *config.Config) (*Deps, error) {
	bodyCache, err := cache.NewBodyCache(cfg.BodyCacheMaxItems)
	if err != nil {
		return nil, err
	}
	return &Deps{Config: cfg, Cache: bodyCache}, nil
}
