package product

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const activeCacheKey = "products:active"

// Service handles product business logic
type Service struct {
	repo     Repository
	redis    *redis.Client // nil if Redis disabled
	cacheTTL time.Duration
}

// NewService creates product service
func NewService(repo Repository, redis *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, redis: redis, cacheTTL: cacheTTL}
}

// ListActive returns active products, served from Redis when cached.
func (s *Service) ListActive(ctx context.Context) ([]*Product, error) {
	if cached, ok := s.cachedActive(ctx); ok {
		return cached, nil
	}

	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheActive(ctx, products)
	return products, nil
}

// GetByID returns one product by id.
func (s *Service) GetByID(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// InvalidateCache drops the cached active list.
func (s *Service) InvalidateCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, activeCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate product cache")
	}
}

func (s *Service) cachedActive(ctx context.Context) ([]*Product, bool) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	data, err := s.redis.Get(ctx, activeCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("Product cache read failed")
		}
		return nil, false
	}
	var products []*Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Warn().Err(err).Msg("Product cache entry is corrupt")
		return nil, false
	}
	return products, true
}

func (s *Service) cacheActive(ctx context.Context, products []*Product) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, activeCacheKey, data, s.cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("Product cache write failed")
	}
}
