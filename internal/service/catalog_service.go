package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/repository"
	apperrors "github.com/LuisSinastre/ServiceDesk-Backend/pkg/util"
)

// CatalogService serves the ticket-type catalog and the configured reason
// lists. Reads go through Redis when available; a cache failure degrades to a
// direct Postgres read, never to an error.
type CatalogService struct {
	catalog repository.CatalogRepository
	reasons repository.ReasonRepository
	cache   *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
}

// CatalogDependencies bundles collaborators for CatalogService. Cache may be
// nil, which disables caching entirely.
type CatalogDependencies struct {
	CatalogRepo repository.CatalogRepository
	ReasonRepo  repository.ReasonRepository
	Cache       *redis.Client
	CacheTTL    time.Duration
	Logger      *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		catalog: deps.CatalogRepo,
		reasons: deps.ReasonRepo,
		cache:   deps.Cache,
		ttl:     deps.CacheTTL,
		logger:  logger,
	}
}

// ListForRole returns the catalog entries openable by the given role.
func (s *CatalogService) ListForRole(ctx context.Context, role domain.Role) ([]domain.CatalogEntry, error) {
	key := fmt.Sprintf("catalog:types:%s", role)

	var cached []domain.CatalogEntry
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	entries, err := s.catalog.ListForRole(ctx, role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheSet(ctx, key, entries)
	return entries, nil
}

// RejectionReasons lists the configured rejection reasons.
func (s *CatalogService) RejectionReasons(ctx context.Context) ([]string, error) {
	return s.reasonList(ctx, "catalog:reasons:rejection", s.reasons.ListRejectionReasons)
}

// CancellationReasons lists the configured cancellation reasons.
func (s *CatalogService) CancellationReasons(ctx context.Context) ([]string, error) {
	return s.reasonList(ctx, "catalog:reasons:cancellation", s.reasons.ListCancellationReasons)
}

func (s *CatalogService) reasonList(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	var cached []string
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	reasons, err := load(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheSet(ctx, key, reasons)
	return reasons, nil
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil || s.ttl <= 0 {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
