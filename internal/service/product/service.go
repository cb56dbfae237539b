package product

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/cache"
	"github.com/Additional-Code/padoca/internal/config"
	"github.com/Additional-Code/padoca/internal/entity"
	repo "github.com/Additional-Code/padoca/internal/repository/product"
	"github.com/Additional-Code/padoca/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/padoca/service/product")

// catalogKey caches the full product list; every write invalidates it.
const catalogKey = "products:all"

// Service manages the bakery catalog.
type Service struct {
	repo     *repo.Repository
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:     p.Repository,
		cache:    p.Cache,
		cacheTTL: p.Config.Cache.DefaultTTL,
		logger:   p.Logger,
	}
}

// Create adds a product to the catalog.
func (s *Service) Create(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return errorbank.BadRequest("product payload is required")
	}
	ctx, span := serviceTracer.Start(ctx, "ProductService.Create", trace.WithAttributes(attribute.String("product.name", product.Name)))
	defer span.End()

	if err := s.repo.Create(ctx, product); err != nil {
		return failed(span, err, "failed to create product")
	}
	s.invalidate(ctx)
	return nil
}

// Update overwrites name, price and description. Orders pick up the new
// price immediately since line items never snapshot it.
func (s *Service) Update(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return errorbank.BadRequest("product payload is required")
	}
	ctx, span := serviceTracer.Start(ctx, "ProductService.Update", trace.WithAttributes(attribute.Int64("product.id", product.ID)))
	defer span.End()

	if err := s.repo.Update(ctx, product); err != nil {
		return failed(span, err, "failed to update product")
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Delete", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		return failed(span, err, "failed to delete product")
	}
	s.invalidate(ctx)
	return nil
}

// List returns the catalog, served from cache when possible.
func (s *Service) List(ctx context.Context) ([]entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.List")
	defer span.End()

	products, err := cache.GetJSON[[]entity.Product](ctx, s.cache, catalogKey)
	if err == nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return products, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("products cache read failed", zap.Error(err))
	}

	products, err = s.repo.List(ctx)
	if err != nil {
		return nil, failed(span, err, "failed to list products")
	}

	if err := cache.SetJSON(ctx, s.cache, catalogKey, products, s.cacheTTL); err != nil {
		s.logger.Warn("products cache write failed", zap.Error(err))
	}
	return products, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, catalogKey); err != nil {
		s.logger.Warn("products cache invalidation failed", zap.Error(err))
	}
}

func failed(span trace.Span, err error, message string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "repository error")
	return errorbank.Internal(message, errorbank.WithCause(err))
}
