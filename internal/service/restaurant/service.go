package restaurant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/restaurants/internal/cache"
	"github.com/Additional-Code/restaurants/internal/config"
	"github.com/Additional-Code/restaurants/internal/entity"
	"github.com/Additional-Code/restaurants/internal/messaging"
	grouprepo "github.com/Additional-Code/restaurants/internal/repository/group"
	repo "github.com/Additional-Code/restaurants/internal/repository/restaurant"
	"github.com/Additional-Code/restaurants/internal/validation"
	"github.com/Additional-Code/restaurants/pkg/errorbank"
	"github.com/Additional-Code/restaurants/pkg/record"
)

const instrumentation = "github.com/Additional-Code/restaurants/service/restaurant"

var serviceTracer = otel.Tracer(instrumentation)

// Service encapsulates business logic around restaurants.
type Service struct {
	repo      *repo.Repository
	groups    *grouprepo.Repository
	cache     cache.Store
	cacheTTL  time.Duration
	listing   config.Listing
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig

	cacheHits   metric.Int64Counter
	cacheMisses metric.Int64Counter
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Groups     *grouprepo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	s := &Service{
		repo:      p.Repository,
		groups:    p.Groups,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		listing:   p.Config.Listing,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	meter := otel.Meter(instrumentation)
	var err error
	if s.cacheHits, err = meter.Int64Counter("restaurants.cache.hits"); err != nil {
		s.cacheHits = noop.Int64Counter{}
	}
	if s.cacheMisses, err = meter.Int64Counter("restaurants.cache.misses"); err != nil {
		s.cacheMisses = noop.Int64Counter{}
	}
	return s
}

// ListParams selects a page of restaurants.
type ListParams struct {
	GroupID *int64
	Type    string
	Budget  *entity.Budget
	Limit   int
	Offset  int
}

// Get retrieves a restaurant by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Restaurant, error) {
	ctx, span := serviceTracer.Start(ctx, "RestaurantService.Get", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	restaurant, err := s.getFromCache(ctx, id)
	if err == nil {
		s.cacheHits.Add(ctx, 1)
		return restaurant, nil
	}
	s.cacheMisses.Add(ctx, 1)
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("restaurants cache read failed", zap.Int64("id", id), zap.Error(err))
	}

	restaurant, err = s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("restaurant not found", errorbank.WithDetail("id", id))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load restaurant", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, restaurant); err != nil {
		s.logger.Warn("restaurants cache write failed", zap.Int64("id", id), zap.Error(err))
	}

	return restaurant, nil
}

// List returns a page of restaurants and the total number matching the filters.
// Limits outside (0, max] are clamped to the configured bounds.
func (s *Service) List(ctx context.Context, p ListParams) ([]*entity.Restaurant, int, error) {
	ctx, span := serviceTracer.Start(ctx, "RestaurantService.List")
	defer span.End()

	if p.Budget != nil && !p.Budget.Valid() {
		return nil, 0, errorbank.BadRequest("invalid budget filter")
	}

	offset := max(p.Offset, 0)

	restaurants, total, err := s.repo.List(ctx, repo.Filter{
		GroupID: p.GroupID,
		Type:    p.Type,
		Budget:  p.Budget,
		Limit:   s.PageSize(p.Limit),
		Offset:  offset,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, 0, errorbank.Internal("failed to list restaurants", errorbank.WithCause(err))
	}
	return restaurants, total, nil
}

// PageSize is the number of rows List returns for a requested limit.
func (s *Service) PageSize(limit int) int {
	return s.listing.Clamp(limit)
}

// Create validates and persists a new restaurant. Any id on the input is
// discarded; storage assigns it.
func (s *Service) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	if restaurant == nil {
		return errorbank.BadRequest("restaurant payload is required")
	}
	restaurant.ID = 0
	restaurant.Name = strings.TrimSpace(restaurant.Name)

	ctx, span := serviceTracer.Start(ctx, "RestaurantService.Create", trace.WithAttributes(attribute.String("restaurant.name", restaurant.Name)))
	defer span.End()

	if err := s.check(ctx, restaurant); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to create restaurant", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, restaurant); err != nil {
		s.logger.Warn("restaurants cache write failed", zap.Int64("id", restaurant.ID), zap.Error(err))
	}

	s.publish(ctx, EventCreated, restaurant.ID, restaurant)
	return nil
}

// Update replaces every field of an existing restaurant.
func (s *Service) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	if restaurant == nil {
		return errorbank.BadRequest("restaurant payload is required")
	}
	restaurant.Name = strings.TrimSpace(restaurant.Name)

	ctx, span := serviceTracer.Start(ctx, "RestaurantService.Update", trace.WithAttributes(attribute.Int64("restaurant.id", restaurant.ID)))
	defer span.End()

	if err := s.check(ctx, restaurant); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, restaurant); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("restaurant not found", errorbank.WithDetail("id", restaurant.ID))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to update restaurant", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, restaurant); err != nil {
		s.logger.Warn("restaurants cache write failed", zap.Int64("id", restaurant.ID), zap.Error(err))
	}

	s.publish(ctx, EventUpdated, restaurant.ID, restaurant)
	return nil
}

// Delete removes a restaurant and evicts it from the cache.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "RestaurantService.Delete", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("restaurant not found", errorbank.WithDetail("id", id))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to delete restaurant", errorbank.WithCause(err))
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, CacheKey(id)); err != nil {
			s.logger.Warn("restaurants cache evict failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	s.publish(ctx, EventDeleted, id, nil)
	return nil
}

// check validates field constraints and that a referenced group exists.
func (s *Service) check(ctx context.Context, restaurant *entity.Restaurant) error {
	if err := validation.Struct(restaurant); err != nil {
		return err
	}
	if restaurant.GroupID == nil || s.groups == nil {
		return nil
	}
	exists, err := s.groups.Exists(ctx, *restaurant.GroupID)
	if err != nil {
		return errorbank.Internal("failed to look up group", errorbank.WithCause(err))
	}
	if !exists {
		return errorbank.Unprocessable("group does not exist", errorbank.WithDetail("group_id", *restaurant.GroupID))
	}
	return nil
}

func (s *Service) publish(ctx context.Context, eventType EventType, id int64, restaurant *entity.Restaurant) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := RestaurantEvent{
		Type:       eventType,
		ID:         id,
		OccurredAt: time.Now().UTC(),
	}
	if restaurant != nil {
		event.Restaurant = restaurant.ToMap(false)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal restaurant event", zap.String("type", string(eventType)), zap.Error(err))
		return
	}
	key := []byte(fmt.Sprintf("restaurant-%d", id))
	headers := map[string]string{EventTypeHeader: string(eventType)}
	if err := s.publisher.Publish(ctx, key, payload, headers); err != nil {
		s.logger.Error("publish restaurant event", zap.String("type", string(eventType)), zap.Error(err))
	}
}

// CacheKey is the cache entry holding the restaurant with the given id.
func CacheKey(id int64) string {
	return fmt.Sprintf("restaurants:%d", id)
}

func (s *Service) getFromCache(ctx context.Context, id int64) (*entity.Restaurant, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, CacheKey(id))
	if err != nil {
		return nil, err
	}
	var restaurant entity.Restaurant
	if err := json.Unmarshal(bytes, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *Service) storeInCache(ctx context.Context, restaurant *entity.Restaurant) error {
	if s.cache == nil || restaurant == nil {
		return nil
	}
	bytes, err := json.Marshal(restaurant)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, CacheKey(restaurant.ID), bytes, s.cacheTTL)
}

// EventType names a restaurant lifecycle change.
type EventType string

const (
	EventCreated EventType = "restaurant.created"
	EventUpdated EventType = "restaurant.updated"
	EventDeleted EventType = "restaurant.deleted"
)

// EventTypeHeader carries the EventType on published messages.
const EventTypeHeader = "event-type"

// RestaurantEvent is emitted whenever a restaurant is created, updated or deleted.
// Restaurant holds the serialized record and is empty for deletions.
type RestaurantEvent struct {
	Type       EventType      `json:"type"`
	ID         int64          `json:"id"`
	Restaurant record.Mapping `json:"restaurant,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
