package group

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Additional-Code/restaurants/internal/config"
	"github.com/Additional-Code/restaurants/internal/entity"
	repo "github.com/Additional-Code/restaurants/internal/repository/group"
	"github.com/Additional-Code/restaurants/internal/validation"
	"github.com/Additional-Code/restaurants/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/restaurants/service/group")

// Service manages restaurant groups.
type Service struct {
	repo    *repo.Repository
	listing config.Listing
	logger  *zap.Logger
}

// NewService wires a new group Service.
func NewService(r *repo.Repository, cfg config.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: r, listing: cfg.Listing, logger: logger}
}

// Get loads a group; includeRestaurants also loads the restaurants it owns.
func (s *Service) Get(ctx context.Context, id int64, includeRestaurants bool) (*entity.Group, error) {
	ctx, span := serviceTracer.Start(ctx, "GroupService.Get", trace.WithAttributes(attribute.Int64("group.id", id)))
	defer span.End()

	group, err := s.repo.GetByID(ctx, id, includeRestaurants)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("group not found", errorbank.WithDetail("id", id))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load group", errorbank.WithCause(err))
	}
	return group, nil
}

// List returns a page of groups and the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entity.Group, int, error) {
	ctx, span := serviceTracer.Start(ctx, "GroupService.List")
	defer span.End()

	groups, total, err := s.repo.List(ctx, s.PageSize(limit), max(offset, 0))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, 0, errorbank.Internal("failed to list groups", errorbank.WithCause(err))
	}
	return groups, total, nil
}

// PageSize is the number of rows List returns for a requested limit.
func (s *Service) PageSize(limit int) int {
	return s.listing.Clamp(limit)
}

// Create validates and stores a group. Names are unique.
func (s *Service) Create(ctx context.Context, group *entity.Group) error {
	if group == nil {
		return errorbank.BadRequest("group payload is required")
	}
	group.ID = 0
	group.Name = strings.TrimSpace(group.Name)
	group.Restaurants = nil

	ctx, span := serviceTracer.Start(ctx, "GroupService.Create", trace.WithAttributes(attribute.String("group.name", group.Name)))
	defer span.End()

	if err := validation.Struct(group); err != nil {
		return err
	}

	taken, err := s.repo.NameTaken(ctx, group.Name)
	if err != nil {
		span.RecordError(err)
		return errorbank.Internal("failed to check group name", errorbank.WithCause(err))
	}
	if taken {
		return errorbank.Conflict("group name already exists", errorbank.WithDetail("name", group.Name))
	}

	if err := s.repo.Create(ctx, group); err != nil {
		if errors.Is(err, repo.ErrDuplicateName) {
			return errorbank.Conflict("group name already exists", errorbank.WithDetail("name", group.Name))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to create group", errorbank.WithCause(err))
	}

	s.logger.Info("group created", zap.Int64("id", group.ID), zap.String("name", group.Name))
	return nil
}
