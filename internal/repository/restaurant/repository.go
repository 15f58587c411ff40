package restaurant

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/restaurants/internal/database"
	"github.com/Additional-Code/restaurants/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/restaurants/repository/restaurant")

// ErrNotFound is returned when a restaurant is missing.
var ErrNotFound = errors.New("restaurant not found")

// Filter narrows List results. Zero values disable a criterion.
type Filter struct {
	GroupID *int64
	Type    string
	Budget  *entity.Budget
	Limit   int
	Offset  int
}

// Repository encapsulates read/write access for restaurants.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create inserts the restaurant; the storage-assigned id is written back to it.
func (r *Repository) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	if restaurant == nil {
		return errors.New("nil restaurant")
	}
	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.Create", trace.WithAttributes(attribute.String("restaurant.name", restaurant.Name)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(restaurant).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// GetByID fetches a restaurant by primary key using the read replica when available.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Restaurant, error) {
	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.GetByID", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	restaurant := &entity.Restaurant{ID: id}
	err := r.reader.NewSelect().Model(restaurant).WherePK().Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return restaurant, nil
}

// List returns one page of restaurants ordered by id, and the total number
// of restaurants matching the filter.
func (r *Repository) List(ctx context.Context, f Filter) ([]*entity.Restaurant, int, error) {
	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.List", trace.WithAttributes(
		attribute.Int("list.limit", f.Limit),
		attribute.Int("list.offset", f.Offset),
	))
	defer span.End()

	var restaurants []*entity.Restaurant
	q := r.reader.NewSelect().Model(&restaurants).OrderExpr("r.id ASC")
	if f.GroupID != nil {
		q = q.Where("r.group_id = ?", *f.GroupID)
	}
	if f.Type != "" {
		q = q.Where("r.type = ?", f.Type)
	}
	if f.Budget != nil {
		q = q.Where("r.budget = ?", *f.Budget)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, 0, err
	}
	return restaurants, total, nil
}

// Update overwrites every column of an existing restaurant.
func (r *Repository) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	if restaurant == nil {
		return errors.New("nil restaurant")
	}
	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.Update", trace.WithAttributes(attribute.Int64("restaurant.id", restaurant.ID)))
	defer span.End()

	res, err := r.writer.NewUpdate().Model(restaurant).WherePK().Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return err
	}
	return requireAffected(span, res)
}

// Delete removes a restaurant by primary key.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.Delete", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	res, err := r.writer.NewDelete().Model(&entity.Restaurant{ID: id}).WherePK().Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return err
	}
	return requireAffected(span, res)
}

func requireAffected(span trace.Span, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		span.RecordError(err)
		return err
	}
	if n == 0 {
		span.SetStatus(codes.Error, "not found")
		return ErrNotFound
	}
	return nil
}
