package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/restaurants/internal/database"
	"github.com/Additional-Code/restaurants/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/restaurants/repository/group")

// ErrNotFound is returned when a group is missing.
var ErrNotFound = errors.New("group not found")

// ErrDuplicateName is returned when the unique name index rejects an insert.
var ErrDuplicateName = errors.New("group name already exists")

// Repository encapsulates read/write access for restaurant groups.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{writer: conns.Writer, reader: conns.Reader}
}

// Create inserts the group and assigns its id.
func (r *Repository) Create(ctx context.Context, group *entity.Group) error {
	if group == nil {
		return errors.New("nil group")
	}
	ctx, span := repoTracer.Start(ctx, "GroupRepository.Create", trace.WithAttributes(attribute.String("group.name", group.Name)))
	defer span.End()

	if _, err := r.writer.NewInsert().Model(group).Exec(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateName, err)
		}
		return err
	}
	return nil
}

// GetByID fetches a group. withRestaurants also loads its restaurants,
// ordered by id.
func (r *Repository) GetByID(ctx context.Context, id int64, withRestaurants bool) (*entity.Group, error) {
	ctx, span := repoTracer.Start(ctx, "GroupRepository.GetByID", trace.WithAttributes(
		attribute.Int64("group.id", id),
		attribute.Bool("group.with_restaurants", withRestaurants),
	))
	defer span.End()

	group := &entity.Group{ID: id}
	q := r.reader.NewSelect().Model(group).WherePK()
	if withRestaurants {
		q = q.Relation("Restaurants", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("id ASC")
		})
	}

	err := q.Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	if withRestaurants && group.Restaurants == nil {
		group.Restaurants = []*entity.Restaurant{}
	}
	return group, nil
}

// List returns one page of groups ordered by id with the total count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*entity.Group, int, error) {
	ctx, span := repoTracer.Start(ctx, "GroupRepository.List")
	defer span.End()

	var groups []*entity.Group
	q := r.reader.NewSelect().Model(&groups).OrderExpr("g.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	total, err := q.ScanAndCount(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, 0, err
	}
	return groups, total, nil
}

// Exists reports whether a group with the given id is stored.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.reader.NewSelect().Model((*entity.Group)(nil)).Where("g.id = ?", id).Exists(ctx)
}

// NameTaken reports whether another group already uses name.
func (r *Repository) NameTaken(ctx context.Context, name string) (bool, error) {
	return r.reader.NewSelect().Model((*entity.Group)(nil)).Where("g.name = ?", name).Exists(ctx)
}
