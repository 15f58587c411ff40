package seeder

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/restaurants/internal/database"
	"github.com/Additional-Code/restaurants/internal/entity"
)

// Module exposes the Seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{db: conns.Writer, logger: logger}
}

// Result counts the rows a seeding run inserted.
type Result struct {
	Groups      int
	Restaurants int
}

const sampleGroup = "Downtown"

func sampleRestaurants() []entity.Restaurant {
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }
	budget := func(b entity.Budget) *entity.Budget { return &b }

	return []entity.Restaurant{
		{Name: "Cafe Aroma", Address: str("123 Main St"), Type: str("cafe"), Budget: budget(entity.BudgetModerate), Rating: num(4)},
		{Name: "Noodle Bar", Address: str("8 Harbour Rd"), Type: str("noodles"), Budget: budget(entity.BudgetLow), Description: str("Hand pulled noodles"), Rating: num(5)},
		{Name: "The Grill Room", Address: str("1 Market Sq"), Type: str("steakhouse"), Budget: budget(entity.BudgetHigh), Rating: num(3)},
	}
}

// Restaurants seeds the sample group and its restaurants, skipping rows
// that already exist so it can be re-run safely.
func (s *Seeder) Restaurants(ctx context.Context) (Result, error) {
	var res Result
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		group := entity.Group{Name: sampleGroup}
		err := tx.NewSelect().Model(&group).Where("g.name = ?", group.Name).Limit(1).Scan(ctx)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.NewInsert().Model(&group).Exec(ctx); err != nil {
				return err
			}
			res.Groups++
		case err != nil:
			return err
		}

		for _, sample := range sampleRestaurants() {
			restaurant := sample
			restaurant.GroupID = &group.ID

			exists, err := tx.NewSelect().Model((*entity.Restaurant)(nil)).
				Where("r.name = ?", restaurant.Name).
				Where("r.group_id = ?", group.ID).
				Exists(ctx)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if _, err := tx.NewInsert().Model(&restaurant).Exec(ctx); err != nil {
				return err
			}
			res.Restaurants++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("seeded restaurants",
		zap.String("group", sampleGroup),
		zap.Int("groups", res.Groups),
		zap.Int("restaurants", res.Restaurants),
	)
	return res, nil
}
