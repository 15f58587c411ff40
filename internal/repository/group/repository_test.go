package group_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/restaurants/internal/database/dbtest"
	"github.com/Additional-Code/restaurants/internal/entity"
	grouprepo "github.com/Additional-Code/restaurants/internal/repository/group"
	restaurantrepo "github.com/Additional-Code/restaurants/internal/repository/restaurant"
)

func TestGetByIDWithRestaurants(t *testing.T) {
	conns := dbtest.New(t)
	groups := grouprepo.NewRepository(conns)
	restaurants := restaurantrepo.NewRepository(conns)
	ctx := context.Background()

	g := &entity.Group{Name: "Downtown"}
	require.NoError(t, groups.Create(ctx, g))
	require.Positive(t, g.ID)

	for _, name := range []string{"Cafe Aroma", "Noodle Bar"} {
		require.NoError(t, restaurants.Create(ctx, &entity.Restaurant{Name: name, GroupID: &g.ID}))
	}
	require.NoError(t, restaurants.Create(ctx, &entity.Restaurant{Name: "Elsewhere"}))

	plain, err := groups.GetByID(ctx, g.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Downtown", plain.Name)
	assert.Nil(t, plain.Restaurants)

	loaded, err := groups.GetByID(ctx, g.ID, true)
	require.NoError(t, err)
	require.Len(t, loaded.Restaurants, 2)
	assert.Equal(t, "Cafe Aroma", loaded.Restaurants[0].Name)
	assert.Equal(t, "Noodle Bar", loaded.Restaurants[1].Name)
}

func TestGetByIDEmptyGroup(t *testing.T) {
	groups := grouprepo.NewRepository(dbtest.New(t))
	ctx := context.Background()
	g := &entity.Group{Name: "Empty"}
	require.NoError(t, groups.Create(ctx, g))

	loaded, err := groups.GetByID(ctx, g.ID, true)
	require.NoError(t, err)
	assert.NotNil(t, loaded.Restaurants)
	assert.Empty(t, loaded.Restaurants)
}

func TestGetByIDNotFound(t *testing.T) {
	groups := grouprepo.NewRepository(dbtest.New(t))

	_, err := groups.GetByID(context.Background(), 12, true)

	assert.ErrorIs(t, err, grouprepo.ErrNotFound)
}

func TestListAndLookups(t *testing.T) {
	groups := grouprepo.NewRepository(dbtest.New(t))
	ctx := context.Background()
	for _, name := range []string{"North", "South", "East"} {
		require.NoError(t, groups.Create(ctx, &entity.Group{Name: name}))
	}

	page, total, err := groups.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "North", page[0].Name)

	exists, err := groups.Exists(ctx, page[1].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = groups.Exists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, exists)

	taken, err := groups.NameTaken(ctx, "East")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestCreateDuplicateName(t *testing.T) {
	groups := grouprepo.NewRepository(dbtest.New(t))
	ctx := context.Background()
	require.NoError(t, groups.Create(ctx, &entity.Group{Name: "Harbour"}))

	err := groups.Create(ctx, &entity.Group{Name: "Harbour"})

	assert.ErrorIs(t, err, grouprepo.ErrDuplicateName)
}
