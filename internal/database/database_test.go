package database_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/Additional-Code/restaurants/internal/database"
	"github.com/Additional-Code/restaurants/internal/database/dbtest"
	"github.com/Additional-Code/restaurants/internal/entity"
	"github.com/Additional-Code/restaurants/pkg/record"
)

type driftedMenu struct {
	bun.BaseModel `bun:"table:menus"`

	ID    int64  `bun:",pk,autoincrement"`
	Title string `bun:"title"`
	Price int    `bun:"price"`
}

func (*driftedMenu) Descriptor() record.Descriptor {
	return record.Descriptor{Columns: []string{"id", "title", "currency"}}
}

func TestCheckModelsAcceptsEntities(t *testing.T) {
	conns := dbtest.New(t)

	require.NoError(t, database.CheckModels(conns.Writer, entity.Models()...))
}

func TestCheckModelsReportsDrift(t *testing.T) {
	conns := dbtest.New(t)

	err := database.CheckModels(conns.Writer, (*driftedMenu)(nil))

	require.Error(t, err)
	assert.True(t, errors.Is(err, database.ErrSchemaMismatch))
	assert.Contains(t, err.Error(), "undeclared price")
	assert.Contains(t, err.Error(), "unknown currency")
}

func TestSelectDialect(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		_, err := database.SelectDialect(driver)
		assert.NoError(t, err, driver)
	}
	_, err := database.SelectDialect("oracle")
	assert.Error(t, err)
}
