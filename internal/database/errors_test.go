package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/restaurants/internal/database"
	"github.com/Additional-Code/restaurants/internal/database/dbtest"
	"github.com/Additional-Code/restaurants/internal/entity"
)

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	conns := dbtest.New(t)
	_, err := conns.Writer.NewInsert().Model(&entity.Group{Name: "Downtown"}).Exec(ctx)
	require.NoError(t, err)

	_, err = conns.Writer.NewInsert().Model(&entity.Group{Name: "Downtown"}).Exec(ctx)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
	assert.True(t, database.IsUniqueViolation(fmt.Errorf("insert: %w", err)))

	_, err = conns.Writer.ExecContext(ctx, "INSERT INTO missing_table (id) VALUES (1)")
	require.Error(t, err)
	assert.False(t, database.IsUniqueViolation(err))

	assert.True(t, database.IsUniqueViolation(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, database.IsUniqueViolation(&mysql.MySQLError{Number: 1452}))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
	assert.False(t, database.IsUniqueViolation(nil))
}
