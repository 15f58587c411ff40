package group

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Additional-Code/restaurants/internal/config"
	"github.com/Additional-Code/restaurants/internal/database/dbtest"
	"github.com/Additional-Code/restaurants/internal/entity"
	grouprepo "github.com/Additional-Code/restaurants/internal/repository/group"
	restaurantrepo "github.com/Additional-Code/restaurants/internal/repository/restaurant"
	service "github.com/Additional-Code/restaurants/internal/service/group"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]int  `json:"meta"`
	Error struct {
		Kind string `json:"kind"`
	} `json:"error"`
}

type server struct {
	e           *echo.Echo
	restaurants *restaurantrepo.Repository
}

func newServer(t *testing.T) server {
	t.Helper()
	conns := dbtest.New(t)
	svc := service.NewService(grouprepo.NewRepository(conns), config.Config{
		Listing: config.Listing{DefaultLimit: 10, MaxLimit: 50},
	}, zaptest.NewLogger(t))
	e := echo.New()
	Register(e, NewHandler(svc))
	return server{e: e, restaurants: restaurantrepo.NewRepository(conns)}
}

func (s server) do(t *testing.T, method, target, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestGroupRelationshipsFlag(t *testing.T) {
	s := newServer(t)

	code, env := s.do(t, http.MethodPost, "/groups", `{"name":"Downtown"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"id":1,"name":"Downtown"}`, string(env.Data))

	groupID := int64(1)
	budget := entity.BudgetModerate
	require.NoError(t, s.restaurants.Create(context.Background(), &entity.Restaurant{
		Name:    "Cafe Aroma",
		Budget:  &budget,
		GroupID: &groupID,
	}))

	code, env = s.do(t, http.MethodGet, "/groups/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":1,"name":"Downtown"}`, string(env.Data))

	code, env = s.do(t, http.MethodGet, "/groups/1?relationships=true", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{
		"id": 1,
		"name": "Downtown",
		"restaurants": [{
			"id": 1,
			"name": "Cafe Aroma",
			"address": null,
			"type": null,
			"budget": "MODERATE",
			"description": null,
			"rating": null,
			"group_id": 1
		}]
	}`, string(env.Data))
}

func TestGroupWithoutRestaurantsExpandsToEmptyList(t *testing.T) {
	s := newServer(t)
	code, _ := s.do(t, http.MethodPost, "/groups", `{"name":"Harbour"}`)
	require.Equal(t, http.StatusCreated, code)

	code, env := s.do(t, http.MethodGet, "/groups/1?relationships=1", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":1,"name":"Harbour","restaurants":[]}`, string(env.Data))
}

func TestGroupErrors(t *testing.T) {
	s := newServer(t)
	code, _ := s.do(t, http.MethodPost, "/groups", `{"name":"Downtown"}`)
	require.Equal(t, http.StatusCreated, code)

	code, env := s.do(t, http.MethodPost, "/groups", `{"name":" Downtown "}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "conflict", env.Error.Kind)

	code, _ = s.do(t, http.MethodPost, "/groups", `{"name":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = s.do(t, http.MethodGet, "/groups/9", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodGet, "/groups/1?relationships=maybe", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListGroups(t *testing.T) {
	s := newServer(t)
	for _, name := range []string{"North", "South", "East"} {
		code, _ := s.do(t, http.MethodPost, "/groups", `{"name":"`+name+`"}`)
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := s.do(t, http.MethodGet, "/groups?limit=2&offset=1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]int{"total": 3, "limit": 2, "offset": 1}, env.Meta)
	assert.JSONEq(t, `[{"id":2,"name":"South"},{"id":3,"name":"East"}]`, string(env.Data))
}
