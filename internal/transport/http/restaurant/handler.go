package restaurant

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/restaurants/internal/dto"
	"github.com/Additional-Code/restaurants/internal/entity"
	"github.com/Additional-Code/restaurants/internal/presentation/http/response"
	service "github.com/Additional-Code/restaurants/internal/service/restaurant"
	"github.com/Additional-Code/restaurants/pkg/errorbank"
	"github.com/Additional-Code/restaurants/pkg/record"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/restaurants/transport/http/restaurant")

// Handler exposes restaurant endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a restaurant Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/restaurants")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.getByID)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	var params service.ListParams
	var groupID int64
	var budget string
	err := echo.QueryParamsBinder(c).
		Int64("group_id", &groupID).
		String("type", &params.Type).
		String("budget", &budget).
		Int("limit", &params.Limit).
		Int("offset", &params.Offset).
		BindError()
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid query", errorbank.WithCause(err))).Build()
	}
	if c.QueryParam("group_id") != "" {
		params.GroupID = &groupID
	}
	if budget != "" {
		parsed, err := entity.ParseBudget(budget)
		if err != nil {
			return b.WithError(errorbank.BadRequest("invalid budget", errorbank.WithCause(err))).Build()
		}
		params.Budget = &parsed
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.list")
	defer span.End()

	restaurants, total, err := h.svc.List(ctx, params)
	if err != nil {
		return b.WithError(err).Build()
	}

	data := make([]record.Mapping, len(restaurants))
	for i, r := range restaurants {
		data[i] = r.ToMap(false)
	}
	return b.WithData(data).WithPage(total, h.svc.PageSize(params.Limit), max(params.Offset, 0)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := parseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.getByID", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	restaurant, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(restaurant.ToMap(false)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload dto.RestaurantRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	restaurant := payload.ToEntity(0)

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.create")
	span.SetAttributes(
		attribute.String("restaurant.name", restaurant.Name),
	)
	defer span.End()

	if err := h.svc.Create(ctx, restaurant); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(restaurant.ToMap(false)).Build()
}

func (h *Handler) update(c echo.Context) error {
	b := response.New(c)

	id, err := parseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}
	var payload dto.RestaurantRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	restaurant := payload.ToEntity(id)

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.update", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	if err := h.svc.Update(ctx, restaurant); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(restaurant.ToMap(false)).Build()
}

func (h *Handler) delete(c echo.Context) error {
	b := response.New(c)

	id, err := parseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.delete", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}
	return b.NoContent()
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errorbank.BadRequest("invalid id", errorbank.WithCause(err))
	}
	return id, nil
}
