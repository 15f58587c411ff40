package group

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
	service "github.com/Additional-Code/restaurants/internal/service/group"
	"github.com/Additional-Code/restaurants/pkg/errorbank"
	"github.com/Additional-Code/restaurants/pkg/record"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/restaurants/transport/http/group")

// Handler exposes group endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a group Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/groups")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.getByID)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	var limit, offset int
	err := echo.QueryParamsBinder(c).
		Int("limit", &limit).
		Int("offset", &offset).
		BindError()
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid query", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "groups.list")
	defer span.End()

	groups, total, err := h.svc.List(ctx, limit, offset)
	if err != nil {
		return b.WithError(err).Build()
	}

	data := make([]record.Mapping, len(groups))
	for i, g := range groups {
		data[i] = g.ToMap(false)
	}
	return b.WithData(data).WithPage(total, h.svc.PageSize(limit), max(offset, 0)).Build()
}

// getByID renders a group; ?relationships=true embeds its restaurants.
func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}
	var include bool
	if err := echo.QueryParamsBinder(c).Bool("relationships", &include).BindError(); err != nil {
		return b.WithError(errorbank.BadRequest("invalid relationships flag", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "groups.getByID", trace.WithAttributes(
		attribute.Int64("group.id", id),
		attribute.Bool("group.relationships", include),
	))
	defer span.End()

	group, err := h.svc.Get(ctx, id, include)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(group.ToMap(include)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload dto.GroupRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	group := &entity.Group{Name: payload.Name}

	ctx, span := httpTracer.Start(c.Request().Context(), "groups.create")
	defer span.End()

	if err := h.svc.Create(ctx, group); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(group.ToMap(false)).Build()
}
