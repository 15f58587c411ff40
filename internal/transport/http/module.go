package http

import (
	"go.uber.org/fx"

	grouptransport "github.com/Additional-Code/restaurants/internal/transport/http/group"
	restauranttransport "github.com/Additional-Code/restaurants/internal/transport/http/restaurant"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	restauranttransport.Module,
	grouptransport.Module,
)
