package app

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/restaurants/internal/cache"
	"github.com/Additional-Code/restaurants/internal/config"
	"github.com/Additional-Code/restaurants/internal/database"
	"github.com/Additional-Code/restaurants/internal/logger"
	"github.com/Additional-Code/restaurants/internal/messaging"
	"github.com/Additional-Code/restaurants/internal/observability"
	repositorygroup "github.com/Additional-Code/restaurants/internal/repository/group"
	repositoryrestaurant "github.com/Additional-Code/restaurants/internal/repository/restaurant"
	grpcserver "github.com/Additional-Code/restaurants/internal/server/grpc"
	httpserver "github.com/Additional-Code/restaurants/internal/server/http"
	servicegroup "github.com/Additional-Code/restaurants/internal/service/group"
	servicerestaurant "github.com/Additional-Code/restaurants/internal/service/restaurant"
	transporthttp "github.com/Additional-Code/restaurants/internal/transport/http"
	"github.com/Additional-Code/restaurants/internal/worker"
	workerrestaurant "github.com/Additional-Code/restaurants/internal/worker/restaurant"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositorygroup.Module,
	repositoryrestaurant.Module,
	servicegroup.Module,
	servicerestaurant.Module,
)

// HTTP wires the HTTP and gRPC servers on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	grpcserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerrestaurant.Module,
)

// Module is the default application wiring.
var Module = HTTP
