package app

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/padoca/internal/cache"
	"github.com/Additional-Code/padoca/internal/config"
	"github.com/Additional-Code/padoca/internal/database"
	"github.com/Additional-Code/padoca/internal/logger"
	"github.com/Additional-Code/padoca/internal/messaging"
	"github.com/Additional-Code/padoca/internal/migration"
	"github.com/Additional-Code/padoca/internal/observability"
	repositorycustomer "github.com/Additional-Code/padoca/internal/repository/customer"
	repositoryorder "github.com/Additional-Code/padoca/internal/repository/order"
	repositoryproduct "github.com/Additional-Code/padoca/internal/repository/product"
	grpcserver "github.com/Additional-Code/padoca/internal/server/grpc"
	httpserver "github.com/Additional-Code/padoca/internal/server/http"
	servicecustomer "github.com/Additional-Code/padoca/internal/service/customer"
	serviceorder "github.com/Additional-Code/padoca/internal/service/order"
	serviceproduct "github.com/Additional-Code/padoca/internal/service/product"
	transporthttp "github.com/Additional-Code/padoca/internal/transport/http"
	"github.com/Additional-Code/padoca/internal/worker"
	workerorder "github.com/Additional-Code/padoca/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	migration.Module,
	repositorycustomer.Module,
	repositoryproduct.Module,
	repositoryorder.Module,
	servicecustomer.Module,
	serviceproduct.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP and gRPC health servers on top of the core modules.
var HTTP = fx.Options(
	Core,
	migration.AutoMigrate,
	httpserver.Module,
	grpcserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
