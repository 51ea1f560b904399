package fx

import (
	"clan-dashboard/internal/api"
	"clan-dashboard/internal/config"
	"clan-dashboard/internal/logger"
	"clan-dashboard/internal/server"
	"clan-dashboard/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(logger.New),
	// api client
	fx.Provide(fx.Annotate(api.NewClient, fx.As(new(api.StatsProvider)))),
	// svc
	fx.Provide(service.NewDashboardService),
	// server
	fx.Provide(server.NewDashboardServer),
	fx.Provide(server.NewRouter),
)
