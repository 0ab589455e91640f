package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/ads-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/ads-dashboard-api/pkg/middleware"
)

func Healthcheck(views ViewCounter, database Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(views, database),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func Dashboard(manager *dashboard.Manager, loc *time.Location) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/views",
			Method:      http.MethodPost,
			Handler:     CreateView(manager),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/views/:id",
			Method:      http.MethodGet,
			Handler:     GetViewState(manager),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/views/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteView(manager),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/views/:id/metrics",
			Method:      http.MethodGet,
			Handler:     LoadViewMetrics(manager, loc),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/views/:id/refetch",
			Method:      http.MethodPost,
			Handler:     RefetchView(manager),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/views/:id/sync",
			Method:      http.MethodPost,
			Handler:     SyncView(manager),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func SyncStatus(reporter SyncStatusReporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
