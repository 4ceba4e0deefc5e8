package internal

import (
	"fmt"
	"net/http"

	"nanowatch/internal/config"
	"nanowatch/internal/middlewares"
)

//StatusRoute health check route
func StatusRoute() (route config.Route) {
	route = config.Route{
		Path:    "/health",
		Method:  http.MethodGet,
		Handler: middlewares.RuntimeHealthCheck(),
	}
	return route
}

type ServerConfig interface {
	Version() string
}

func SetupServer(cfg ServerConfig, attendanceHandler AttendanceHandler) *config.Server {
	basePath := fmt.Sprintf("/%v", cfg.Version())
	server := config.NewServer().
		WithRoutes(
			"", StatusRoute(),
		).
		WithRoutes(
			basePath,
			Route(attendanceHandler),
		)
	return server
}
