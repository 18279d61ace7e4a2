package httpserver

import (
	"time"

	"github.com/avatarctic/trip-search/internal/core/ports"
	customMiddleware "github.com/avatarctic/trip-search/internal/infrastructure/httpserver/middleware"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type ServerDeps struct {
	TripService      ports.TripService
	SavedTripService ports.SavedTripService
	UserService      ports.UserService
	HealthCheckers   []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	tripService    ports.TripService
	savedTripSvc   ports.SavedTripService
	userService    ports.UserService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, jwtSecret string, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		tripService:    deps.TripService,
		savedTripSvc:   deps.SavedTripService,
		userService:    deps.UserService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.UserService,
			logger,
			jwtSecret,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	e.HTTPErrorHandler = server.errorHandler
	server.setupMiddleware()
	server.setupRoutes()

	return server
}
