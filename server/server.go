package server

import (
	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	"github.com/LerianStudio/lib-device-license-go/internal/config"
	"github.com/LerianStudio/lib-device-license-go/pkg"
	"github.com/LerianStudio/lib-device-license-go/service"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Server exposes the License Service over HTTP.
type Server struct {
	svc      *service.Service
	cfg      config.ServerConfig
	logger   log.Logger
	validate *validator.Validate
	metrics  *Metrics
	limiter  *addressLimiter
}

// New builds a Server. Metrics are registered on reg; a nil reg gets a private registry.
func New(svc *service.Service, cfg config.ServerConfig, reg *prometheus.Registry, logger log.Logger) *Server {
	if logger == nil {
		logger = zap.InitializeLogger()
	}

	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Server{
		svc:      svc,
		cfg:      cfg,
		logger:   logger,
		validate: pkg.NewValidator(),
		metrics:  NewMetrics(reg),
		limiter:  newAddressLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	}
}

// App returns a fiber application with every route mounted.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s.Register(app)

	return app
}
