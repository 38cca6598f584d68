package http_server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/config"
	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/pkg/metrics"

	_ "github.com/duccv/weather-tracker/docs"
)

type Server struct {
	App    *gin.Engine
	notify chan error
	server *http.Server

	address         string
	timeout         time.Duration
	shutdownTimeout time.Duration
	translator      *apperror.Translator
}

// New builds the engine with the infrastructure middleware, /health and
// swagger. Application routes are added on App by the caller.
func New(env *config.Env, opts ...Option) *Server {
	s := &Server{
		App:             nil,
		notify:          make(chan error, 1),
		address:         _defaultAddr,
		timeout:         _defaultTimeout,
		shutdownTimeout: _defaultShutdownTimeout,
		translator:      apperror.NewTranslator(nil),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.App = s.initGinServer(env)

	return s
}

func (s *Server) timeoutResponse(c *gin.Context) {
	s.translator.Abort(c, apperror.RequestTimeout())
}

func (s *Server) timeoutMiddleware() gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(s.timeout),
		timeout.WithResponse(s.timeoutResponse),
	)
}

// HealthCheck godoc
//
//	@Summary		Health Check
//	@Description	Returns status 200 if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func healthCheck(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) initGinServer(env *config.Env) *gin.Engine {
	if env.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.timeoutMiddleware())

	if env.MetricsConfig.Enabled {
		m := metrics.GetMonitor(env.MetricsConfig.Path, env.MetricsConfig.SlowTime)
		m.Use(r)
	}

	if env.CORSConfig.Enabled {
		corsConfig := cors.Config{
			AllowOrigins:     env.CORSConfig.AllowedOrigins,
			AllowMethods:     env.CORSConfig.AllowedMethods,
			AllowHeaders:     env.CORSConfig.AllowedHeaders,
			ExposeHeaders:    env.CORSConfig.ExposedHeaders,
			AllowCredentials: env.CORSConfig.AllowCredentials,
			MaxAge:           time.Duration(env.CORSConfig.MaxAge) * time.Second,
		}

		r.Use(cors.New(corsConfig))
	}

	r.GET("/health", healthCheck)

	// Swagger documentation
	r.GET(env.AppConfig.PathPrefix+"/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	return r
}

// Start -.
func (s *Server) Start() {
	s.server = &http.Server{
		Addr:              s.address,
		Handler:           s.App,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("HTTP server listening", zap.String("address", s.address))
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.notify <- err
		}
		close(s.notify)
	}()
}

// Notify -.
func (s *Server) Notify() <-chan error {
	return s.notify
}

// Shutdown drains in-flight requests for at most the shutdown timeout.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
