// Package app wires configuration, storage and transport into a running
// service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/config"
	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/handler"
	"github.com/duccv/weather-tracker/internal/middleware"
	"github.com/duccv/weather-tracker/internal/model"
	"github.com/duccv/weather-tracker/internal/provider"
	"github.com/duccv/weather-tracker/internal/repository"
	"github.com/duccv/weather-tracker/internal/security"
	"github.com/duccv/weather-tracker/internal/service"
	"github.com/duccv/weather-tracker/pkg/cache"
	"github.com/duccv/weather-tracker/pkg/database"
	"github.com/duccv/weather-tracker/pkg/httpclient"
	"github.com/duccv/weather-tracker/pkg/logger"
	"github.com/duccv/weather-tracker/pkg/metrics"
	httpserver "github.com/duccv/weather-tracker/pkg/server/http"
)

const mainDatabase = "main"

type repositories struct {
	users   repository.UserRepository
	weather repository.WeatherRepository
}

// Run starts the service and blocks until a termination signal arrives or
// the HTTP server fails.
func Run(env *config.Env) error {
	log := logger.WithComponent(zap.L(), "app")
	ctx := context.Background()

	tokens, err := security.NewJWTService(env.JWTConfig.Secret,
		security.WithTTL(time.Duration(env.JWTConfig.ExpirationHours)*time.Hour))
	if err != nil {
		return fmt.Errorf("jwt: %w", err)
	}

	dbFactory := database.NewDatabaseFactory()
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbFactory.CloseAll(closeCtx)
	}()

	repos, err := newRepositories(ctx, env, dbFactory)
	if err != nil {
		return err
	}

	memCache := cache.NewCache(env.CacheConfig)
	defer func() {
		stats := memCache.Stats()
		log.Info("Coordinates cache stats",
			zap.Uint64("hits", stats.Hits),
			zap.Uint64("misses", stats.Misses),
			zap.Uint64("evictions", stats.Evictions),
			zap.Uint64("expired", stats.Expired))
		memCache.Stop()
	}()

	var redisClient *redis.Client
	if env.RedisConfig.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, env.RedisConfig)
		if err != nil {
			log.Warn("Redis unavailable, coordinates are cached in memory only", zap.Error(err))
		} else {
			defer redisClient.Close()
		}
	}
	api := env.WeatherAPIConfig
	coordinates := cache.NewLoader[model.Coordinates](memCache, redisClient, cache.LoaderOptions{
		Prefix:       "geo:",
		MemTTL:       env.CacheConfig.DefaultTTL,
		RedisTTL:     env.CacheConfig.RedisTTL,
		RedisTimeout: time.Duration(env.CacheConfig.RedisTimeoutMs) * time.Millisecond,
		FetchTimeout: upstreamBudget(api),
	})

	var recorder *metrics.UpstreamRecorder
	if env.MetricsConfig.Enabled {
		recorder = metrics.NewUpstreamRecorder(metrics.GetMonitor(env.MetricsConfig.Path, env.MetricsConfig.SlowTime))
	}

	client := httpclient.New(
		httpclient.HTTPClient(&http.Client{Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: api.MaxIdleConnsPerHost,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		}}),
		httpclient.Timeout(time.Duration(api.TimeoutSeconds)*time.Second),
		httpclient.MaxAttempts(api.MaxAttempts),
		httpclient.InitialInterval(time.Duration(api.BackoffSeconds)*time.Second),
		httpclient.MaxInterval(time.Duration(api.MaxBackoffSeconds)*time.Second),
		httpclient.CircuitBreaker("weather-api", api.BreakerFailures, time.Duration(api.BreakerTimeoutSeconds)*time.Second),
		httpclient.OnAttempt(recorder.ObserveAttempt),
		httpclient.OnRetry(recorder.ObserveRetry),
		httpclient.RequestEditor(forwardCorrelationID),
	)

	weather := service.NewWeatherService(
		provider.NewGeoResolver(client, api.URL, api.AppID,
			provider.WithCountryCode(api.CountryCode),
			provider.WithCoordinatesCache(coordinates)),
		provider.NewWeatherFetcher(client, api.URL, api.AppID),
		repos.weather,
	)
	users := service.NewUserService(repos.users, security.NewBcryptHasher(0))

	mwConfig := middleware.DefaultMiddlewareConfig()
	mwConfig.PublicPrefixes = append(mwConfig.PublicPrefixes, env.MetricsConfig.Path)
	if env.AppConfig.PathPrefix != "" {
		mwConfig.PublicPrefixes = append(mwConfig.PublicPrefixes, env.AppConfig.PathPrefix+"/swagger")
	}

	translator := apperror.NewTranslator(apperror.DefaultTable())
	srv := httpserver.New(env,
		httpserver.Port(strconv.Itoa(env.AppConfig.Port)),
		httpserver.Timeout(time.Duration(env.AppConfig.RequestTimeout)*time.Second),
		httpserver.Translator(translator),
	)
	handler.NewRouter(handler.Dependencies{
		Users:            users,
		Weather:          weather,
		Tokens:           tokens,
		Verifier:         tokens,
		Translator:       translator,
		MiddlewareConfig: mwConfig,
	}).Register(srv.App)

	srv.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case s := <-interrupt:
		log.Info("Shutting down", zap.String("signal", s.String()))
	case serveErr = <-srv.Notify():
		log.Error("HTTP server stopped", zap.Error(serveErr))
	}

	if err := srv.Shutdown(); err != nil {
		log.Error("HTTP server shutdown", zap.Error(err))
	}
	return serveErr
}

func newRepositories(ctx context.Context, env *config.Env, dbFactory *database.DatabaseFactory) (*repositories, error) {
	if database.DatabaseType(env.DatabaseConfig.Type) == database.InMemory {
		zap.L().Warn("Using in-memory storage, data is lost on restart")
		return &repositories{
			users:   repository.NewMemoryUserRepository(),
			weather: repository.NewMemoryWeatherRepository(),
		}, nil
	}

	db, err := dbFactory.CreateDatabase(ctx, mainDatabase, &env.DatabaseConfig)
	if err != nil {
		return nil, err
	}
	mongoDB, ok := db.(*database.MongoDB)
	if !ok {
		return nil, fmt.Errorf("unsupported database type: %s", db.GetType())
	}

	users := repository.NewMongoUserRepository(mongoDB.DB())
	weather := repository.NewMongoWeatherRepository(mongoDB.DB())

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := users.EnsureIndexes(indexCtx); err != nil {
		return nil, fmt.Errorf("user indexes: %w", err)
	}
	if err := weather.EnsureIndexes(indexCtx); err != nil {
		return nil, fmt.Errorf("weather indexes: %w", err)
	}

	return &repositories{users: users, weather: weather}, nil
}

func forwardCorrelationID(ctx context.Context, req *http.Request) {
	if id := middleware.CorrelationID(ctx); id != "" {
		req.Header.Set(constant.HeaderCorrelationID, id)
	}
}

// upstreamBudget is the longest one geocode lookup can take: every attempt
// timing out plus every backoff wait.
func upstreamBudget(api config.WeatherAPIConfig) time.Duration {
	attempts := max(api.MaxAttempts, 1)
	budget := time.Duration(attempts*api.TimeoutSeconds) * time.Second

	wait := time.Duration(api.BackoffSeconds) * time.Second
	maxWait := time.Duration(api.MaxBackoffSeconds) * time.Second
	for i := 1; i < attempts; i++ {
		if maxWait > 0 {
			wait = min(wait, maxWait)
		}
		budget += wait
		wait *= 2
	}
	return budget
}
