package main

import (
	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/config"
	"github.com/duccv/weather-tracker/internal/app"
	"github.com/duccv/weather-tracker/pkg/logger"
)

//	@title			WEATHER TRACKER APIs
//	@version		1.0
//	@description	Postal code weather lookup with per-user history.
//	@termsOfService	http://swagger.io/terms/
//	@contact.name	DucCV

// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				JWT authorization header
func main() {
	env := config.GetEnv()

	zapLogger := logger.GetLogger(env.LoggerConfig)
	zap.ReplaceGlobals(zapLogger)
	defer zapLogger.Sync()

	if err := app.Run(env); err != nil {
		zap.L().Fatal("Service stopped with error", zap.Error(err))
	}
}
