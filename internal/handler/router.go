package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/middleware"
	"github.com/duccv/weather-tracker/internal/model/request"
	"github.com/duccv/weather-tracker/internal/validation"
)

type Dependencies struct {
	Users            UserService
	Weather          WeatherService
	Tokens           TokenIssuer
	Verifier         middleware.TokenVerifier
	Translator       *apperror.Translator
	MiddlewareConfig *middleware.MiddlewareConfig
}

type Router struct {
	auth       *AuthHandler
	weather    *WeatherHandler
	gate       *middleware.JWTAuthMiddleware
	logging    *middleware.LoggingMiddleware
	translator *apperror.Translator
}

func NewRouter(deps Dependencies) *Router {
	if deps.Translator == nil {
		deps.Translator = apperror.NewTranslator(apperror.DefaultTable())
	}
	if deps.MiddlewareConfig == nil {
		deps.MiddlewareConfig = middleware.DefaultMiddlewareConfig()
	}
	return &Router{
		auth:       NewAuthHandler(deps.Users, deps.Tokens, deps.Translator),
		weather:    NewWeatherHandler(deps.Weather, deps.Translator),
		gate:       middleware.NewJWTAuthMiddleware(deps.Verifier, deps.Translator, deps.MiddlewareConfig),
		logging:    middleware.NewLoggingMiddleware(deps.MiddlewareConfig),
		translator: deps.Translator,
	}
}

// Register installs the request middleware and every API route on engine.
func (r *Router) Register(engine *gin.Engine) {
	tr := r.translator

	engine.Use(
		middleware.CorrelationIDMiddleware(),
		r.logging.RequestLogger(),
		r.gate.Authenticate(),
	)
	engine.NoRoute(func(c *gin.Context) {
		tr.Abort(c, apperror.ResourceNotFound("No handler found for "+c.Request.Method+" "+c.Request.URL.Path))
	})

	v1 := engine.Group(constant.APIPrefix)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", validation.Validate[request.RegisterRequest, any, any](tr), r.auth.Register)
		auth.POST("/token", validation.Validate[request.TokenRequest, any, any](tr), r.auth.Token)
		auth.PUT("/users/:username/activate", validation.Validate[any, request.UsernameParam, any](tr), r.auth.Activate)
		auth.PUT("/users/:username/deactivate", validation.Validate[any, request.UsernameParam, any](tr), r.auth.Deactivate)
	}

	weather := v1.Group("/weather")
	{
		weather.POST("/info", validation.Validate[request.WeatherRequest, any, any](tr), r.weather.GetWeatherInfo)
		weather.GET("/history/postal-code/:postalCode", validation.Validate[any, request.PostalCodeParam, request.HistoryQuery](tr), r.weather.HistoryByPostalCode)
		weather.GET("/history/user/:username", validation.Validate[any, request.UsernameParam, request.HistoryQuery](tr), r.weather.HistoryByUser)
	}
}
