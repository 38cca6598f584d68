// Package handler exposes the services over HTTP.
package handler

import (
	"context"

	"github.com/duccv/weather-tracker/internal/model"
	"github.com/duccv/weather-tracker/internal/model/request"
	"github.com/duccv/weather-tracker/internal/model/response"
)

type UserService interface {
	Register(ctx context.Context, req request.RegisterRequest) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	Activate(ctx context.Context, identity *model.Identity, username string) (*model.User, error)
	Deactivate(ctx context.Context, identity *model.Identity, username string) (*model.User, error)
}

type WeatherService interface {
	GetWeatherData(ctx context.Context, identity *model.Identity, req request.WeatherRequest) (*model.WeatherData, error)
	GetHistoryByPostalCode(ctx context.Context, postalCode string) (*response.WeatherResponse, error)
	GetHistoryByUsername(ctx context.Context, identity *model.Identity, username string) (*response.WeatherResponse, error)
}

type TokenIssuer interface {
	GenerateToken(username string) (string, error)
}
