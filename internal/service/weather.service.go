package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/model"
	"github.com/duccv/weather-tracker/internal/model/request"
	"github.com/duccv/weather-tracker/internal/model/response"
	"github.com/duccv/weather-tracker/internal/repository"
	"github.com/duccv/weather-tracker/internal/security"
	"github.com/duccv/weather-tracker/internal/validation"
)

type CoordinateResolver interface {
	Resolve(ctx context.Context, postalCode string) (*model.Coordinates, error)
}

type WeatherFetcher interface {
	Fetch(ctx context.Context, coords *model.Coordinates) (*model.WeatherData, error)
}

type WeatherService struct {
	geo     CoordinateResolver
	fetcher WeatherFetcher
	repo    repository.WeatherRepository
	now     func() time.Time
}

func NewWeatherService(
	geo CoordinateResolver,
	fetcher WeatherFetcher,
	repo repository.WeatherRepository,
) *WeatherService {
	return &WeatherService{geo: geo, fetcher: fetcher, repo: repo, now: time.Now}
}

// GetWeatherData looks up current weather for req.PostalCode on behalf of
// the caller and stores the snapshot.
func (s *WeatherService) GetWeatherData(
	ctx context.Context,
	identity *model.Identity,
	req request.WeatherRequest,
) (*model.WeatherData, error) {
	if err := security.AssertSelfAccess(identity, req.Username); err != nil {
		return nil, err
	}
	if !validation.ValidPostalCode(req.PostalCode) {
		return nil, apperror.Validation(constant.MsgInvalidPostalCode)
	}

	coords, err := s.geo.Resolve(ctx, req.PostalCode)
	if err != nil {
		return nil, err
	}

	data, err := s.fetcher.Fetch(ctx, coords)
	if err != nil {
		return nil, err
	}

	data.UUID = ""
	data.PostalCode = req.PostalCode
	data.Username = req.Username
	data.RequestTime = s.now().UTC()

	if err := s.repo.Save(ctx, data); err != nil {
		return nil, apperror.DatabaseUnavailable("Database error while saving weather data", err)
	}

	zap.L().Info("Stored weather snapshot",
		zap.String("postalCode", data.PostalCode),
		zap.String("username", data.Username),
		zap.String("uuid", data.UUID))
	return data, nil
}

func (s *WeatherService) GetHistoryByPostalCode(ctx context.Context, postalCode string) (*response.WeatherResponse, error) {
	if !validation.ValidPostalCode(postalCode) {
		return nil, apperror.Validation(constant.MsgInvalidPostalCode)
	}

	entries, err := s.repo.FindByPostalCode(ctx, postalCode)
	if err != nil {
		return nil, apperror.DatabaseUnavailable("Database error while reading weather history", err)
	}
	if len(entries) == 0 {
		return nil, apperror.ResourceNotFound("No weather data found for postal code: " + postalCode)
	}

	resp := s.aggregate(entries)
	resp.PostalCode = postalCode
	return resp, nil
}

func (s *WeatherService) GetHistoryByUsername(
	ctx context.Context,
	identity *model.Identity,
	username string,
) (*response.WeatherResponse, error) {
	if err := security.AssertSelfAccess(identity, username); err != nil {
		return nil, err
	}

	entries, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperror.DatabaseUnavailable("Database error while reading weather history", err)
	}
	if len(entries) == 0 {
		return nil, apperror.ResourceNotFound("No weather data found for user: " + username)
	}

	resp := s.aggregate(entries)
	resp.Username = username
	return resp, nil
}

// aggregate expects entries newest first.
func (s *WeatherService) aggregate(entries []model.WeatherData) *response.WeatherResponse {
	history := make([]response.WeatherInfo, 0, len(entries))
	for i := range entries {
		history = append(history, toWeatherInfo(&entries[i]))
	}
	return &response.WeatherResponse{
		Timestamp: s.now().UTC(),
		Current:   history[0],
		History:   history,
	}
}

func toWeatherInfo(d *model.WeatherData) response.WeatherInfo {
	return response.WeatherInfo{
		Timestamp:   d.RequestTime,
		Temperature: d.Main.Temp,
		FeelsLike:   d.Main.FeelsLike,
		Humidity:    d.Main.Humidity,
		Description: d.Description(),
		WindSpeed:   d.Wind.Speed,
		Conditions:  d.Conditions(),
		Username:    d.Username,
		PostalCode:  d.PostalCode,
	}
}
