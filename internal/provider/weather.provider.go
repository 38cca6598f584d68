package provider

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/model"
)

// WeatherFetcher loads current conditions for coordinates.
type WeatherFetcher struct {
	client  Executor
	baseURL string
	apiKey  string
}

func NewWeatherFetcher(client Executor, baseURL, apiKey string) *WeatherFetcher {
	return &WeatherFetcher{client: client, baseURL: baseURL, apiKey: apiKey}
}

func (f *WeatherFetcher) Fetch(ctx context.Context, coords *model.Coordinates) (*model.WeatherData, error) {
	path := BuildURI(constant.CurrentWeatherURI, map[string]string{
		"lat":    strconv.FormatFloat(coords.Lat, 'f', -1, 64),
		"lon":    strconv.FormatFloat(coords.Lon, 'f', -1, 64),
		"apiKey": f.apiKey,
	})

	var data model.WeatherData
	if err := f.client.Execute(ctx, f.baseURL, path, http.MethodGet, &data); err != nil {
		zap.L().Warn("Weather lookup failed",
			zap.Float64("lat", coords.Lat),
			zap.Float64("lon", coords.Lon),
			zap.Error(err))
		return nil, mapUpstreamError(err,
			"Location not found for coordinates: "+coords.Name+"/"+coords.Country,
			"Error fetching weather data")
	}
	return &data, nil
}
