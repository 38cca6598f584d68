package provider

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/model"
	"github.com/duccv/weather-tracker/internal/validation"
	"github.com/duccv/weather-tracker/pkg/cache"
)

// GeoResolver turns a postal code into coordinates.
type GeoResolver struct {
	client      Executor
	baseURL     string
	apiKey      string
	countryCode string
	cache       *cache.Loader[model.Coordinates]
}

type GeoOption func(*GeoResolver)

func WithCountryCode(code string) GeoOption {
	return func(r *GeoResolver) {
		if code != "" {
			r.countryCode = code
		}
	}
}

// WithCoordinatesCache puts a read-through cache in front of the
// geocoding endpoint.
func WithCoordinatesCache(loader *cache.Loader[model.Coordinates]) GeoOption {
	return func(r *GeoResolver) {
		r.cache = loader
	}
}

func NewGeoResolver(client Executor, baseURL, apiKey string, opts ...GeoOption) *GeoResolver {
	r := &GeoResolver{
		client:      client,
		baseURL:     baseURL,
		apiKey:      apiKey,
		countryCode: constant.DefaultCountry,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve validates postalCode before any network call.
func (r *GeoResolver) Resolve(ctx context.Context, postalCode string) (*model.Coordinates, error) {
	if !validation.ValidPostalCode(postalCode) {
		return nil, apperror.Validation(constant.MsgInvalidPostalCode)
	}

	if r.cache == nil {
		coords, err := r.fetch(ctx, postalCode)
		if err != nil {
			return nil, err
		}
		return &coords, nil
	}

	coords, err := r.cache.Get(ctx, r.countryCode+":"+postalCode, func(ctx context.Context) (model.Coordinates, error) {
		return r.fetch(ctx, postalCode)
	})
	if err != nil {
		return nil, err
	}
	return &coords, nil
}

func (r *GeoResolver) fetch(ctx context.Context, postalCode string) (model.Coordinates, error) {
	path := BuildURI(constant.GeoCoordinatesURI, map[string]string{
		"postalCode":  postalCode,
		"countryCode": r.countryCode,
		"apiKey":      r.apiKey,
	})

	var coords model.Coordinates
	if err := r.client.Execute(ctx, r.baseURL, path, http.MethodGet, &coords); err != nil {
		zap.L().Warn("Geocoding failed", zap.String("postalCode", postalCode), zap.Error(err))
		return coords, mapUpstreamError(err,
			"Location not found for postal code: "+postalCode,
			"Error fetching coordinates")
	}

	zap.L().Debug("Resolved coordinates",
		zap.String("postalCode", postalCode),
		zap.Float64("lat", coords.Lat),
		zap.Float64("lon", coords.Lon))
	return coords, nil
}
