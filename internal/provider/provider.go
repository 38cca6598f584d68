// Package provider talks to the OpenWeather geocoding and current weather
// endpoints.
package provider

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/pkg/httpclient"
)

// Executor performs one logical upstream call, retries included.
type Executor interface {
	Execute(ctx context.Context, baseURL, path, method string, out any) error
}

// BuildURI substitutes {name} placeholders in template with query-escaped
// values.
func BuildURI(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", url.QueryEscape(v))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// mapUpstreamError classifies a failed upstream call.
func mapUpstreamError(err error, notFound string, unavailable string) error {
	var apiErr *httpclient.ApiClientError
	if errors.As(err, &apiErr) {
		return apperror.ApiClient(apiErr.StatusCode, apiErr.Message, err)
	}
	if httpclient.StatusCode(err) == http.StatusNotFound {
		return apperror.ResourceNotFound(notFound)
	}
	return apperror.WeatherServiceUnavailable(unavailable, err)
}
