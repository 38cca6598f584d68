package response

import "time"

// WeatherResponse aggregates the history of one postal code or user,
// newest entry first.
type WeatherResponse struct {
	PostalCode string        `json:"postalCode,omitempty"`
	Username   string        `json:"username,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
	Current    WeatherInfo   `json:"current"`
	History    []WeatherInfo `json:"history"`
}

type WeatherInfo struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feelsLike"`
	Humidity    int       `json:"humidity"`
	Description string    `json:"description"`
	WindSpeed   float64   `json:"windSpeed"`
	Conditions  string    `json:"conditions"`
	Username    string    `json:"username"`
	PostalCode  string    `json:"postalCode"`
}
