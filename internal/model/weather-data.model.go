package model

import "time"

// WeatherData is a persisted weather snapshot. JSON names follow the
// upstream payload so the same type decodes the provider response.
type WeatherData struct {
	UUID        string         `json:"uuid"              bson:"_id"`
	Coord       Coord          `json:"coord"             bson:"coord"`
	Weather     []WeatherEntry `json:"weather"           bson:"weather"`
	Base        string         `json:"base"              bson:"base"`
	Main        MainData       `json:"main"              bson:"main"`
	Visibility  int            `json:"visibility"        bson:"visibility"`
	Wind        Wind           `json:"wind"              bson:"wind"`
	Clouds      Clouds         `json:"clouds"            bson:"clouds"`
	Dt          int64          `json:"dt"                bson:"dt"`
	Sys         Sys            `json:"sys"               bson:"sys"`
	Timezone    int            `json:"timezone"          bson:"timezone"`
	ID          int64          `json:"id"                bson:"id"`
	Name        string         `json:"name"              bson:"name"`
	Cod         int            `json:"cod"               bson:"cod"`
	PostalCode  string         `json:"postalCode"        bson:"postalCode"`
	Username    string         `json:"username"          bson:"username"`
	RequestTime time.Time      `json:"requestTime"       bson:"requestTime"`
}

type Coord struct {
	Lon float64 `json:"lon" bson:"lon"`
	Lat float64 `json:"lat" bson:"lat"`
}

type WeatherEntry struct {
	ID          int    `json:"id"          bson:"id"`
	Main        string `json:"main"        bson:"main"`
	Description string `json:"description" bson:"description"`
	Icon        string `json:"icon"        bson:"icon"`
}

type MainData struct {
	Temp      float64 `json:"temp"       bson:"temp"`
	FeelsLike float64 `json:"feels_like" bson:"feelsLike"`
	TempMin   float64 `json:"temp_min"   bson:"tempMin"`
	TempMax   float64 `json:"temp_max"   bson:"tempMax"`
	Pressure  int     `json:"pressure"   bson:"pressure"`
	Humidity  int     `json:"humidity"   bson:"humidity"`
	SeaLevel  int     `json:"sea_level"  bson:"seaLevel"`
	GrndLevel int     `json:"grnd_level" bson:"grndLevel"`
}

type Wind struct {
	Speed float64 `json:"speed" bson:"speed"`
	Deg   int     `json:"deg"   bson:"deg"`
}

type Clouds struct {
	All int `json:"all" bson:"all"`
}

type Sys struct {
	Type    int    `json:"type"    bson:"type"`
	ID      int64  `json:"id"      bson:"id"`
	Country string `json:"country" bson:"country"`
	Sunrise int64  `json:"sunrise" bson:"sunrise"`
	Sunset  int64  `json:"sunset"  bson:"sunset"`
}

// Description returns the first condition description, or "".
func (w *WeatherData) Description() string {
	if len(w.Weather) == 0 {
		return ""
	}
	return w.Weather[0].Description
}

// Conditions returns the first condition group (Rain, Clouds, ...), or "".
func (w *WeatherData) Conditions() string {
	if len(w.Weather) == 0 {
		return ""
	}
	return w.Weather[0].Main
}
