package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/middleware"
	"github.com/duccv/weather-tracker/internal/model/request"
	"github.com/duccv/weather-tracker/internal/model/response"
	"github.com/duccv/weather-tracker/util"
)

type WeatherHandler struct {
	weather    WeatherService
	translator *apperror.Translator
}

func NewWeatherHandler(weather WeatherService, translator *apperror.Translator) *WeatherHandler {
	return &WeatherHandler{weather: weather, translator: translator}
}

// GetWeatherInfo godoc
//
//	@Summary		Fetch and store current weather for a postal code
//	@Tags			Weather
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		request.WeatherRequest	true	"postal code and own username"
//	@Success		200		{object}	model.WeatherData
//	@Failure		400		{object}	response.ApiError
//	@Failure		401		{object}	response.ApiError
//	@Failure		403		{object}	response.ApiError
//	@Failure		404		{object}	response.ApiError
//	@Failure		502		{object}	response.ApiError
//	@Failure		503		{object}	response.ApiError
//	@Router			/v1/api/weather/info [post]
func (h *WeatherHandler) GetWeatherInfo(c *gin.Context) {
	req := c.MustGet(constant.ValidatedBody).(request.WeatherRequest)

	data, err := h.weather.GetWeatherData(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		h.translator.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// HistoryByPostalCode godoc
//
//	@Summary		Weather history for a postal code, newest first
//	@Tags			Weather
//	@Produce		json
//	@Security		BearerAuth
//	@Param			postalCode	path		string	true	"5 digit postal code"
//	@Param			limit		query		int		false	"max history entries (1-100)"
//	@Success		200			{object}	response.WeatherResponse
//	@Success		304
//	@Failure		404			{object}	response.ApiError
//	@Router			/v1/api/weather/history/postal-code/{postalCode} [get]
func (h *WeatherHandler) HistoryByPostalCode(c *gin.Context) {
	params := c.MustGet(constant.ValidatedParams).(request.PostalCodeParam)

	resp, err := h.weather.GetHistoryByPostalCode(c.Request.Context(), params.PostalCode)
	if err != nil {
		h.translator.Abort(c, err)
		return
	}
	writeWithETag(c, limitHistory(c, resp))
}

// HistoryByUser godoc
//
//	@Summary		Own weather history, newest first
//	@Tags			Weather
//	@Produce		json
//	@Security		BearerAuth
//	@Param			username	path		string	true	"own username"
//	@Param			limit		query		int		false	"max history entries (1-100)"
//	@Success		200			{object}	response.WeatherResponse
//	@Success		304
//	@Failure		403			{object}	response.ApiError
//	@Failure		404			{object}	response.ApiError
//	@Router			/v1/api/weather/history/user/{username} [get]
func (h *WeatherHandler) HistoryByUser(c *gin.Context) {
	params := c.MustGet(constant.ValidatedParams).(request.UsernameParam)

	resp, err := h.weather.GetHistoryByUsername(c.Request.Context(), middleware.IdentityFrom(c), params.Username)
	if err != nil {
		h.translator.Abort(c, err)
		return
	}
	writeWithETag(c, limitHistory(c, resp))
}

// limitHistory trims the history to the validated limit query. Current
// always stays the newest entry.
func limitHistory(c *gin.Context, resp *response.WeatherResponse) *response.WeatherResponse {
	query, _ := c.Get(constant.ValidatedQuery)
	if q, ok := query.(request.HistoryQuery); ok && q.Limit > 0 && len(resp.History) > q.Limit {
		resp.History = resp.History[:q.Limit]
	}
	return resp
}

// writeWithETag answers 304 when the client already holds this history.
// The tag covers the entries only, not the response timestamp.
func writeWithETag(c *gin.Context, resp *response.WeatherResponse) {
	etag := util.GenerateETag(resp.History)
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")

	if util.MatchETag(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.JSON(http.StatusOK, resp)
}
