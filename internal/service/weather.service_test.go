package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/model"
	"github.com/duccv/weather-tracker/internal/model/request"
	"github.com/duccv/weather-tracker/internal/provider"
	"github.com/duccv/weather-tracker/internal/repository"
	"github.com/duccv/weather-tracker/pkg/httpclient"
)

type upstream struct {
	srv       *httptest.Server
	hits      int32
	geoStatus int
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{geoStatus: http.StatusOK}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&u.hits, 1)
		switch r.URL.Path {
		case "/geo/1.0/zip":
			w.WriteHeader(u.geoStatus)
			if u.geoStatus == http.StatusOK {
				_, _ = w.Write([]byte(`{"zip":"12345","name":"Schenectady","lat":40,"lon":-74,"country":"US"}`))
			}
		case "/data/2.5/weather":
			_, _ = w.Write([]byte(`{"coord":{"lon":-74,"lat":40},"weather":[{"id":500,"main":"Rain","description":"light rain"}],"main":{"temp":288.2,"feels_like":287.9,"humidity":81},"wind":{"speed":4.1},"name":"Schenectady","cod":200}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func newWeatherService(u *upstream, repo repository.WeatherRepository) *WeatherService {
	client := httpclient.New(httpclient.InitialInterval(time.Millisecond))
	return NewWeatherService(
		provider.NewGeoResolver(client, u.srv.URL, "key"),
		provider.NewWeatherFetcher(client, u.srv.URL, "key"),
		repo,
	)
}

var alice = &model.Identity{Subject: "alice", Authenticated: true, Roles: []string{"ROLE_USER"}}

func TestGetWeatherDataStoresSnapshot(t *testing.T) {
	u := newUpstream(t)
	repo := repository.NewMemoryWeatherRepository()
	svc := newWeatherService(u, repo)
	fixed := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	data, err := svc.GetWeatherData(context.Background(), alice, request.WeatherRequest{PostalCode: "12345", Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "12345", data.PostalCode)
	assert.Equal(t, "alice", data.Username)
	assert.Equal(t, fixed, data.RequestTime)
	assert.NotEmpty(t, data.UUID)
	assert.Equal(t, 288.2, data.Main.Temp)

	history, err := svc.GetHistoryByPostalCode(context.Background(), "12345")
	require.NoError(t, err)
	require.Len(t, history.History, 1)
	assert.Equal(t, "12345", history.PostalCode)
	assert.Equal(t, fixed, history.Current.Timestamp)
	assert.Equal(t, "light rain", history.Current.Description)
	assert.Equal(t, "Rain", history.Current.Conditions)
	assert.Equal(t, 4.1, history.Current.WindSpeed)
	assert.Equal(t, 81, history.Current.Humidity)
}

func TestHistoryNewestFirst(t *testing.T) {
	u := newUpstream(t)
	repo := repository.NewMemoryWeatherRepository()
	svc := newWeatherService(u, repo)

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		_, err := svc.GetWeatherData(context.Background(), alice, request.WeatherRequest{PostalCode: "12345", Username: "alice"})
		require.NoError(t, err)
	}

	history, err := svc.GetHistoryByUsername(context.Background(), alice, "alice")
	require.NoError(t, err)
	require.Len(t, history.History, 3)
	assert.Equal(t, base.Add(2*time.Hour), history.Current.Timestamp)
	assert.Equal(t, base, history.History[2].Timestamp)
	assert.Equal(t, "alice", history.Username)
}

func TestGetWeatherDataRejectsOtherUserBeforeNetwork(t *testing.T) {
	u := newUpstream(t)
	svc := newWeatherService(u, repository.NewMemoryWeatherRepository())

	_, err := svc.GetWeatherData(context.Background(), alice, request.WeatherRequest{PostalCode: "12345", Username: "bob"})
	assert.True(t, apperror.Is(err, apperror.KindUnauthorizedAccess))

	_, err = svc.GetWeatherData(context.Background(), nil, request.WeatherRequest{PostalCode: "12345", Username: "alice"})
	assert.True(t, apperror.Is(err, apperror.KindUnauthorizedAccess))
	assert.Equal(t, int32(0), atomic.LoadInt32(&u.hits))
}

func TestGetWeatherDataRejectsInvalidPostalCodeBeforeNetwork(t *testing.T) {
	u := newUpstream(t)
	svc := newWeatherService(u, repository.NewMemoryWeatherRepository())

	_, err := svc.GetWeatherData(context.Background(), alice, request.WeatherRequest{PostalCode: "abc12", Username: "alice"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, int32(0), atomic.LoadInt32(&u.hits))
}

func TestGetWeatherDataUnknownPostalCode(t *testing.T) {
	u := newUpstream(t)
	u.geoStatus = http.StatusNotFound
	repo := repository.NewMemoryWeatherRepository()
	svc := newWeatherService(u, repo)

	_, err := svc.GetWeatherData(context.Background(), alice, request.WeatherRequest{PostalCode: "00000", Username: "alice"})
	assert.True(t, apperror.Is(err, apperror.KindResourceNotFound))

	stored, _ := repo.FindByPostalCode(context.Background(), "00000")
	assert.Empty(t, stored)
}

func TestGetWeatherDataUpstreamUnauthorized(t *testing.T) {
	u := newUpstream(t)
	u.geoStatus = http.StatusUnauthorized
	svc := newWeatherService(u, repository.NewMemoryWeatherRepository())

	_, err := svc.GetWeatherData(context.Background(), alice, request.WeatherRequest{PostalCode: "12345", Username: "alice"})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindApiClient, appErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, appErr.UpstreamStatus)
	assert.Equal(t, int32(3), atomic.LoadInt32(&u.hits))
}

type failingWeatherRepo struct{}

func (failingWeatherRepo) Save(context.Context, *model.WeatherData) error {
	return errors.New("no reachable servers")
}

func (failingWeatherRepo) FindByPostalCode(context.Context, string) ([]model.WeatherData, error) {
	return nil, errors.New("no reachable servers")
}

func (failingWeatherRepo) FindByUsername(context.Context, string) ([]model.WeatherData, error) {
	return nil, errors.New("no reachable servers")
}

func TestGetWeatherDataDatabaseFailure(t *testing.T) {
	u := newUpstream(t)
	svc := newWeatherService(u, failingWeatherRepo{})

	_, err := svc.GetWeatherData(context.Background(), alice, request.WeatherRequest{PostalCode: "12345", Username: "alice"})
	assert.True(t, apperror.Is(err, apperror.KindDatabaseUnavailable))

	_, err = svc.GetHistoryByPostalCode(context.Background(), "12345")
	assert.True(t, apperror.Is(err, apperror.KindDatabaseUnavailable))
}

func TestHistoryEmpty(t *testing.T) {
	u := newUpstream(t)
	svc := newWeatherService(u, repository.NewMemoryWeatherRepository())

	_, err := svc.GetHistoryByPostalCode(context.Background(), "12345")
	assert.True(t, apperror.Is(err, apperror.KindResourceNotFound))

	_, err = svc.GetHistoryByUsername(context.Background(), alice, "alice")
	assert.True(t, apperror.Is(err, apperror.KindResourceNotFound))

	_, err = svc.GetHistoryByUsername(context.Background(), alice, "bob")
	assert.True(t, apperror.Is(err, apperror.KindUnauthorizedAccess))
}
