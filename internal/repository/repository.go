// Package repository persists users and weather snapshots.
package repository

import (
	"context"
	"errors"

	"github.com/duccv/weather-tracker/internal/model"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// Create fails with ErrDuplicate when the username is taken.
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

// WeatherRepository stores snapshots. Finders return newest first.
type WeatherRepository interface {
	Save(ctx context.Context, data *model.WeatherData) error
	FindByPostalCode(ctx context.Context, postalCode string) ([]model.WeatherData, error)
	FindByUsername(ctx context.Context, username string) ([]model.WeatherData, error)
}
