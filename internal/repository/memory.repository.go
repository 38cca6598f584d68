package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/duccv/weather-tracker/internal/model"
)

// MemoryUserRepository keeps users in a map. Used with database.type=memory
// and in tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	user.Roles = append([]string(nil), user.Roles...)
	return &user, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return ErrDuplicate
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.Username] = *user
	return nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; !exists {
		return ErrNotFound
	}
	r.users[user.Username] = *user
	return nil
}

// MemoryWeatherRepository is an append-only snapshot log.
type MemoryWeatherRepository struct {
	mu      sync.RWMutex
	entries []model.WeatherData
}

func NewMemoryWeatherRepository() *MemoryWeatherRepository {
	return &MemoryWeatherRepository{}
}

func (r *MemoryWeatherRepository) Save(_ context.Context, data *model.WeatherData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if data.UUID == "" {
		data.UUID = uuid.NewString()
	}
	r.entries = append(r.entries, *data)
	return nil
}

func (r *MemoryWeatherRepository) FindByPostalCode(_ context.Context, postalCode string) ([]model.WeatherData, error) {
	return r.filter(func(d *model.WeatherData) bool { return d.PostalCode == postalCode }), nil
}

func (r *MemoryWeatherRepository) FindByUsername(_ context.Context, username string) ([]model.WeatherData, error) {
	return r.filter(func(d *model.WeatherData) bool { return d.Username == username }), nil
}

// filter returns matches newest first; equal times keep the later save first.
func (r *MemoryWeatherRepository) filter(match func(*model.WeatherData) bool) []model.WeatherData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.WeatherData
	for i := len(r.entries) - 1; i >= 0; i-- {
		if match(&r.entries[i]) {
			out = append(out, r.entries[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RequestTime.After(out[j].RequestTime)
	})
	return out
}
