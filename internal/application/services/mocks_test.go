package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/avatarctic/trip-search/internal/core/domain/savedtrip"
	"github.com/avatarctic/trip-search/internal/core/domain/trip"
	"github.com/avatarctic/trip-search/internal/core/domain/user"
	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/google/uuid"
)

// cacheMock is a lightweight mock for ports.Cache
type cacheMock struct {
	GetFn    func(ctx context.Context, key string) ([]byte, bool, error)
	SetFn    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFn func(ctx context.Context, key string) error
}

func (m *cacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return nil, false, nil
}
func (m *cacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}
	return nil
}
func (m *cacheMock) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	return nil
}
func (m *cacheMock) SupportsShutdown() bool             { return false }
func (m *cacheMock) Shutdown(ctx context.Context) error { return nil }

// providerMock is a lightweight mock for ports.TripsProvider
type providerMock struct {
	SearchTripsFn func(ctx context.Context, origin, destination string) ([]trip.Trip, error)
	GetTripByIDFn func(ctx context.Context, tripID string) (*trip.Trip, bool, error)
}

func (m *providerMock) SearchTrips(ctx context.Context, origin, destination string) ([]trip.Trip, error) {
	if m.SearchTripsFn != nil {
		return m.SearchTripsFn(ctx, origin, destination)
	}
	return nil, nil
}
func (m *providerMock) GetTripByID(ctx context.Context, tripID string) (*trip.Trip, bool, error) {
	if m.GetTripByIDFn != nil {
		return m.GetTripByIDFn(ctx, tripID)
	}
	return nil, false, nil
}

// savedTripRepoMock is a lightweight mock for ports.SavedTripRepository
type savedTripRepoMock struct {
	ListByUserFn             func(ctx context.Context, userID uuid.UUID) ([]*savedtrip.SavedTrip, error)
	UpsertFn                 func(ctx context.Context, userID uuid.UUID, t *trip.Trip, fetchedAt time.Time) (*savedtrip.SavedTrip, error)
	DeleteByExternalTripIDFn func(ctx context.Context, userID uuid.UUID, externalTripID string) error
	FindByExternalTripIDFn   func(ctx context.Context, userID uuid.UUID, externalTripID string) (*savedtrip.SavedTrip, bool, error)
}

func (m *savedTripRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]*savedtrip.SavedTrip, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}
func (m *savedTripRepoMock) Upsert(ctx context.Context, userID uuid.UUID, t *trip.Trip, fetchedAt time.Time) (*savedtrip.SavedTrip, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, userID, t, fetchedAt)
	}
	return nil, errors.New("not implemented")
}
func (m *savedTripRepoMock) DeleteByExternalTripID(ctx context.Context, userID uuid.UUID, externalTripID string) error {
	if m.DeleteByExternalTripIDFn != nil {
		return m.DeleteByExternalTripIDFn(ctx, userID, externalTripID)
	}
	return nil
}
func (m *savedTripRepoMock) FindByExternalTripID(ctx context.Context, userID uuid.UUID, externalTripID string) (*savedtrip.SavedTrip, bool, error) {
	if m.FindByExternalTripIDFn != nil {
		return m.FindByExternalTripIDFn(ctx, userID, externalTripID)
	}
	return nil, false, nil
}

// userRepoMock is a lightweight mock for ports.UserRepository
type userRepoMock struct {
	FindBySubjectFn func(ctx context.Context, subject string) (*user.User, bool, error)
	CreateFn        func(ctx context.Context, u *user.User) error
	UpdateFn        func(ctx context.Context, u *user.User) error
}

func (m *userRepoMock) FindBySubject(ctx context.Context, subject string) (*user.User, bool, error) {
	if m.FindBySubjectFn != nil {
		return m.FindBySubjectFn(ctx, subject)
	}
	return nil, false, nil
}
func (m *userRepoMock) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}
func (m *userRepoMock) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, u)
	}
	return nil
}

// identityMock is a lightweight mock for ports.IdentityProvider
type identityMock struct {
	CreateUserFn func(ctx context.Context, email, password string, name *string) (*ports.IdentityUser, error)
}

func (m *identityMock) CreateUser(ctx context.Context, email, password string, name *string) (*ports.IdentityUser, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, email, password, name)
	}
	return nil, errors.New("not implemented")
}
