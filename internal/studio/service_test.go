package studio

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockStudioRepo struct{ mock.Mock }

func (m *MockStudioRepo) Create(ctx context.Context, name, slug, timezone string, requiresApproval, autoApproveReturning bool) (*Studio, error) {
	args := m.Called(ctx, name, slug, timezone, requiresApproval, autoApproveReturning)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Studio), args.Error(1)
}

func (m *MockStudioRepo) GetAll(ctx context.Context) ([]StudioSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StudioSummary), args.Error(1)
}

func (m *MockStudioRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*Studio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Studio), args.Error(1)
}

func (m *MockStudioRepo) GetActiveSessions(ctx context.Context, studioID uuid.UUID) ([]SessionOverview, error) {
	args := m.Called(ctx, studioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SessionOverview), args.Error(1)
}

func (m *MockStudioRepo) CountUsers(ctx context.Context, studioID uuid.UUID) (int, error) {
	args := m.Called(ctx, studioID)
	return args.Int(0), args.Error(1)
}

func (m *MockStudioRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudioRepo) Update(ctx context.Context, id uuid.UUID, name, timezone string, requiresApproval, autoApproveReturning bool) error {
	return m.Called(ctx, id, name, timezone, requiresApproval, autoApproveReturning).Error(0)
}

func (m *MockStudioRepo) Suspend(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestService_CreateStudio(t *testing.T) {
	t.Run("normalizes slug before the uniqueness check", func(t *testing.T) {
		repo := new(MockStudioRepo)
		repo.On("SlugExists", mock.Anything, "lotus-studio").Return(false, nil)
		repo.On("Create", mock.Anything, "Lotus Studio", "lotus-studio", "Europe/Stockholm", true, false).
			Return(&Studio{ID: uuid.New(), Name: "Lotus Studio", Slug: "lotus-studio"}, nil)

		svc := NewService(repo)
		studio, err := svc.CreateStudio(context.Background(), CreateStudioRequest{
			Name:             "  Lotus Studio  ",
			Slug:             "  Lotus-Studio  ",
			Timezone:         "Europe/Stockholm",
			RequiresApproval: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, "lotus-studio", studio.Slug)
		repo.AssertExpectations(t)
	})

	t.Run("slug already taken", func(t *testing.T) {
		repo := new(MockStudioRepo)
		repo.On("SlugExists", mock.Anything, "lotus-studio").Return(true, nil)

		svc := NewService(repo)
		_, err := svc.CreateStudio(context.Background(), CreateStudioRequest{
			Name: "Lotus Studio",
			Slug: "lotus-studio",
		})

		assert.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("insert-time slug conflict maps to same error", func(t *testing.T) {
		repo := new(MockStudioRepo)
		repo.On("SlugExists", mock.Anything, "lotus-studio").Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, ErrSlugConflict)

		svc := NewService(repo)
		_, err := svc.CreateStudio(context.Background(), CreateStudioRequest{
			Name: "Lotus Studio",
			Slug: "lotus-studio",
		})

		assert.ErrorIs(t, err, ErrSlugTaken)
	})
}

func TestService_GetStudio(t *testing.T) {
	id := uuid.New()

	t.Run("composes detail from sessions and user count", func(t *testing.T) {
		repo := new(MockStudioRepo)
		repo.On("GetActiveByID", mock.Anything, id).Return(&Studio{ID: id, Name: "Lotus Studio"}, nil)
		repo.On("GetActiveSessions", mock.Anything, id).Return([]SessionOverview{
			{Title: "Morning Flow", Capacity: 10, BookedCount: 4, SpotsLeft: 6},
		}, nil)
		repo.On("CountUsers", mock.Anything, id).Return(2, nil)

		svc := NewService(repo)
		detail, err := svc.GetStudio(context.Background(), id)

		assert.NoError(t, err)
		assert.Len(t, detail.Sessions, 1)
		assert.Equal(t, 2, detail.UserCount)
	})

	t.Run("suspended studio reads as not found", func(t *testing.T) {
		repo := new(MockStudioRepo)
		repo.On("GetActiveByID", mock.Anything, id).Return(nil, errors.New("no rows"))

		svc := NewService(repo)
		_, err := svc.GetStudio(context.Background(), id)

		assert.ErrorIs(t, err, ErrStudioNotFound)
	})

	t.Run("nil sessions become empty slice", func(t *testing.T) {
		repo := new(MockStudioRepo)
		repo.On("GetActiveByID", mock.Anything, id).Return(&Studio{ID: id}, nil)
		repo.On("GetActiveSessions", mock.Anything, id).Return([]SessionOverview(nil), nil)
		repo.On("CountUsers", mock.Anything, id).Return(0, nil)

		svc := NewService(repo)
		detail, err := svc.GetStudio(context.Background(), id)

		assert.NoError(t, err)
		assert.NotNil(t, detail.Sessions)
	})
}

func TestService_UpdateStudio(t *testing.T) {
	id := uuid.New()

	t.Run("updates active studio", func(t *testing.T) {
		repo := new(MockStudioRepo)
		repo.On("Update", mock.Anything, id, "New Name", "UTC", false, true).Return(nil)

		svc := NewService(repo)
		err := svc.UpdateStudio(context.Background(), id, UpdateStudioRequest{
			Name:                 "New Name",
			Timezone:             "UTC",
			AutoApproveReturning: true,
		})

		assert.NoError(t, err)
	})

	t.Run("missing studio", func(t *testing.T) {
		repo := new(MockStudioRepo)
		repo.On("Update", mock.Anything, id, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(ErrStudioMissing)

		svc := NewService(repo)
		err := svc.UpdateStudio(context.Background(), id, UpdateStudioRequest{Name: "X", Timezone: "UTC"})

		assert.ErrorIs(t, err, ErrStudioNotFound)
	})
}

func TestService_SuspendStudio(t *testing.T) {
	id := uuid.New()

	repo := new(MockStudioRepo)
	repo.On("Suspend", mock.Anything, id).Return(nil)

	svc := NewService(repo)
	assert.NoError(t, svc.SuspendStudio(context.Background(), id))
	repo.AssertExpectations(t)
}
