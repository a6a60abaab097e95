package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rud356/RemindMeServer/internal/models"
)

// MockReminderRepository реализует интерфейс ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) CreateReminder(ctx context.Context, reminder models.Reminder) (int, error) {
	args := m.Called(ctx, reminder)
	return args.Int(0), args.Error(1)
}

func (m *MockReminderRepository) GetReminderByID(ctx context.Context, authorUID string, id int) (*models.Reminder, error) {
	args := m.Called(ctx, authorUID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reminder), args.Error(1)
}

func (m *MockReminderRepository) ListActiveReminders(ctx context.Context, authorUID string) ([]*models.Reminder, error) {
	args := m.Called(ctx, authorUID)
	return args.Get(0).([]*models.Reminder), args.Error(1)
}

func (m *MockReminderRepository) ListInactiveReminders(ctx context.Context, authorUID string) ([]*models.Reminder, error) {
	args := m.Called(ctx, authorUID)
	return args.Get(0).([]*models.Reminder), args.Error(1)
}

func (m *MockReminderRepository) UpdateReminderFields(ctx context.Context, authorUID string, id int,
	entry models.UpdateReminderEntry, colorCode *int, editedAt time.Time) (int, error) {
	args := m.Called(ctx, authorUID, id, entry, colorCode, editedAt)
	return args.Int(0), args.Error(1)
}

func (m *MockReminderRepository) DeactivateReminder(ctx context.Context, authorUID string, id int, editedAt time.Time) (int, error) {
	args := m.Called(ctx, authorUID, id, editedAt)
	return args.Int(0), args.Error(1)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestReminderService_Create(t *testing.T) {
	triggeredAt := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       models.DummyReminder
		setupMock func(*MockReminderRepository)
		wantID    int
		wantErr   error
	}{
		{
			name: "успешное создание с конвертацией цвета",
			req: models.DummyReminder{
				Title:       "pay rent",
				ColorCode:   "FF0000",
				TriggeredAt: triggeredAt,
			},
			setupMock: func(m *MockReminderRepository) {
				m.On("CreateReminder", mock.Anything, mock.MatchedBy(func(r models.Reminder) bool {
					return r.ColorCode == 0xFF0000 && r.IsActive && r.AuthorUID == "uid-1"
				})).Return(42, nil).Once()
			},
			wantID: 42,
		},
		{
			name: "некорректный цвет отклоняется до хранилища",
			req: models.DummyReminder{
				Title:       "bad color",
				ColorCode:   "GGGGGG",
				TriggeredAt: triggeredAt,
			},
			setupMock: func(_ *MockReminderRepository) {},
			wantErr:   models.ErrValidation,
		},
		{
			name: "цвет вне диапазона отклоняется",
			req: models.DummyReminder{
				Title:       "too big",
				ColorCode:   "1000000",
				TriggeredAt: triggeredAt,
			},
			setupMock: func(_ *MockReminderRepository) {},
			wantErr:   models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockReminderRepository)
			cache := new(MockCache)
			tt.setupMock(repo)
			service := NewReminderService(repo, cache, newNoopLogger())

			id, err := service.Create(context.Background(), "uid-1", tt.req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestReminderService_Get(t *testing.T) {
	reminder := &models.Reminder{ID: 7, AuthorUID: "uid-1", Title: "cached"}

	t.Run("промах кеша читает из хранилища и кеширует", func(t *testing.T) {
		repo := new(MockReminderRepository)
		cache := new(MockCache)
		cache.On("Get", "reminder:uid-1:7", mock.Anything).Return(false, nil).Once()
		repo.On("GetReminderByID", mock.Anything, "uid-1", 7).Return(reminder, nil).Once()
		cache.On("Set", "reminder:uid-1:7", reminder, time.Hour).Return(nil).Once()

		service := NewReminderService(repo, cache, newNoopLogger())
		got, err := service.Get(context.Background(), "uid-1", 7)
		require.NoError(t, err)
		assert.Equal(t, reminder, got)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("попадание в кеш не трогает хранилище", func(t *testing.T) {
		repo := new(MockReminderRepository)
		cache := new(MockCache)
		cache.On("Get", "reminder:uid-1:7", mock.Anything).
			Run(func(args mock.Arguments) {
				ptr := args.Get(1).(**models.Reminder)
				*ptr = reminder
			}).
			Return(true, nil).Once()

		service := NewReminderService(repo, cache, newNoopLogger())
		got, err := service.Get(context.Background(), "uid-1", 7)
		require.NoError(t, err)
		assert.Equal(t, reminder, got)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("не найдено", func(t *testing.T) {
		repo := new(MockReminderRepository)
		cache := new(MockCache)
		cache.On("Get", "reminder:uid-1:99", mock.Anything).Return(false, nil).Once()
		repo.On("GetReminderByID", mock.Anything, "uid-1", 99).Return(nil, models.ErrNotFound).Once()

		service := NewReminderService(repo, cache, newNoopLogger())
		_, err := service.Get(context.Background(), "uid-1", 99)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNotFound)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}

func TestReminderService_Update(t *testing.T) {
	newTitle := "renamed"
	newColor := "00FF00"
	badColor := "XYZ"
	newPeriod := 3

	tests := []struct {
		name       string
		entry      models.UpdateReminderEntry
		setupMocks func(*MockReminderRepository, *MockCache)
		wantFields []string
		wantErr    error
	}{
		{
			name:  "обновление нескольких полей",
			entry: models.UpdateReminderEntry{Title: &newTitle, ColorCode: &newColor, TriggerPeriod: &newPeriod},
			setupMocks: func(m *MockReminderRepository, c *MockCache) {
				m.On("UpdateReminderFields", mock.Anything, "uid-1", 7,
					mock.AnythingOfType("models.UpdateReminderEntry"),
					mock.MatchedBy(func(color *int) bool { return color != nil && *color == 0x00FF00 }),
					mock.AnythingOfType("time.Time")).
					Return(1, nil).Once()
				c.On("Invalidate", "reminder:uid-1:7").Return(nil).Once()
			},
			wantFields: []string{"title", "color_code", "trigger_period"},
		},
		{
			name:       "пустой набор полей отклоняется до хранилища",
			entry:      models.UpdateReminderEntry{},
			setupMocks: func(_ *MockReminderRepository, _ *MockCache) {},
			wantErr:    models.ErrNoFieldsProvided,
		},
		{
			name:       "некорректный цвет отклоняется до хранилища",
			entry:      models.UpdateReminderEntry{ColorCode: &badColor},
			setupMocks: func(_ *MockReminderRepository, _ *MockCache) {},
			wantErr:    models.ErrValidation,
		},
		{
			name:  "ноль изменённых строк означает не найдено",
			entry: models.UpdateReminderEntry{Title: &newTitle},
			setupMocks: func(m *MockReminderRepository, _ *MockCache) {
				m.On("UpdateReminderFields", mock.Anything, "uid-1", 7,
					mock.AnythingOfType("models.UpdateReminderEntry"),
					mock.Anything, mock.AnythingOfType("time.Time")).
					Return(0, nil).Once()
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockReminderRepository)
			cache := new(MockCache)
			tt.setupMocks(repo, cache)
			service := NewReminderService(repo, cache, newNoopLogger())

			fields, err := service.Update(context.Background(), "uid-1", 7, tt.entry)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantFields, fields)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestReminderService_Deactivate(t *testing.T) {
	t.Run("успешная деактивация", func(t *testing.T) {
		repo := new(MockReminderRepository)
		cache := new(MockCache)
		repo.On("DeactivateReminder", mock.Anything, "uid-1", 7, mock.AnythingOfType("time.Time")).
			Return(1, nil).Once()
		cache.On("Invalidate", "reminder:uid-1:7").Return(nil).Once()

		service := NewReminderService(repo, cache, newNoopLogger())
		ok, err := service.Deactivate(context.Background(), "uid-1", 7)
		require.NoError(t, err)
		assert.True(t, ok)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("чужое или несуществующее напоминание", func(t *testing.T) {
		repo := new(MockReminderRepository)
		cache := new(MockCache)
		repo.On("DeactivateReminder", mock.Anything, "uid-1", 99, mock.AnythingOfType("time.Time")).
			Return(0, nil).Once()

		service := NewReminderService(repo, cache, newNoopLogger())
		_, err := service.Deactivate(context.Background(), "uid-1", 99)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNotFound)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}

func TestReminderService_ListActive(t *testing.T) {
	reminders := []*models.Reminder{
		{ID: 1, AuthorUID: "uid-1", Title: "one", IsActive: true},
		{ID: 2, AuthorUID: "uid-1", Title: "two", IsActive: true},
	}

	repo := new(MockReminderRepository)
	cache := new(MockCache)
	repo.On("ListActiveReminders", mock.Anything, "uid-1").Return(reminders, nil).Once()

	service := NewReminderService(repo, cache, newNoopLogger())
	got, err := service.ListActive(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	repo.AssertExpectations(t)
}
