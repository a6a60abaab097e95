package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rud356/RemindMeServer/internal/models"
	"github.com/Rud356/RemindMeServer/internal/rabbitmq"
)

// MockReminderFinder реализует интерфейс ReminderFinder
type MockReminderFinder struct {
	mock.Mock
}

func (m *MockReminderFinder) FindDueReminders(ctx context.Context, now time.Time) ([]*models.ReminderInfo, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ReminderInfo), args.Error(1)
}

func (m *MockReminderFinder) RescheduleReminder(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReminderFinder) DeactivateFiredReminder(ctx context.Context, id int, editedAt time.Time) error {
	args := m.Called(ctx, id, editedAt)
	return args.Error(0)
}

// MockPublisher реализует интерфейс Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, message any) error {
	args := m.Called(exchange, routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSchedulerService_ProcessDueReminders(t *testing.T) {
	periodic := &models.ReminderInfo{
		ReminderID:    1,
		Username:      "periodicuser",
		Email:         "periodic@example.com",
		Title:         "weekly sync",
		IsPeriodic:    true,
		TriggerPeriod: 7,
	}
	oneShot := &models.ReminderInfo{
		ReminderID: 2,
		Username:   "oneshotuser",
		Title:      "dentist",
	}

	t.Run("периодическое сдвигается, разовое гасится", func(t *testing.T) {
		repo := new(MockReminderFinder)
		pub := new(MockPublisher)

		repo.On("FindDueReminders", mock.Anything, mock.AnythingOfType("time.Time")).
			Return([]*models.ReminderInfo{periodic, oneShot}, nil).Once()
		pub.On("Publish", rabbitmq.Exchange, rabbitmq.RoutingKeyDue, periodic).Return(nil).Once()
		pub.On("Publish", rabbitmq.Exchange, rabbitmq.RoutingKeyDue, oneShot).Return(nil).Once()
		repo.On("RescheduleReminder", mock.Anything, 1).Return(nil).Once()
		repo.On("DeactivateFiredReminder", mock.Anything, 2, mock.AnythingOfType("time.Time")).
			Return(nil).Once()

		service := New(repo, pub, newNoopLogger())
		err := service.ProcessDueReminders(context.Background())
		require.NoError(t, err)

		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("нет сработавших напоминаний", func(t *testing.T) {
		repo := new(MockReminderFinder)
		pub := new(MockPublisher)

		repo.On("FindDueReminders", mock.Anything, mock.AnythingOfType("time.Time")).
			Return([]*models.ReminderInfo{}, nil).Once()

		service := New(repo, pub, newNoopLogger())
		err := service.ProcessDueReminders(context.Background())
		require.NoError(t, err)

		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("ошибка публикации не сдвигает напоминание", func(t *testing.T) {
		repo := new(MockReminderFinder)
		pub := new(MockPublisher)

		repo.On("FindDueReminders", mock.Anything, mock.AnythingOfType("time.Time")).
			Return([]*models.ReminderInfo{periodic, oneShot}, nil).Once()
		pub.On("Publish", rabbitmq.Exchange, rabbitmq.RoutingKeyDue, periodic).
			Return(errors.New("broker down")).Once()
		pub.On("Publish", rabbitmq.Exchange, rabbitmq.RoutingKeyDue, oneShot).Return(nil).Once()
		repo.On("DeactivateFiredReminder", mock.Anything, 2, mock.AnythingOfType("time.Time")).
			Return(nil).Once()

		service := New(repo, pub, newNoopLogger())
		err := service.ProcessDueReminders(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker down")

		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("ошибка поиска прерывает проход", func(t *testing.T) {
		repo := new(MockReminderFinder)
		pub := new(MockPublisher)

		repo.On("FindDueReminders", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(nil, errors.New("db error")).Once()

		service := New(repo, pub, newNoopLogger())
		err := service.ProcessDueReminders(context.Background())
		require.Error(t, err)

		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})
}
