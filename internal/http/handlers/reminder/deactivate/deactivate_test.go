package deactivate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Rud356/RemindMeServer/internal/http/middlewarectx"
	"github.com/Rud356/RemindMeServer/internal/models"
)

// MockService реализует интерфейс deactivate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Deactivate(ctx context.Context, authorUID string, id int) (bool, error) {
	args := m.Called(ctx, authorUID, id)
	return args.Bool(0), args.Error(1)
}

func TestDeactivateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		urlID          string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешная деактивация",
			urlID:   "7",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Deactivate", mock.Anything, "uid-1", 7).Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"has_been_deactivated":true`,
		},
		{
			name:    "повторная деактивация так же успешна",
			urlID:   "7",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Deactivate", mock.Anything, "uid-1", 7).Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"has_been_deactivated":true`,
		},
		{
			name:    "не найдено",
			urlID:   "99",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Deactivate", mock.Anything, "uid-1", 99).Return(false, models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"reminder not found"}`,
		},
		{
			name:           "нет авторизации",
			urlID:          "7",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:           "некорректный ID",
			urlID:          "abc",
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
		{
			name:    "ошибка сервиса",
			urlID:   "7",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Deactivate", mock.Anything, "uid-1", 7).Return(false, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to deactivate reminder"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/reminders/"+tt.urlID, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
