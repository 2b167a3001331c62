package add

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/http/middlewarectx"
	"github.com/soundvault/soundvault/internal/models"
)

// MockService реализует интерфейс add.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AddComment(ctx context.Context, songID, consumerID int64, content string) (int64, error) {
	args := m.Called(ctx, songID, consumerID, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) ReplyToComment(ctx context.Context, songID, parentID, consumerID int64, content string) (int64, error) {
	args := m.Called(ctx, songID, parentID, consumerID, content)
	return args.Get(0).(int64), args.Error(1)
}

func TestAddCommentHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		songID         string
		parentID       string
		requestBody    interface{}
		authorized     bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "начало нового треда",
			songID:      "5",
			requestBody: Request{Content: "great track"},
			authorized:  true,
			setupMock: func(m *MockService) {
				m.On("AddComment", mock.Anything, int64(5), int64(7), "great track").
					Return(int64(20), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"comment_id":20}}`,
		},
		{
			name:        "ответ в существующий тред",
			songID:      "5",
			parentID:    "20",
			requestBody: Request{Content: "agreed"},
			authorized:  true,
			setupMock: func(m *MockService) {
				m.On("ReplyToComment", mock.Anything, int64(5), int64(20), int64(7), "agreed").
					Return(int64(21), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"comment_id":21}}`,
		},
		{
			name:        "родительский комментарий от другой песни",
			songID:      "5",
			parentID:    "20",
			requestBody: Request{Content: "agreed"},
			authorized:  true,
			setupMock: func(m *MockService) {
				m.On("ReplyToComment", mock.Anything, int64(5), int64(20), int64(7), "agreed").
					Return(int64(0), apperr.Newf(apperr.InvalidInput,
						"no parent comment with ID %d found for song with ID %d", 20, 5))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"no parent comment with ID 20 found for song with ID 5"}`,
		},
		{
			name:           "нечисловой идентификатор песни",
			songID:         "abc",
			requestBody:    Request{Content: "great track"},
			authorized:     true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"song ID must be an integer"}`,
		},
		{
			name:           "пустой комментарий",
			songID:         "5",
			requestBody:    Request{},
			authorized:     true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Content is a required field"}`,
		},
		{
			name:           "отсутствует авторизация",
			songID:         "5",
			requestBody:    Request{Content: "great track"},
			authorized:     false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"missing or invalid authorization header"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/dbproj/comment/"+tt.songID, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			routeCtx := chi.NewRouteContext()
			routeCtx.URLParams.Add("song_id", tt.songID)
			if tt.parentID != "" {
				routeCtx.URLParams.Add("parent_id", tt.parentID)
			}
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			if tt.authorized {
				ctx = context.WithValue(ctx, middlewarectx.UserID, int64(7))
				ctx = context.WithValue(ctx, middlewarectx.Role, models.RoleConsumer)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
