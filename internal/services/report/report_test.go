package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/soundvault/soundvault/internal/models"
	services "github.com/soundvault/soundvault/internal/services/report"
)

// Мок для ReportRepository
type ReportRepoMock struct {
	mock.Mock
}

func (m *ReportRepoMock) GenreReport(ctx context.Context, consumerID int64, yearMonth time.Time) ([]models.GenrePlaybacks, error) {
	args := m.Called(ctx, consumerID, yearMonth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GenrePlaybacks), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReportService_MonthlyReport(t *testing.T) {
	report := []models.GenrePlaybacks{
		{YearMonth: "2024-06", Genre: "rock", Playbacks: 12},
		{YearMonth: "2024-05", Genre: "jazz", Playbacks: 3},
	}

	tests := []struct {
		name       string
		yearMonth  string
		setupMocks func(r *ReportRepoMock, c *CacheMock)
		want       []models.GenrePlaybacks
		wantErr    bool
		errMsg     string
	}{
		{
			name:      "cache miss builds the report",
			yearMonth: "2024-06",
			setupMocks: func(r *ReportRepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "report:7:2024-06", mock.Anything).Return(false, nil).Once()
				r.On("GenreReport", mock.Anything, int64(7),
					time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)).Return(report, nil).Once()
				c.On("Set", mock.Anything, "report:7:2024-06", report, mock.Anything).Return(nil).Once()
			},
			want: report,
		},
		{
			name:      "cache hit skips the repository",
			yearMonth: "2024-06",
			setupMocks: func(_ *ReportRepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "report:7:2024-06", mock.Anything).
					Run(func(args mock.Arguments) {
						out := args.Get(2).(*[]models.GenrePlaybacks)
						*out = report
					}).Return(true, nil).Once()
			},
			want: report,
		},
		{
			name:       "malformed month",
			yearMonth:  "June 2024",
			setupMocks: func(_ *ReportRepoMock, _ *CacheMock) {},
			wantErr:    true,
			errMsg:     "report month must be in format YYYY-MM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ReportRepoMock)
			cache := new(CacheMock)
			svc := services.NewReportService(repo, cache, discardLogger())

			tt.setupMocks(repo, cache)

			got, err := svc.MonthlyReport(context.Background(), 7, tt.yearMonth)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
