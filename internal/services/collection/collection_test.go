package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/soundvault/soundvault/internal/models"
	services "github.com/soundvault/soundvault/internal/services/collection"
)

// Мок для CollectionRepository
type CollectionRepoMock struct {
	mock.Mock
}

func (m *CollectionRepoMock) CreateAlbum(ctx context.Context, album models.Album, existingSongs []int64, newSongs []models.Song) (int64, error) {
	args := m.Called(ctx, album, existingSongs, newSongs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CollectionRepoMock) CreatePlaylist(ctx context.Context, playlist models.Playlist, songIDs []int64) (int64, error) {
	args := m.Called(ctx, playlist, songIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CollectionRepoMock) SearchPlaylists(ctx context.Context, keyword string, viewerID int64, includePrivate bool) ([]models.PlaylistSummary, error) {
	args := m.Called(ctx, keyword, viewerID, includePrivate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlaylistSummary), args.Error(1)
}

func (m *CollectionRepoMock) GetPlaylistInfo(ctx context.Context, playlistID, viewerID int64, includePrivate bool) (*models.PlaylistInfo, error) {
	args := m.Called(ctx, playlistID, viewerID, includePrivate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlaylistInfo), args.Error(1)
}

func (m *CollectionRepoMock) DeletePlaylist(ctx context.Context, playlistID, ownerID int64) error {
	args := m.Called(ctx, playlistID, ownerID)
	return args.Error(0)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSongSpecs(n int) []models.NewSongSpec {
	explicit := false
	specs := make([]models.NewSongSpec, n)
	for i := range specs {
		specs[i] = models.NewSongSpec{
			ISMN:        "9790000000001",
			Title:       "Track",
			Genre:       "rock",
			Duration:    120,
			ReleaseDate: "2024-06-01",
			Explicit:    &explicit,
		}
	}
	return specs
}

func TestCollectionService_CreateAlbum(t *testing.T) {
	tests := []struct {
		name          string
		existingSongs []int64
		newSongs      []models.NewSongSpec
		releaseDate   string
		setupMocks    func(r *CollectionRepoMock, c *CacheMock)
		wantID        int64
		wantErr       bool
		errMsg        string
	}{
		{
			name:          "successful album of existing and new songs",
			existingSongs: []int64{5, 2},
			newSongs:      newSongSpecs(1),
			releaseDate:   "2024-06-01",
			setupMocks: func(r *CollectionRepoMock, c *CacheMock) {
				r.On("CreateAlbum", mock.Anything, mock.MatchedBy(func(a models.Album) bool {
					return a.Title == "Test Album" && a.ArtistID == 1
				}), []int64{5, 2}, mock.MatchedBy(func(songs []models.Song) bool {
					return len(songs) == 1 && songs[0].ArtistID == 1
				})).Return(int64(30), nil).Once()
				// Запись сбрасывает кешированные карточки исполнителя и песен
				c.On("Invalidate", mock.Anything, "artist_info:1").Return(nil).Once()
				c.On("Invalidate", mock.Anything, "song_info:5").Return(nil).Once()
				c.On("Invalidate", mock.Anything, "song_info:2").Return(nil).Once()
			},
			wantID:  30,
			wantErr: false,
		},
		{
			name:          "album of a single song is rejected",
			existingSongs: []int64{5},
			releaseDate:   "2024-06-01",
			setupMocks:    func(_ *CollectionRepoMock, _ *CacheMock) {},
			wantErr:       true,
			errMsg:        "an album must contain between 2 and 10000 songs",
		},
		{
			name:          "malformed album release date",
			existingSongs: []int64{5, 2},
			releaseDate:   "June 2024",
			setupMocks:    func(_ *CollectionRepoMock, _ *CacheMock) {},
			wantErr:       true,
			errMsg:        "release_date must be a date in format YYYY-MM-DD",
		},
		{
			name:          "repository error leaves the cache alone",
			existingSongs: []int64{5, 2},
			releaseDate:   "2024-06-01",
			setupMocks: func(r *CollectionRepoMock, _ *CacheMock) {
				r.On("CreateAlbum", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(int64(0), errors.New("db error")).Once()
			},
			wantErr: true,
			errMsg:  "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(CollectionRepoMock)
			cache := new(CacheMock)
			svc := services.NewCollectionService(repo, cache, discardLogger())

			tt.setupMocks(repo, cache)

			got, err := svc.CreateAlbum(context.Background(), 1, "Test Album",
				tt.releaseDate, tt.existingSongs, tt.newSongs)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, got)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestCollectionService_CreatePlaylist(t *testing.T) {
	tests := []struct {
		name       string
		songIDs    []int64
		setupMocks func(r *CollectionRepoMock)
		wantID     int64
		wantErr    bool
		errMsg     string
	}{
		{
			name:    "successful creation",
			songIDs: []int64{5, 2, 9},
			setupMocks: func(r *CollectionRepoMock) {
				r.On("CreatePlaylist", mock.Anything, mock.MatchedBy(func(p models.Playlist) bool {
					return p.Name == "Favorites" && p.Private && p.ConsumerID == 7
				}), []int64{5, 2, 9}).Return(int64(12), nil).Once()
			},
			wantID:  12,
			wantErr: false,
		},
		{
			name:       "empty playlist is rejected",
			songIDs:    nil,
			setupMocks: func(_ *CollectionRepoMock) {},
			wantErr:    true,
			errMsg:     "a playlist must contain between 1 and 10000 songs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(CollectionRepoMock)
			svc := services.NewCollectionService(repo, new(CacheMock), discardLogger())

			tt.setupMocks(repo)

			got, err := svc.CreatePlaylist(context.Background(), 7, "Favorites", true, tt.songIDs)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, got)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCollectionService_SearchPlaylists_PrivateVisibility(t *testing.T) {
	tests := []struct {
		name               string
		role               models.Role
		wantIncludePrivate bool
	}{
		{"premium consumer sees own private playlists", models.RolePremiumConsumer, true},
		{"regular consumer sees only public playlists", models.RoleConsumer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(CollectionRepoMock)
			svc := services.NewCollectionService(repo, new(CacheMock), discardLogger())

			repo.On("SearchPlaylists", mock.Anything, "fav", int64(7), tt.wantIncludePrivate).
				Return([]models.PlaylistSummary{}, nil).Once()

			_, err := svc.SearchPlaylists(context.Background(), "fav", 7, tt.role)
			assert.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestCollectionService_PlaylistInfo_NotFound(t *testing.T) {
	repo := new(CollectionRepoMock)
	svc := services.NewCollectionService(repo, new(CacheMock), discardLogger())

	repo.On("GetPlaylistInfo", mock.Anything, int64(99), int64(7), false).Return(nil, nil).Once()

	_, err := svc.PlaylistInfo(context.Background(), 99, 7, models.RoleConsumer)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no playlist found with ID 99")
	repo.AssertExpectations(t)
}

func TestCollectionService_DeletePlaylist(t *testing.T) {
	repo := new(CollectionRepoMock)
	svc := services.NewCollectionService(repo, new(CacheMock), discardLogger())

	repo.On("DeletePlaylist", mock.Anything, int64(12), int64(7)).Return(nil).Once()

	err := svc.DeletePlaylist(context.Background(), 12, 7)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
