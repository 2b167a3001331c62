// Package services содержит бизнес-логику альбомов и плейлистов.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/lib/sl"
	"github.com/soundvault/soundvault/internal/models"
)

// CollectionRepository определяет методы для работы с альбомами и
// плейлистами в хранилище.
type CollectionRepository interface {
	// CreateAlbum добавляет альбом со строками порядка песен и возвращает его ID.
	CreateAlbum(ctx context.Context, album models.Album, existingSongs []int64, newSongs []models.Song) (int64, error)
	// CreatePlaylist добавляет плейлист со строками порядка и возвращает его ID.
	CreatePlaylist(ctx context.Context, playlist models.Playlist, songIDs []int64) (int64, error)
	// SearchPlaylists ищет плейлисты по имени с учётом приватности.
	SearchPlaylists(ctx context.Context, keyword string, viewerID int64, includePrivate bool) ([]models.PlaylistSummary, error)
	// GetPlaylistInfo возвращает карточку плейлиста или nil, если он недоступен.
	GetPlaylistInfo(ctx context.Context, playlistID, viewerID int64, includePrivate bool) (*models.PlaylistInfo, error)
	// DeletePlaylist удаляет плейлист владельца.
	DeletePlaylist(ctx context.Context, playlistID, ownerID int64) error
}

// Cache сбрасывает кешированные карточки каталога после записи.
type Cache interface {
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// CollectionService реализует операции над альбомами и плейлистами.
type CollectionService struct {
	repo  CollectionRepository
	cache Cache
	log   *slog.Logger
}

// NewCollectionService создает новый экземпляр CollectionService.
func NewCollectionService(repo CollectionRepository, cache Cache, log *slog.Logger) *CollectionService {
	return &CollectionService{repo: repo, cache: cache, log: log}
}

// CreateAlbum выпускает альбом исполнителя artistID. Существующие песни
// получают первые позиции в присланном порядке, новые создаются следом.
// Суммарно альбом содержит от 2 до 10000 песен.
func (s *CollectionService) CreateAlbum(ctx context.Context, artistID int64, title, releaseDate string, existingSongs []int64, newSongs []models.NewSongSpec) (int64, error) {
	total := len(existingSongs) + len(newSongs)
	if total < 2 || total > 10000 {
		return 0, apperr.New(apperr.InvalidInput, "an album must contain between 2 and 10000 songs")
	}
	released, err := time.Parse("2006-01-02", releaseDate)
	if err != nil {
		return 0, apperr.New(apperr.InvalidInput, "release_date must be a date in format YYYY-MM-DD")
	}

	songs := make([]models.Song, 0, len(newSongs))
	for _, spec := range newSongs {
		songReleased, err := time.Parse("2006-01-02", spec.ReleaseDate)
		if err != nil {
			return 0, apperr.New(apperr.InvalidInput, "song release_date must be a date in format YYYY-MM-DD")
		}
		songs = append(songs, models.Song{
			ISMN:        spec.ISMN,
			Title:       spec.Title,
			Genre:       spec.Genre,
			Duration:    spec.Duration,
			ReleaseDate: songReleased,
			Explicit:    *spec.Explicit,
			ArtistID:    artistID,
		})
	}

	id, err := s.repo.CreateAlbum(ctx, models.Album{
		Title:       title,
		ReleaseDate: released,
		ArtistID:    artistID,
	}, existingSongs, songs)
	if err != nil {
		return 0, err
	}

	// В кеше могли остаться карточки без нового альбома: у исполнителя
	// и у песен, вошедших в альбом.
	keys := []string{fmt.Sprintf("artist_info:%d", artistID)}
	for _, songID := range existingSongs {
		keys = append(keys, fmt.Sprintf("song_info:%d", songID))
	}
	for _, key := range keys {
		if err := s.cache.Invalidate(ctx, key); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", key), sl.Err(err))
		}
	}

	s.log.Info("created new album",
		slog.Int64("album_id", id), slog.Int64("artist_id", artistID),
		slog.Int("songs", total))
	return id, nil
}

// CreatePlaylist создает плейлист потребителя с 1..10000 песнями в
// присланном порядке.
func (s *CollectionService) CreatePlaylist(ctx context.Context, consumerID int64, name string, private bool, songIDs []int64) (int64, error) {
	if len(songIDs) < 1 || len(songIDs) > 10000 {
		return 0, apperr.New(apperr.InvalidInput, "a playlist must contain between 1 and 10000 songs")
	}

	id, err := s.repo.CreatePlaylist(ctx, models.Playlist{
		Name:       name,
		Private:    private,
		ConsumerID: consumerID,
	}, songIDs)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new playlist",
		slog.Int64("playlist_id", id), slog.Int64("consumer_id", consumerID))
	return id, nil
}

// SearchPlaylists ищет плейлисты по имени. Премиум-потребитель видит
// среди результатов и собственные приватные.
func (s *CollectionService) SearchPlaylists(ctx context.Context, keyword string, viewerID int64, role models.Role) ([]models.PlaylistSummary, error) {
	return s.repo.SearchPlaylists(ctx, keyword, viewerID, role == models.RolePremiumConsumer)
}

// PlaylistInfo возвращает карточку плейлиста с учётом приватности.
func (s *CollectionService) PlaylistInfo(ctx context.Context, playlistID, viewerID int64, role models.Role) (*models.PlaylistInfo, error) {
	info, err := s.repo.GetPlaylistInfo(ctx, playlistID, viewerID, role == models.RolePremiumConsumer)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, apperr.Newf(apperr.NotFound, "no playlist found with ID %d", playlistID)
	}
	return info, nil
}

// DeletePlaylist удаляет плейлист, принадлежащий вызывающему.
func (s *CollectionService) DeletePlaylist(ctx context.Context, playlistID, ownerID int64) error {
	if err := s.repo.DeletePlaylist(ctx, playlistID, ownerID); err != nil {
		return err
	}
	s.log.Info("deleted playlist",
		slog.Int64("playlist_id", playlistID), slog.Int64("consumer_id", ownerID))
	return nil
}
