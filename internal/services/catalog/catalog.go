// Package services содержит бизнес-логику каталога: песни, исполнители
// и журнал прослушиваний, с кешированием читающих запросов.
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

// CatalogRepository определяет методы для работы с каталогом в хранилище.
type CatalogRepository interface {
	// CreateSong добавляет песню с коллаборациями и возвращает её ID.
	CreateSong(ctx context.Context, song models.Song, collaborators []int64) (int64, error)
	// SearchSongs ищет песни по вхождению ключевого слова в название.
	SearchSongs(ctx context.Context, keyword string) ([]models.SongSummary, error)
	// GetSongInfo возвращает карточку песни или nil, если её нет.
	GetSongInfo(ctx context.Context, songID int64) (*models.SongInfo, error)
	// SearchArtists ищет исполнителей по сценическому имени.
	SearchArtists(ctx context.Context, keyword string) ([]models.ArtistSummary, error)
	// GetArtistInfo возвращает карточку исполнителя или nil, если его нет.
	GetArtistInfo(ctx context.Context, artistID int64) (*models.ArtistInfo, error)
	// RecordStream добавляет событие прослушивания.
	RecordStream(ctx context.Context, songID, consumerID int64) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// Время жизни кеша читающих запросов каталога. Короткое, потому что
// инвалидировать поисковые ключи по ключевому слову нечем.
const cacheTTL = 5 * time.Minute

// CatalogService реализует операции каталога.
type CatalogService struct {
	repo  CatalogRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo CatalogRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// AddSong публикует песню от имени исполнителя artistID. Исполнитель не
// может указать себя в коллабораторах, список ограничен десятью.
func (s *CatalogService) AddSong(ctx context.Context, artistID int64, spec models.NewSongSpec, collaborators []int64) (int64, error) {
	if len(collaborators) > 10 {
		return 0, apperr.New(apperr.InvalidInput, "a song can have at most 10 collaborators")
	}
	seen := make(map[int64]bool, len(collaborators))
	for _, id := range collaborators {
		if id == artistID {
			return 0, apperr.New(apperr.InvalidInput, "you cannot list yourself as a collaborator")
		}
		if seen[id] {
			return 0, apperr.Newf(apperr.InvalidInput, "duplicate collaborator with ID %d", id)
		}
		seen[id] = true
	}
	releaseDate, err := time.Parse("2006-01-02", spec.ReleaseDate)
	if err != nil {
		return 0, apperr.New(apperr.InvalidInput, "release_date must be a date in format YYYY-MM-DD")
	}

	id, err := s.repo.CreateSong(ctx, models.Song{
		ISMN:        spec.ISMN,
		Title:       spec.Title,
		Genre:       spec.Genre,
		Duration:    spec.Duration,
		ReleaseDate: releaseDate,
		Explicit:    *spec.Explicit,
		ArtistID:    artistID,
	}, collaborators)
	if err != nil {
		return 0, err
	}

	// Карточки исполнителя и коллабораторов уже могли попасть в кеш
	// без новой песни.
	for _, participant := range append([]int64{artistID}, collaborators...) {
		key := fmt.Sprintf("artist_info:%d", participant)
		if err := s.cache.Invalidate(ctx, key); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", key), sl.Err(err))
		}
	}

	s.log.Info("added new song",
		slog.Int64("song_id", id), slog.Int64("artist_id", artistID))
	return id, nil
}

// SearchSongs ищет песни по ключевому слову, используя кеш.
func (s *CatalogService) SearchSongs(ctx context.Context, keyword string) ([]models.SongSummary, error) {
	var result []models.SongSummary
	cacheKey := fmt.Sprintf("song_search:%s", keyword)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.SearchSongs(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// SongInfo возвращает карточку песни, используя кеш.
func (s *CatalogService) SongInfo(ctx context.Context, songID int64) (*models.SongInfo, error) {
	var result *models.SongInfo
	cacheKey := fmt.Sprintf("song_info:%d", songID)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetSongInfo(ctx, songID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apperr.Newf(apperr.NotFound, "no song found with ID %d", songID)
	}
	if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// SearchArtists ищет исполнителей по ключевому слову.
func (s *CatalogService) SearchArtists(ctx context.Context, keyword string) ([]models.ArtistSummary, error) {
	return s.repo.SearchArtists(ctx, keyword)
}

// ArtistInfo возвращает карточку исполнителя, используя кеш.
func (s *CatalogService) ArtistInfo(ctx context.Context, artistID int64) (*models.ArtistInfo, error) {
	var result *models.ArtistInfo
	cacheKey := fmt.Sprintf("artist_info:%d", artistID)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetArtistInfo(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apperr.Newf(apperr.NotFound, "no artist found with ID %d", artistID)
	}
	if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// Stream фиксирует прослушивание песни потребителем.
func (s *CatalogService) Stream(ctx context.Context, songID, consumerID int64) error {
	_, err := s.repo.RecordStream(ctx, songID, consumerID)
	return err
}
