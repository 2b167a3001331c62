package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/soundvault/soundvault/internal/models"
)

// CreateSong атомарно добавляет песню и её коллаборации. Издатель
// берётся из записи исполнителя.
func (s *Storage) CreateSong(ctx context.Context, song models.Song, collaborators []int64) (int64, error) {
	const op = "storage.CreateSong"

	query := `WITH inserted_song AS (
                  INSERT INTO songs (ismn, title, genre, duration, release_date, explicit, artists_users_id, publishers_id)
                  SELECT $1, $2, $3, $4, $5, $6, $7, publishers_id
                  FROM artists WHERE users_id = $7
                  RETURNING id
              ),
              inserted_collab AS (
                  INSERT INTO collaborations (artists_users_id, songs_id)
                  SELECT collaborator_id, inserted_song.id
                  FROM inserted_song, UNNEST($8::bigint[]) AS collaborator_id
              )
              SELECT id FROM inserted_song`

	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		song.ISMN, song.Title, song.Genre, song.Duration, song.ReleaseDate,
		song.Explicit, song.ArtistID, collaborators).Scan(&id)
	if err != nil {
		err = classify(err,
			"song with this ISMN already added or you already have a song with this exact title",
			"no artist found with one of the IDs in the collaborator list")
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// SearchSongs ищет песни по вхождению ключевого слова в название.
func (s *Storage) SearchSongs(ctx context.Context, keyword string) ([]models.SongSummary, error) {
	const op = "storage.SearchSongs"

	query := `SELECT songs.id, songs.title, artists.stage_name
              FROM songs
              LEFT JOIN artists ON artists.users_id = songs.artists_users_id
              WHERE songs.title ILIKE '%' || $1 || '%'`

	rows, err := s.DB.QueryContext(ctx, query, keyword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.SongSummary
	for rows.Next() {
		var item models.SongSummary
		if err := rows.Scan(&item.ID, &item.Title, &item.Artist); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetSongInfo возвращает карточку песни с коллаборациями и альбомами.
// Возвращает nil, если песни нет.
func (s *Storage) GetSongInfo(ctx context.Context, songID int64) (*models.SongInfo, error) {
	const op = "storage.GetSongInfo"

	query := `SELECT songs.title, artists.stage_name, songs.genre, songs.duration,
                  songs.explicit, songs.release_date, collaborators.stage_name, albums.title
              FROM songs
              LEFT JOIN artists ON songs.artists_users_id = artists.users_id
              LEFT JOIN album_orders ON album_orders.songs_id = songs.id
              LEFT JOIN albums ON album_orders.albums_id = albums.id
              LEFT JOIN collaborations ON songs.id = collaborations.songs_id
              LEFT JOIN artists AS collaborators ON collaborations.artists_users_id = collaborators.users_id
              WHERE songs.id = $1
              GROUP BY songs.id, artists.stage_name, collaborators.stage_name, albums.title`

	rows, err := s.DB.QueryContext(ctx, query, songID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var info *models.SongInfo
	seenCollabs := map[string]bool{}
	seenAlbums := map[string]bool{}
	for rows.Next() {
		var (
			title, artist, genre string
			duration             int
			explicit             bool
			releaseDate          sql.NullTime
			collab, album        sql.NullString
		)
		if err := rows.Scan(&title, &artist, &genre, &duration,
			&explicit, &releaseDate, &collab, &album); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if info == nil {
			info = &models.SongInfo{
				Title:       title,
				Artist:      artist,
				Genre:       genre,
				Duration:    fmt.Sprintf("%d:%02d", duration/60, duration%60),
				Explicit:    explicit,
				ReleaseDate: releaseDate.Time.Format("2006-01-02"),
			}
		}
		if collab.Valid && !seenCollabs[collab.String] {
			seenCollabs[collab.String] = true
			info.Collaborators = append(info.Collaborators, collab.String)
		}
		if album.Valid && !seenAlbums[album.String] {
			seenAlbums[album.String] = true
			info.Albums = append(info.Albums, album.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return info, nil
}

// SearchArtists ищет исполнителей по сценическому имени.
func (s *Storage) SearchArtists(ctx context.Context, keyword string) ([]models.ArtistSummary, error) {
	const op = "storage.SearchArtists"

	query := `SELECT users_id, stage_name
              FROM artists
              WHERE stage_name ILIKE '%' || $1 || '%'
              ORDER BY stage_name ASC`

	rows, err := s.DB.QueryContext(ctx, query, keyword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.ArtistSummary
	for rows.Next() {
		var item models.ArtistSummary
		if err := rows.Scan(&item.ID, &item.StageName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetArtistInfo возвращает карточку исполнителя: собственные песни,
// фиты, альбомы и публичные плейлисты с его песнями. Возвращает nil,
// если исполнителя нет.
func (s *Storage) GetArtistInfo(ctx context.Context, artistID int64) (*models.ArtistInfo, error) {
	const op = "storage.GetArtistInfo"

	query := `SELECT DISTINCT artists.stage_name, songs.title, collabs.title, albums.title,
                  playlists.name, playlists_author.display_name
              FROM artists
              JOIN users ON artists.users_id = users.id
              LEFT JOIN collaborations ON artists.users_id = collaborations.artists_users_id
              LEFT JOIN songs AS collabs ON collaborations.songs_id = collabs.id
              LEFT JOIN songs ON artists.users_id = songs.artists_users_id
              LEFT JOIN albums ON albums.artists_users_id = artists.users_id
              LEFT JOIN playlist_orders ON songs.id = playlist_orders.songs_id
              LEFT JOIN playlists ON playlist_orders.playlists_id = playlists.id AND playlists.private = FALSE
              LEFT JOIN consumers AS playlists_author ON playlists.consumers_users_id = playlists_author.users_id
              WHERE artists.users_id = $1`

	rows, err := s.DB.QueryContext(ctx, query, artistID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var info *models.ArtistInfo
	seenSongs := map[string]bool{}
	seenCollabs := map[string]bool{}
	seenAlbums := map[string]bool{}
	seenPlaylists := map[models.PlaylistAuthored]bool{}
	for rows.Next() {
		var (
			stageName                       string
			song, collab, album, plName, plAuthor sql.NullString
		)
		if err := rows.Scan(&stageName, &song, &collab, &album, &plName, &plAuthor); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if info == nil {
			info = &models.ArtistInfo{StageName: stageName}
		}
		if song.Valid && !seenSongs[song.String] {
			seenSongs[song.String] = true
			info.ReleasedSongs = append(info.ReleasedSongs, song.String)
		}
		if collab.Valid && !seenCollabs[collab.String] {
			seenCollabs[collab.String] = true
			info.FeaturedSongs = append(info.FeaturedSongs, collab.String)
		}
		if album.Valid && !seenAlbums[album.String] {
			seenAlbums[album.String] = true
			info.Albums = append(info.Albums, album.String)
		}
		if plName.Valid && plAuthor.Valid {
			pl := models.PlaylistAuthored{Name: plName.String, Author: plAuthor.String}
			if !seenPlaylists[pl] {
				seenPlaylists[pl] = true
				info.IsInPlaylists = append(info.IsInPlaylists, pl)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return info, nil
}

// RecordStream добавляет событие прослушивания в журнал.
func (s *Storage) RecordStream(ctx context.Context, songID, consumerID int64) (int64, error) {
	const op = "storage.RecordStream"

	query := `INSERT INTO streams (songs_id, consumers_users_id, stream_time)
              VALUES ($1, $2, CURRENT_TIMESTAMP)
              RETURNING id`

	var id int64
	err := s.DB.QueryRowContext(ctx, query, songID, consumerID).Scan(&id)
	if err != nil {
		err = classify(err,
			"duplicate stream entry",
			fmt.Sprintf("no song with ID %d found", songID))
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
