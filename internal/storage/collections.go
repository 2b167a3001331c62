package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/models"
)

// CreateAlbum атомарно создает альбом и строки порядка его песен.
// Позиции присваиваются по порядку, заданному вызывающей стороной:
// сначала существующие песни, затем новые, вставляемые здесь же.
// Частичная вставка невозможна: любой сбой откатывает всё.
func (s *Storage) CreateAlbum(ctx context.Context, album models.Album, existingSongs []int64, newSongs []models.Song) (int64, error) {
	const op = "storage.CreateAlbum"

	var albumID int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO albums (title, release_date, artists_users_id)
             VALUES ($1, $2, $3)
             RETURNING id`,
			album.Title, album.ReleaseDate, album.ArtistID).Scan(&albumID)
		if err != nil {
			return classify(err,
				"you already have an album with this exact title",
				"no artist found for this album")
		}

		// Существующие песни получают позиции 1..len(existingSongs)
		// ровно в присланном порядке.
		_, err = tx.ExecContext(ctx,
			`INSERT INTO album_orders (albums_id, songs_id, ordinality)
             SELECT $1, s.id, s.ord
             FROM UNNEST($2::bigint[]) WITH ORDINALITY AS s(id, ord)`,
			albumID, existingSongs)
		if err != nil {
			return classify(err,
				"duplicate song position in album",
				"no song was found with one of the IDs in the song list")
		}

		position := len(existingSongs)
		for _, song := range newSongs {
			position++
			var songID int64
			err := tx.QueryRowContext(ctx,
				`INSERT INTO songs (ismn, title, genre, duration, release_date, explicit, artists_users_id, publishers_id)
                 SELECT $1, $2, $3, $4, $5, $6, $7, publishers_id
                 FROM artists WHERE users_id = $7
                 RETURNING id`,
				song.ISMN, song.Title, song.Genre, song.Duration,
				song.ReleaseDate, song.Explicit, album.ArtistID).Scan(&songID)
			if err != nil {
				return classify(err,
					"song with this ISMN already added or you already have a song with this exact title",
					"no artist found for a new song")
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO album_orders (albums_id, songs_id, ordinality)
                 VALUES ($1, $2, $3)`,
				albumID, songID, position)
			if err != nil {
				return classify(err,
					"duplicate song position in album",
					"invalid song reference in album order")
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return albumID, nil
}

// CreatePlaylist атомарно создает плейлист и строки порядка песен.
// Позиции воспроизводят присланный порядок один к одному.
func (s *Storage) CreatePlaylist(ctx context.Context, playlist models.Playlist, songIDs []int64) (int64, error) {
	const op = "storage.CreatePlaylist"

	query := `WITH inserted_playlist AS (
                  INSERT INTO playlists (name, private, consumers_users_id)
                  VALUES ($1, $2, $3)
                  RETURNING id
              ),
              inserted_playlist_song AS (
                  INSERT INTO playlist_orders (playlists_id, songs_id, position)
                  SELECT inserted_playlist.id, s.id, s.ord
                  FROM inserted_playlist, UNNEST($4::bigint[]) WITH ORDINALITY AS s(id, ord)
              )
              SELECT id FROM inserted_playlist`

	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		playlist.Name, playlist.Private, playlist.ConsumerID, songIDs).Scan(&id)
	if err != nil {
		err = classify(err,
			"you already have a playlist with this exact name",
			"no song was found with one of the IDs in the song list")
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// SearchPlaylists ищет публичные плейлисты по имени; премиум-владелец
// дополнительно видит собственные приватные.
func (s *Storage) SearchPlaylists(ctx context.Context, keyword string, viewerID int64, includePrivate bool) ([]models.PlaylistSummary, error) {
	const op = "storage.SearchPlaylists"

	query := `SELECT playlists.id, playlists.name, consumers.display_name
              FROM playlists
              LEFT JOIN consumers ON playlists.consumers_users_id = consumers.users_id
              WHERE playlists.name ILIKE '%' || $1 || '%'
                  AND (playlists.private = FALSE
                      OR ($2 AND playlists.consumers_users_id = $3))`

	rows, err := s.DB.QueryContext(ctx, query, keyword, includePrivate, viewerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.PlaylistSummary
	for rows.Next() {
		var item models.PlaylistSummary
		if err := rows.Scan(&item.ID, &item.Name, &item.Creator); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlaylistInfo возвращает карточку плейлиста с песнями в сохранённом
// порядке позиций. Приватный плейлист виден только премиум-владельцу.
// Возвращает nil, если плейлист не найден или не доступен.
func (s *Storage) GetPlaylistInfo(ctx context.Context, playlistID, viewerID int64, includePrivate bool) (*models.PlaylistInfo, error) {
	const op = "storage.GetPlaylistInfo"

	query := `SELECT playlists.name, consumers.display_name, playlists.private, songs.title
              FROM playlists
              LEFT JOIN consumers ON playlists.consumers_users_id = consumers.users_id
              LEFT JOIN playlist_orders ON playlists.id = playlist_orders.playlists_id
              LEFT JOIN songs ON playlist_orders.songs_id = songs.id
              WHERE playlists.id = $1
                  AND (playlists.private = FALSE
                      OR ($2 AND playlists.consumers_users_id = $3))
              ORDER BY playlist_orders.position ASC`

	rows, err := s.DB.QueryContext(ctx, query, playlistID, includePrivate, viewerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var info *models.PlaylistInfo
	for rows.Next() {
		var (
			name, creator string
			private       bool
			song          sql.NullString
		)
		if err := rows.Scan(&name, &creator, &private, &song); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if info == nil {
			info = &models.PlaylistInfo{Name: name, Creator: creator, Private: private}
		}
		if song.Valid {
			info.Songs = append(info.Songs, song.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return info, nil
}

// DeletePlaylist удаляет плейлист владельца вместе со строками порядка.
func (s *Storage) DeletePlaylist(ctx context.Context, playlistID, ownerID int64) error {
	const op = "storage.DeletePlaylist"

	query := `DELETE FROM playlists
              WHERE id = $1 AND consumers_users_id = $2
              RETURNING id`

	var id int64
	err := s.DB.QueryRowContext(ctx, query, playlistID, ownerID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Newf(apperr.NotFound,
			"no playlist of your authorship found with ID %d", playlistID)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
