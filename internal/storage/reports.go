package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/soundvault/soundvault/internal/models"
)

// GenreReport агрегирует прослушивания потребителя по месяцу и жанру
// за двенадцать месяцев, предшествующих указанному месяцу включительно.
func (s *Storage) GenreReport(ctx context.Context, consumerID int64, yearMonth time.Time) ([]models.GenrePlaybacks, error) {
	const op = "storage.GenreReport"

	from := yearMonth.AddDate(-1, 0, 0)
	to := yearMonth.AddDate(0, 1, 0)

	query := `SELECT EXTRACT(YEAR FROM streams.stream_time) AS year,
                  EXTRACT(MONTH FROM streams.stream_time) AS month,
                  songs.genre, COUNT(*) AS playbacks
              FROM streams
              JOIN songs ON streams.songs_id = songs.id
              WHERE streams.consumers_users_id = $1
                  AND streams.stream_time >= $2
                  AND streams.stream_time < $3
              GROUP BY year, month, songs.genre
              ORDER BY year DESC, month DESC, playbacks DESC`

	rows, err := s.DB.QueryContext(ctx, query, consumerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.GenrePlaybacks
	for rows.Next() {
		var (
			year, month int
			item        models.GenrePlaybacks
		)
		if err := rows.Scan(&year, &month, &item.Genre, &item.Playbacks); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.YearMonth = fmt.Sprintf("%d-%02d", year, month)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
