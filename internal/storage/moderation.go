package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/soundvault/soundvault/internal/apperr"
)

// CreateCard выпускает предоплаченную карту со сроком действия один год.
func (s *Storage) CreateCard(ctx context.Context, number string, credit int, adminID int64) (int64, error) {
	const op = "storage.CreateCard"

	query := `INSERT INTO prepaid_cards (number, credit, expiration, administrators_users_id)
              VALUES ($1, $2, CURRENT_DATE + INTERVAL '1 year', $3)
              RETURNING id`

	var id int64
	err := s.DB.QueryRowContext(ctx, query, number, credit, adminID).Scan(&id)
	if err != nil {
		err = classify(err,
			"card with this number already exists",
			"no administrator found for this card")
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// CreatePublisher добавляет издателя с уникальной почтой.
func (s *Storage) CreatePublisher(ctx context.Context, name, email string) (int64, error) {
	const op = "storage.CreatePublisher"

	query := `INSERT INTO publishers (name, email)
              VALUES ($1, $2)
              RETURNING id`

	var id int64
	err := s.DB.QueryRowContext(ctx, query, name, email).Scan(&id)
	if err != nil {
		err = classify(err,
			"email already in use",
			"invalid publisher reference")
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// CreateBan накладывает бан на пользователя. Отказывает при уже
// активном бане и при попытке забанить администратора. Проверка и
// вставка выполняются в одной транзакции.
func (s *Storage) CreateBan(ctx context.Context, userID, adminID int64, reason string, endTime *time.Time) (int64, error) {
	const op = "storage.CreateBan"

	var banID int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var activeEnd sql.NullTime
		err := tx.QueryRowContext(ctx,
			`SELECT end_time
             FROM bans
             WHERE users_id = $1 AND (end_time > CURRENT_TIMESTAMP OR end_time IS NULL)`,
			userID).Scan(&activeEnd)
		if err == nil {
			until := "it is lifted manually"
			if activeEnd.Valid {
				until = activeEnd.Time.Format("2006-01-02 15:04:05")
			}
			return apperr.Newf(apperr.InvalidInput,
				"user with ID %d already has an active ban until %s", userID, until)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		err = tx.QueryRowContext(ctx,
			`INSERT INTO bans (administrators_users_id, users_id, reason, start_time, end_time, manual_unban)
             SELECT $1, $2, $3, CURRENT_TIMESTAMP, $4, FALSE
             WHERE NOT EXISTS (SELECT 1 FROM administrators WHERE users_id = $2)
             RETURNING id`,
			adminID, userID, reason, endTime).Scan(&banID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.InvalidInput, "you cannot ban an administrator")
		}
		if err != nil {
			return classify(err,
				"duplicate ban entry",
				fmt.Sprintf("no user found with ID %d", userID))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return banID, nil
}

// CloseBan снимает активный бан, закрывая его текущим временем вместо
// удаления, чтобы сохранить историю.
func (s *Storage) CloseBan(ctx context.Context, userID int64) error {
	const op = "storage.CloseBan"

	query := `UPDATE bans
              SET end_time = CURRENT_TIMESTAMP, manual_unban = TRUE
              WHERE users_id = $1 AND (end_time > CURRENT_TIMESTAMP OR end_time IS NULL)
              RETURNING id`

	var id int64
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Newf(apperr.NotFound,
			"no active ban found for user with ID %d", userID)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
