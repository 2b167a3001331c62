package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/models"
)

// RegisterConsumer атомарно создает базовую запись пользователя и
// ролевую запись потребителя с общим идентификатором.
func (s *Storage) RegisterConsumer(ctx context.Context, user models.User, consumer models.Consumer) (int64, error) {
	const op = "storage.RegisterConsumer"

	query := `WITH inserted_user AS (
                  INSERT INTO users (username, password_hash, password_salt, email)
                  VALUES ($1, $2, $3, $4)
                  RETURNING id
              )
              INSERT INTO consumers (users_id, birthday, display_name, register_date)
              SELECT inserted_user.id, $5, $6, CURRENT_DATE
              FROM inserted_user
              RETURNING users_id`

	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.PasswordSalt, user.Email,
		consumer.Birthday, consumer.DisplayName).Scan(&id)
	if err != nil {
		err = classify(err,
			"username or email already in use",
			"invalid consumer reference")
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// RegisterArtist атомарно создает пользователя и ролевую запись
// исполнителя, привязанную к издателю и регистрирующему администратору.
func (s *Storage) RegisterArtist(ctx context.Context, user models.User, artist models.Artist) (int64, error) {
	const op = "storage.RegisterArtist"

	query := `WITH inserted_user AS (
                  INSERT INTO users (username, password_hash, password_salt, email)
                  VALUES ($1, $2, $3, $4)
                  RETURNING id
              )
              INSERT INTO artists (users_id, stage_name, publishers_id, administrators_users_id)
              SELECT inserted_user.id, $5, $6, $7
              FROM inserted_user
              RETURNING users_id`

	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.PasswordSalt, user.Email,
		artist.StageName, artist.PublisherID, artist.AdminID).Scan(&id)
	if err != nil {
		err = classify(err,
			"username or email already in use",
			fmt.Sprintf("no publisher found with ID %d", artist.PublisherID))
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// RegisterAdministrator атомарно создает пользователя и ролевую запись
// администратора. Используется утилитой первичной настройки.
func (s *Storage) RegisterAdministrator(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.RegisterAdministrator"

	query := `WITH inserted_user AS (
                  INSERT INTO users (username, password_hash, password_salt, email)
                  VALUES ($1, $2, $3, $4)
                  RETURNING id
              )
              INSERT INTO administrators (users_id)
              SELECT inserted_user.id
              FROM inserted_user
              RETURNING users_id`

	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.PasswordSalt, user.Email).Scan(&id)
	if err != nil {
		err = classify(err,
			"username or email already in use",
			"invalid administrator reference")
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Credentials — данные для проверки пароля при входе вместе с флагом
// активного бана.
type Credentials struct {
	UserID       int64
	PasswordHash string
	PasswordSalt string
	Banned       bool
}

// FindCredentials возвращает данные входа по имени пользователя или
// электронной почте. Отсутствие пользователя — Unauthenticated, чтобы
// не раскрывать, какая часть пары неверна.
func (s *Storage) FindCredentials(ctx context.Context, usernameOrEmail string) (*Credentials, error) {
	const op = "storage.FindCredentials"

	query := `SELECT id, password_hash, password_salt,
                  EXISTS (SELECT 1 FROM bans WHERE bans.users_id = users.id
                      AND (bans.end_time IS NULL OR bans.end_time > CURRENT_TIMESTAMP)) AS banned
              FROM users
              WHERE username = $1 OR email = $1`

	var creds Credentials
	err := s.DB.QueryRowContext(ctx, query, usernameOrEmail).
		Scan(&creds.UserID, &creds.PasswordHash, &creds.PasswordSalt, &creds.Banned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Newf(apperr.Unauthenticated,
			"no user found with username or email %s", usernameOrEmail)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &creds, nil
}

// ResolveRole определяет текущую роль пользователя одним запросом.
// Приоритет: бан > премиум-потребитель > потребитель > исполнитель >
// администратор. Премиум учитывает минутное льготное окно после конца
// подписки. RoleUnknown означает отсутствие ролевой записи.
func (s *Storage) ResolveRole(ctx context.Context, userID int64) (models.Role, error) {
	const op = "storage.ResolveRole"

	query := `SELECT CASE
                  WHEN EXISTS (SELECT 1 FROM bans WHERE bans.users_id = users.id
                      AND (bans.end_time IS NULL OR bans.end_time > CURRENT_TIMESTAMP)) THEN 'banned'
                  WHEN EXISTS (SELECT 1 FROM consumers WHERE consumers.users_id = users.id)
                      AND EXISTS (SELECT 1 FROM subscriptions WHERE subscriptions.consumers_users_id = users.id
                          AND subscriptions.end_time + INTERVAL '1 minute' > CURRENT_TIMESTAMP) THEN 'premium consumer'
                  WHEN EXISTS (SELECT 1 FROM consumers WHERE consumers.users_id = users.id) THEN 'consumer'
                  WHEN EXISTS (SELECT 1 FROM artists WHERE artists.users_id = users.id) THEN 'artist'
                  WHEN EXISTS (SELECT 1 FROM administrators WHERE administrators.users_id = users.id) THEN 'administrator'
              END AS user_role
              FROM users
              WHERE id = $1`

	var role sql.NullString
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RoleUnknown, nil
	}
	if err != nil {
		return models.RoleUnknown, fmt.Errorf("%s: %w", op, err)
	}
	if !role.Valid {
		return models.RoleUnknown, nil
	}
	return models.Role(role.String), nil
}

// RecordLogin добавляет запись об успешной аутентификации.
func (s *Storage) RecordLogin(ctx context.Context, userID int64, ip string) error {
	const op = "storage.RecordLogin"

	query := `INSERT INTO logins (users_id, login_time, ip)
              VALUES ($1, CURRENT_TIMESTAMP, $2)`
	if _, err := s.DB.ExecContext(ctx, query, userID, ip); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
