// Package services содержит логику бизнес-уровня для регистрации
// пользователей и аутентификации.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/lib/jwt"
	"github.com/soundvault/soundvault/internal/lib/password"
	"github.com/soundvault/soundvault/internal/lib/rabbitmq"
	"github.com/soundvault/soundvault/internal/lib/sl"
	"github.com/soundvault/soundvault/internal/models"
	"github.com/soundvault/soundvault/internal/storage"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterConsumer сохраняет пользователя-потребителя и возвращает его ID.
	RegisterConsumer(ctx context.Context, user models.User, consumer models.Consumer) (int64, error)
	// RegisterArtist сохраняет пользователя-исполнителя и возвращает его ID.
	RegisterArtist(ctx context.Context, user models.User, artist models.Artist) (int64, error)
	// FindCredentials возвращает данные для проверки пароля по имени или почте.
	FindCredentials(ctx context.Context, usernameOrEmail string) (*storage.Credentials, error)
	// RecordLogin фиксирует успешный вход.
	RecordLogin(ctx context.Context, userID int64, ip string) error
}

// EventPublisher публикует события в очередь модерации.
type EventPublisher interface {
	Publish(event rabbitmq.Event) error
}

// AuthService отвечает за регистрацию, вход и выпуск JWT.
type AuthService struct {
	users    UserRepository
	codec    *password.Codec
	jwtMaker jwt.Maker
	events   EventPublisher
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, codec *password.Codec, jwtMaker jwt.Maker, events EventPublisher, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		codec:    codec,
		jwtMaker: jwtMaker,
		events:   events,
		log:      log,
	}
}

// RegisterConsumer создает учётную запись потребителя. Дата рождения
// принимается в формате YYYY-MM-DD и не может быть в будущем.
func (s *AuthService) RegisterConsumer(ctx context.Context, username, rawPassword, email, birthday, displayName string) (int64, error) {
	if err := checkPasswordStrength(rawPassword); err != nil {
		return 0, err
	}
	born, err := time.Parse("2006-01-02", birthday)
	if err != nil {
		return 0, apperr.New(apperr.InvalidInput, "birthday must be a date in format YYYY-MM-DD")
	}
	if born.After(time.Now()) {
		return 0, apperr.New(apperr.InvalidInput, "birthday cannot be in the future")
	}

	user, err := s.newUser(username, rawPassword, email)
	if err != nil {
		return 0, err
	}
	id, err := s.users.RegisterConsumer(ctx, user, models.Consumer{
		Birthday:    born,
		DisplayName: displayName,
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("registered new consumer", slog.Int64("user_id", id))
	s.publish(rabbitmq.NewEvent(rabbitmq.EventAccountRegistered, id, id, "consumer"))
	return id, nil
}

// RegisterArtist создает учётную запись исполнителя от имени
// администратора adminID.
func (s *AuthService) RegisterArtist(ctx context.Context, adminID int64, username, rawPassword, email, stageName string, publisherID int64) (int64, error) {
	if err := checkPasswordStrength(rawPassword); err != nil {
		return 0, err
	}

	user, err := s.newUser(username, rawPassword, email)
	if err != nil {
		return 0, err
	}
	id, err := s.users.RegisterArtist(ctx, user, models.Artist{
		StageName:   stageName,
		PublisherID: publisherID,
		AdminID:     adminID,
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("registered new artist",
		slog.Int64("user_id", id), slog.Int64("admin_id", adminID))
	s.publish(rabbitmq.NewEvent(rabbitmq.EventAccountRegistered, id, adminID, "artist"))
	return id, nil
}

// Login проверяет пароль и возвращает JWT. Забаненный пользователь
// токен не получает.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, rawPassword, ip string) (string, error) {
	creds, err := s.users.FindCredentials(ctx, usernameOrEmail)
	if err != nil {
		return "", err
	}
	if !s.codec.Verify(rawPassword, creds.PasswordSalt, creds.PasswordHash) {
		return "", apperr.New(apperr.Unauthenticated, "wrong password")
	}
	if creds.Banned {
		return "", apperr.New(apperr.Forbidden, "you are banned, contact support for more details")
	}

	token, err := s.jwtMaker.GenerateToken(creds.UserID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	if err := s.users.RecordLogin(ctx, creds.UserID, ip); err != nil {
		s.log.Warn("failed to record login", sl.Err(err))
	}
	return token, nil
}

func (s *AuthService) newUser(username, rawPassword, email string) (models.User, error) {
	if !strings.Contains(email, "@") || strings.ContainsAny(email, " \t") {
		return models.User{}, apperr.New(apperr.InvalidInput, "email must be a valid email address")
	}
	salt, err := password.NewSalt()
	if err != nil {
		return models.User{}, fmt.Errorf("generate salt: %w", err)
	}
	return models.User{
		Username:     username,
		PasswordHash: s.codec.Hash(rawPassword, salt),
		PasswordSalt: salt,
		Email:        email,
	}, nil
}

func (s *AuthService) publish(event rabbitmq.Event) {
	if err := s.events.Publish(event); err != nil {
		s.log.Warn("failed to publish event",
			slog.String("type", event.Type), sl.Err(err))
	}
}

// checkPasswordStrength требует от пароля не менее восьми символов с
// прописной и строчной буквами, цифрой и специальным символом.
func checkPasswordStrength(rawPassword string) error {
	var upper, lower, digit, special bool
	for _, r := range rawPassword {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if len(rawPassword) < 8 || !upper || !lower || !digit || !special {
		return apperr.New(apperr.InvalidInput,
			"password must have at least 8 characters with uppercase and lowercase letters, a digit and a special character")
	}
	return nil
}
